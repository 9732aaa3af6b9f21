package domain

import (
	"time"
)

type SessionID string
type UserID string

// Platform identifies the external streaming service a stream belongs to.
type Platform string

const (
	PlatformTwitch  Platform = "twitch"
	PlatformYouTube Platform = "youtube"
	PlatformKick    Platform = "kick"
	PlatformRumble  Platform = "rumble"
	PlatformOther   Platform = "other"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitch, PlatformYouTube, PlatformKick, PlatformRumble, PlatformOther:
		return true
	}
	return false
}

// StreamRef is an immutable reference to a stream on an external platform.
// ChannelID carries the channel name for channel-keyed platforms (Twitch, Kick)
// and the video id for video-keyed ones (YouTube, Rumble).
type StreamRef struct {
	Platform     Platform  `json:"platform"`
	ChannelID    string    `json:"channel_id"`
	Title        string    `json:"title"`
	ChannelName  string    `json:"channel_name"`
	ViewerCount  int       `json:"viewer_count"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Live         bool      `json:"live"`
	ResolvedAt   time.Time `json:"resolved_at"`
}

package playback

import (
	"fmt"
	"net/url"

	"streamgrid/internal/core/domain"
)

// EmbedOptions control the player parameters baked into an embed URL.
// ParentHost is required by the Twitch player and ignored elsewhere.
type EmbedOptions struct {
	ParentHost string
	Autoplay   bool
	Muted      bool
}

// EmbedURL builds the platform-specific embeddable player URL for a stream
// reference. The result is an opaque string the client loads into a web
// surface; nothing here speaks a playback protocol.
func EmbedURL(ref *domain.StreamRef, opts EmbedOptions) (string, error) {
	if ref == nil {
		return "", domain.ErrSlotEmpty
	}

	switch ref.Platform {
	case domain.PlatformTwitch:
		q := url.Values{}
		q.Set("channel", ref.ChannelID)
		if opts.ParentHost != "" {
			q.Set("parent", opts.ParentHost)
		}
		q.Set("autoplay", boolString(opts.Autoplay))
		q.Set("muted", boolString(opts.Muted))
		return "https://player.twitch.tv/?" + q.Encode(), nil

	case domain.PlatformYouTube:
		q := url.Values{}
		q.Set("autoplay", boolDigit(opts.Autoplay))
		q.Set("mute", boolDigit(opts.Muted))
		return fmt.Sprintf("https://www.youtube.com/embed/%s?%s", url.PathEscape(ref.ChannelID), q.Encode()), nil

	case domain.PlatformKick:
		q := url.Values{}
		q.Set("autoplay", boolString(opts.Autoplay))
		q.Set("muted", boolString(opts.Muted))
		return fmt.Sprintf("https://player.kick.com/%s?%s", url.PathEscape(ref.ChannelID), q.Encode()), nil

	case domain.PlatformRumble:
		// rumble uses autoplay=2 for muted autostart
		embed := fmt.Sprintf("https://rumble.com/embed/%s/", url.PathEscape(ref.ChannelID))
		if opts.Autoplay {
			embed += "?autoplay=2"
		}
		return embed, nil

	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, ref.Platform)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

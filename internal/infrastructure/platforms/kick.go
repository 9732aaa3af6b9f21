package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"streamgrid/internal/core/domain"
)

const kickChannelsURL = "https://kick.com/api/v2/channels"

// KickClient reads the public channels API.
type KickClient struct {
	httpClient *http.Client
}

func NewKickClient(timeout time.Duration) *KickClient {
	return &KickClient{httpClient: newHTTPClient(timeout)}
}

func (c *KickClient) Platform() domain.Platform {
	return domain.PlatformKick
}

type kickChannelResponse struct {
	User struct {
		Username string `json:"username"`
	} `json:"user"`
	Livestream *struct {
		SessionTitle string `json:"session_title"`
		ViewerCount  int    `json:"viewer_count"`
		IsLive       bool   `json:"is_live"`
		Thumbnail    struct {
			URL string `json:"url"`
		} `json:"thumbnail"`
	} `json:"livestream"`
}

func (c *KickClient) Lookup(ctx context.Context, slug string) (*domain.StreamRef, error) {
	lookupURL := fmt.Sprintf("%s/%s", kickChannelsURL, url.PathEscape(slug))

	var body kickChannelResponse
	if err := getJSON(ctx, c.httpClient, lookupURL, nil, &body); err != nil {
		return nil, fmt.Errorf("kick channels: %w", err)
	}

	ref := &domain.StreamRef{
		Platform:    domain.PlatformKick,
		ChannelID:   slug,
		ChannelName: body.User.Username,
		ResolvedAt:  time.Now(),
	}
	if body.Livestream != nil {
		ref.Title = body.Livestream.SessionTitle
		ref.ViewerCount = body.Livestream.ViewerCount
		ref.ThumbnailURL = body.Livestream.Thumbnail.URL
		ref.Live = body.Livestream.IsLive
	}
	return ref, nil
}

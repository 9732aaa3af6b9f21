package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"streamgrid/internal/core/domain"
)

const rumbleOEmbedURL = "https://rumble.com/api/Media/oembed.json"

// RumbleClient resolves embed metadata through rumble's oEmbed API.
type RumbleClient struct {
	httpClient *http.Client
}

func NewRumbleClient(timeout time.Duration) *RumbleClient {
	return &RumbleClient{httpClient: newHTTPClient(timeout)}
}

func (c *RumbleClient) Platform() domain.Platform {
	return domain.PlatformRumble
}

func (c *RumbleClient) Lookup(ctx context.Context, videoID string) (*domain.StreamRef, error) {
	embedURL := fmt.Sprintf("https://rumble.com/embed/%s/", url.PathEscape(videoID))
	lookupURL := fmt.Sprintf("%s?url=%s", rumbleOEmbedURL, url.QueryEscape(embedURL))

	var body oembedResponse
	if err := getJSON(ctx, c.httpClient, lookupURL, nil, &body); err != nil {
		return nil, fmt.Errorf("rumble oembed: %w", err)
	}

	return &domain.StreamRef{
		Platform:     domain.PlatformRumble,
		ChannelID:    videoID,
		Title:        body.Title,
		ChannelName:  body.AuthorName,
		ThumbnailURL: body.ThumbnailURL,
		Live:         true,
		ResolvedAt:   time.Now(),
	}, nil
}

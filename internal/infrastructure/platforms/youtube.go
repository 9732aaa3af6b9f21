package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"streamgrid/internal/core/domain"
)

const youtubeOEmbedURL = "https://www.youtube.com/oembed"

// YouTubeClient resolves video metadata through the keyless oEmbed endpoint.
// oEmbed carries no viewer count; the viewer field stays zero.
type YouTubeClient struct {
	httpClient *http.Client
}

func NewYouTubeClient(timeout time.Duration) *YouTubeClient {
	return &YouTubeClient{httpClient: newHTTPClient(timeout)}
}

func (c *YouTubeClient) Platform() domain.Platform {
	return domain.PlatformYouTube
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (c *YouTubeClient) Lookup(ctx context.Context, videoID string) (*domain.StreamRef, error) {
	watchURL := "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
	lookupURL := fmt.Sprintf("%s?url=%s&format=json", youtubeOEmbedURL, url.QueryEscape(watchURL))

	var body oembedResponse
	if err := getJSON(ctx, c.httpClient, lookupURL, nil, &body); err != nil {
		return nil, fmt.Errorf("youtube oembed: %w", err)
	}

	return &domain.StreamRef{
		Platform:     domain.PlatformYouTube,
		ChannelID:    videoID,
		Title:        body.Title,
		ChannelName:  body.AuthorName,
		ThumbnailURL: body.ThumbnailURL,
		Live:         true,
		ResolvedAt:   time.Now(),
	}, nil
}

// Package platforms implements metadata lookup clients for the supported
// streaming services. Each client answers the same question: given a channel
// or video id, what is playing there right now.
package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
)

// compile-time interface checks
var (
	_ ports.PlatformClient = (*TwitchClient)(nil)
	_ ports.PlatformClient = (*YouTubeClient)(nil)
	_ ports.PlatformClient = (*KickClient)(nil)
	_ ports.PlatformClient = (*RumbleClient)(nil)
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes the JSON body into out. A 404 maps to
// ErrChannelNotFound so callers can distinguish "no such channel" from
// upstream trouble.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrChannelNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	return decodeBody(resp, out)
}

func decodeBody(resp *http.Response, out interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

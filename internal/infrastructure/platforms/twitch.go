package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"streamgrid/internal/core/domain"
)

const (
	twitchTokenURL   = "https://id.twitch.tv/oauth2/token"
	twitchHelixBase  = "https://api.twitch.tv/helix"
	twitchTokenSlack = time.Minute
)

// TwitchClient looks up live-stream metadata through the Helix API using an
// app access token obtained via the client-credentials flow. The token is
// cached until shortly before expiry.
type TwitchClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewTwitchClient(clientID, clientSecret string, timeout time.Duration) *TwitchClient {
	return &TwitchClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   newHTTPClient(timeout),
	}
}

func (c *TwitchClient) Platform() domain.Platform {
	return domain.PlatformTwitch
}

type helixStreamsResponse struct {
	Data []struct {
		UserLogin    string `json:"user_login"`
		UserName     string `json:"user_name"`
		Title        string `json:"title"`
		ViewerCount  int    `json:"viewer_count"`
		Type         string `json:"type"`
		ThumbnailURL string `json:"thumbnail_url"`
	} `json:"data"`
}

type helixUsersResponse struct {
	Data []struct {
		Login           string `json:"login"`
		DisplayName     string `json:"display_name"`
		ProfileImageURL string `json:"profile_image_url"`
	} `json:"data"`
}

func (c *TwitchClient) Lookup(ctx context.Context, channel string) (*domain.StreamRef, error) {
	token, err := c.appToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("helix: token: %w", err)
	}

	header := http.Header{}
	header.Set("Client-Id", c.clientID)
	header.Set("Authorization", "Bearer "+token)

	var streams helixStreamsResponse
	streamsURL := fmt.Sprintf("%s/streams?user_login=%s", twitchHelixBase, url.QueryEscape(channel))
	if err := getJSON(ctx, c.httpClient, streamsURL, header, &streams); err != nil {
		return nil, fmt.Errorf("helix: GetStreams: %w", err)
	}

	if len(streams.Data) > 0 {
		live := streams.Data[0]
		return &domain.StreamRef{
			Platform:     domain.PlatformTwitch,
			ChannelID:    channel,
			Title:        live.Title,
			ChannelName:  live.UserName,
			ViewerCount:  live.ViewerCount,
			ThumbnailURL: expandThumbnail(live.ThumbnailURL),
			Live:         true,
			ResolvedAt:   time.Now(),
		}, nil
	}

	// offline channels still resolve so the slot can render a placeholder
	var users helixUsersResponse
	usersURL := fmt.Sprintf("%s/users?login=%s", twitchHelixBase, url.QueryEscape(channel))
	if err := getJSON(ctx, c.httpClient, usersURL, header, &users); err != nil {
		return nil, fmt.Errorf("helix: GetUsers: %w", err)
	}
	if len(users.Data) == 0 {
		return nil, fmt.Errorf("%w: twitch channel %q", domain.ErrChannelNotFound, channel)
	}

	user := users.Data[0]
	return &domain.StreamRef{
		Platform:     domain.PlatformTwitch,
		ChannelID:    channel,
		ChannelName:  user.DisplayName,
		ThumbnailURL: user.ProfileImageURL,
		Live:         false,
		ResolvedAt:   time.Now(),
	}, nil
}

type twitchTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *TwitchClient) appToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-twitchTokenSlack)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, twitchTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok twitchTokenResponse
	if err := decodeBody(resp, &tok); err != nil {
		return "", err
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// expandThumbnail fills Helix's {width}x{height} thumbnail placeholders.
func expandThumbnail(tmpl string) string {
	tmpl = strings.ReplaceAll(tmpl, "{width}", "640")
	return strings.ReplaceAll(tmpl, "{height}", "360")
}

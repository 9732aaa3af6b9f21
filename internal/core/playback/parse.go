// Package playback turns user-pasted stream URLs into platform targets and
// builds the embed URLs the client loads into its player surfaces.
package playback

import (
	"fmt"
	"net/url"
	"strings"

	"streamgrid/internal/core/domain"
)

// Target is the parsed identity of a pasted stream URL. ID is the channel
// name for channel-keyed platforms and the video id for video-keyed ones.
type Target struct {
	Platform domain.Platform
	ID       string
}

// Parse extracts platform and channel/video identity from a pasted URL using
// host and path heuristics. A missing scheme is tolerated; anything that does
// not resolve to a known platform is rejected.
func Parse(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("%w: empty input", domain.ErrInvalidStreamURL)
	}
	if strings.ContainsAny(raw, " \t\n") {
		return Target{}, fmt.Errorf("%w: %q", domain.ErrInvalidStreamURL, raw)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Target{}, fmt.Errorf("%w: %q", domain.ErrInvalidStreamURL, raw)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "twitch.tv", "player.twitch.tv":
		return parseTwitch(u)
	case "youtube.com", "youtube-nocookie.com":
		return parseYouTube(u)
	case "youtu.be":
		if id := firstSegment(u.Path); id != "" {
			return Target{Platform: domain.PlatformYouTube, ID: id}, nil
		}
	case "kick.com", "player.kick.com":
		if slug := firstSegment(u.Path); slug != "" {
			return Target{Platform: domain.PlatformKick, ID: slug}, nil
		}
	case "rumble.com":
		return parseRumble(u)
	default:
		if !strings.Contains(host, ".") {
			return Target{}, fmt.Errorf("%w: %q", domain.ErrInvalidStreamURL, raw)
		}
		return Target{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, host)
	}

	return Target{}, fmt.Errorf("%w: %q", domain.ErrInvalidStreamURL, raw)
}

func parseTwitch(u *url.URL) (Target, error) {
	// player.twitch.tv/?channel=name embed links carry the channel in the query
	if ch := u.Query().Get("channel"); ch != "" {
		return Target{Platform: domain.PlatformTwitch, ID: ch}, nil
	}
	ch := firstSegment(u.Path)
	if ch == "" || ch == "videos" || ch == "directory" {
		return Target{}, fmt.Errorf("%w: no twitch channel in %q", domain.ErrInvalidStreamURL, u.String())
	}
	return Target{Platform: domain.PlatformTwitch, ID: ch}, nil
}

func parseYouTube(u *url.URL) (Target, error) {
	if v := u.Query().Get("v"); v != "" {
		return Target{Platform: domain.PlatformYouTube, ID: v}, nil
	}
	segs := splitPath(u.Path)
	if len(segs) >= 2 && (segs[0] == "live" || segs[0] == "embed" || segs[0] == "shorts") {
		return Target{Platform: domain.PlatformYouTube, ID: segs[1]}, nil
	}
	return Target{}, fmt.Errorf("%w: no youtube video id in %q", domain.ErrInvalidStreamURL, u.String())
}

func parseRumble(u *url.URL) (Target, error) {
	segs := splitPath(u.Path)
	if len(segs) >= 2 && segs[0] == "embed" {
		return Target{Platform: domain.PlatformRumble, ID: segs[1]}, nil
	}
	// watch pages look like rumble.com/v4abcd-some-title.html
	if len(segs) >= 1 && strings.HasPrefix(segs[0], "v") && len(segs[0]) > 1 {
		id := strings.TrimSuffix(segs[0], ".html")
		if i := strings.IndexByte(id, '-'); i > 0 {
			id = id[:i]
		}
		return Target{Platform: domain.PlatformRumble, ID: id}, nil
	}
	return Target{}, fmt.Errorf("%w: no rumble video id in %q", domain.ErrInvalidStreamURL, u.String())
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func firstSegment(p string) string {
	segs := splitPath(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

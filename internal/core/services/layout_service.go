package services

import (
	"context"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/layout"
	"streamgrid/internal/core/playback"
	"streamgrid/internal/core/ports"
)

// layoutService answers geometry questions for a session: where each slot
// goes for a given container size, and which embed URL each occupied slot
// should load. The math itself lives in the pure layout package.
type layoutService struct {
	repo       ports.SessionRepository
	opts       layout.Options
	parentHost string
}

func NewLayoutService(repo ports.SessionRepository, opts layout.Options, parentHost string) ports.LayoutService {
	return &layoutService{
		repo:       repo,
		opts:       opts,
		parentHost: parentHost,
	}
}

func (s *layoutService) Frames(ctx context.Context, id domain.SessionID, width, height float64) ([]layout.Frame, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return layout.Compute(session.Layout, len(session.Slots), width, height, s.opts), nil
}

// EmbedURLs builds the player URL for every occupied slot, keyed by slot
// index. Mute flags come from the session's audio state so the focused
// slot's embed is the only audible one in focused mode.
func (s *layoutService) EmbedURLs(ctx context.Context, id domain.SessionID) (map[int]string, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	urls := make(map[int]string)
	for i := range session.Slots {
		slot := &session.Slots[i]
		if !slot.Occupied() {
			continue
		}
		embed, err := playback.EmbedURL(slot.Stream, playback.EmbedOptions{
			ParentHost: s.parentHost,
			Autoplay:   true,
			Muted:      slot.Muted,
		})
		if err != nil {
			return nil, err
		}
		urls[slot.Index] = embed
	}
	return urls, nil
}

func (s *layoutService) Capacity(cfg domain.LayoutConfig) int {
	return layout.Capacity(cfg, s.opts)
}

func (s *layoutService) BentoTemplates() []string {
	return layout.BentoTemplates()
}

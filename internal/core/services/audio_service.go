package services

import (
	"context"
	"fmt"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"

	"go.uber.org/zap"
)

// audioService arbitrates the shared audio focus of a session. Updates are
// last-write-wins; the repository round-trip is the only synchronization a
// single-writer session needs.
type audioService struct {
	repo    ports.SessionRepository
	events  ports.EventPublisher
	metrics *MetricsService
	logger  *zap.SugaredLogger
}

func NewAudioService(
	repo ports.SessionRepository,
	events ports.EventPublisher,
	metrics *MetricsService,
	logger *zap.SugaredLogger,
) ports.AudioService {
	return &audioService{
		repo:    repo,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *audioService) SetMode(ctx context.Context, id domain.SessionID, mode domain.AudioMode) (*domain.Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid audio mode %q", mode)
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Audio.Mode = mode
	applyAudioPolicy(session)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventAudioModeChanged, id, domain.NoFocusedSlot)
	return session, nil
}

// SetFocus moves audio focus to the given slot. In focused_only mode every
// other slot is muted as a consequence; in manual mode only the focus id is
// recorded and the mute flags are left alone.
func (s *audioService) SetFocus(ctx context.Context, id domain.SessionID, index int) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if index != domain.NoFocusedSlot && session.SlotByIndex(index) == nil {
		return nil, fmt.Errorf("%w: index %d", domain.ErrSlotNotFound, index)
	}

	session.Audio.FocusedSlot = index
	applyAudioPolicy(session)

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.AudioFocusMoved()
	s.publish(ctx, domain.EventAudioFocusMoved, id, index)
	return session, nil
}

func (s *audioService) SetSlotMuted(ctx context.Context, id domain.SessionID, index int, muted bool) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Audio.Mode != domain.AudioManual {
		return nil, domain.ErrManualModeRequired
	}

	slot := session.SlotByIndex(index)
	if slot == nil {
		return nil, fmt.Errorf("%w: index %d", domain.ErrSlotNotFound, index)
	}

	slot.Muted = muted
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventSlotStateChanged, id, index)
	return session, nil
}

func (s *audioService) save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (s *audioService) publish(ctx context.Context, typ domain.EventType, id domain.SessionID, slotIndex int) {
	if s.events == nil {
		return
	}
	event := &domain.Event{Type: typ, SessionID: id, Timestamp: time.Now()}
	if slotIndex != domain.NoFocusedSlot {
		event.SlotIndex = slotIndex
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warnw("failed to publish audio event",
			"type", typ,
			"session_id", id,
			"error", err,
		)
	}
}

// applyAudioPolicy recomputes every slot's mute flag from the session's
// audio state. focused_only guarantees at most one audible slot; all unmutes
// every occupied slot; manual never touches the flags.
func applyAudioPolicy(session *domain.Session) {
	switch session.Audio.Mode {
	case domain.AudioFocusedOnly:
		for i := range session.Slots {
			session.Slots[i].Muted = session.Slots[i].Index != session.Audio.FocusedSlot
		}
	case domain.AudioAll:
		for i := range session.Slots {
			session.Slots[i].Muted = !session.Slots[i].Occupied()
		}
	case domain.AudioManual:
		// flags are under independent control
	}
}

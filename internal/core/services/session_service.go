package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/layout"
	"streamgrid/internal/core/ports"
	"streamgrid/pkg/tracing"
	"streamgrid/pkg/utils"

	"go.uber.org/zap"
)

// SessionConfig bounds session shape and the per-slot retry policy.
type SessionConfig struct {
	MaxRetries    int
	DefaultSlots  int
	MaxSlots      int
	LayoutOptions layout.Options
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxRetries:    3,
		DefaultSlots:  4,
		MaxSlots:      16,
		LayoutOptions: layout.DefaultOptions(),
	}
}

type sessionService struct {
	repo    ports.SessionRepository
	events  ports.EventPublisher
	metrics *MetricsService
	cfg     SessionConfig
	logger  *zap.SugaredLogger
}

func NewSessionService(
	repo ports.SessionRepository,
	events ports.EventPublisher,
	metrics *MetricsService,
	cfg SessionConfig,
	logger *zap.SugaredLogger,
) ports.SessionService {
	return &sessionService{
		repo:    repo,
		events:  events,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, owner domain.UserID, name string, cfg domain.LayoutConfig, slotCount int) (*domain.Session, error) {
	name = strings.TrimSpace(name)
	if cfg.Kind == "" {
		cfg = domain.DefaultLayout()
	}

	slotCount = s.clampSlotCount(cfg, slotCount)
	slots := make([]domain.Slot, slotCount)
	for i := range slots {
		slots[i] = domain.NewSlot(i)
	}

	now := time.Now()
	session := &domain.Session{
		ID:     domain.SessionID(utils.GenerateSessionID()),
		Owner:  owner,
		Name:   name,
		Layout: cfg,
		Slots:  slots,
		Audio: domain.AudioState{
			Mode:        domain.AudioFocusedOnly,
			FocusedSlot: domain.NoFocusedSlot,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.metrics.SessionOpened()
	s.publish(ctx, domain.EventSessionCreated, session.ID, domain.NoFocusedSlot)
	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *sessionService) ListSessions(ctx context.Context, owner domain.UserID) ([]*domain.Session, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *sessionService) CloseSession(ctx context.Context, id domain.SessionID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.SessionClosed()
	s.publish(ctx, domain.EventSessionClosed, id, domain.NoFocusedSlot)
	return nil
}

// SetLayout switches the session's arrangement. Slots retained by the new
// capacity keep their streams; excess slots are dropped. Dropping the
// focused slot unsets audio focus.
func (s *sessionService) SetLayout(ctx context.Context, id domain.SessionID, cfg domain.LayoutConfig) (*domain.Session, error) {
	ctx, span := tracing.TraceSessionOperation(ctx, "set_layout", string(id))
	defer span.End()

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}

	count := s.clampSlotCount(cfg, len(session.Slots))
	if count < len(session.Slots) {
		session.Slots = session.Slots[:count]
		if session.Audio.FocusedSlot >= count {
			session.Audio.FocusedSlot = domain.NoFocusedSlot
		}
	}
	for count > len(session.Slots) {
		session.Slots = append(session.Slots, domain.NewSlot(len(session.Slots)))
	}

	session.Layout = cfg
	applyAudioPolicy(session)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.LayoutChanged(cfg.Kind)
	s.publish(ctx, domain.EventLayoutChanged, id, domain.NoFocusedSlot)
	return session, nil
}

// AssignSlot replaces the slot's stream and restarts its load cycle: state
// goes to loading and the error/retry bookkeeping is reset regardless of
// prior state.
func (s *sessionService) AssignSlot(ctx context.Context, id domain.SessionID, index int, ref *domain.StreamRef) (*domain.Session, error) {
	if ref == nil {
		return nil, domain.ErrSlotEmpty
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slot := session.SlotByIndex(index)
	if slot == nil {
		return nil, fmt.Errorf("%w: index %d", domain.ErrSlotNotFound, index)
	}

	slot.Stream = ref
	slot.State = domain.SlotLoading
	slot.RetryCount = 0
	slot.LastError = ""

	applyAudioPolicy(session)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.SlotAssigned(ref.Platform)
	s.publish(ctx, domain.EventSlotAssigned, id, index)
	return session, nil
}

func (s *sessionService) ClearSlot(ctx context.Context, id domain.SessionID, index int) (*domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slot := session.SlotByIndex(index)
	if slot == nil {
		return nil, fmt.Errorf("%w: index %d", domain.ErrSlotNotFound, index)
	}

	platform := domain.PlatformOther
	if slot.Stream != nil {
		platform = slot.Stream.Platform
	}

	slot.Stream = nil
	slot.State = domain.SlotEmpty
	slot.RetryCount = 0
	slot.LastError = ""

	// clearing the audible slot leaves the session silent rather than
	// auto-promoting a neighbour
	if session.Audio.FocusedSlot == index {
		session.Audio.FocusedSlot = domain.NoFocusedSlot
	}

	applyAudioPolicy(session)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.SlotCleared(platform)
	s.publish(ctx, domain.EventSlotCleared, id, index)
	return session, nil
}

func (s *sessionService) MarkSlotReady(ctx context.Context, id domain.SessionID, index int) error {
	return s.transitionSlot(ctx, id, index, func(slot *domain.Slot) error {
		if !slot.Occupied() {
			return domain.ErrSlotEmpty
		}
		slot.State = domain.SlotReady
		slot.LastError = ""
		return nil
	})
}

func (s *sessionService) MarkSlotError(ctx context.Context, id domain.SessionID, index int, message string) error {
	return s.transitionSlot(ctx, id, index, func(slot *domain.Slot) error {
		if !slot.Occupied() {
			return domain.ErrSlotEmpty
		}
		slot.State = domain.SlotError
		slot.LastError = message
		s.metrics.SlotErrored()
		return nil
	})
}

// RetrySlot moves an errored slot back to loading while the retry budget
// lasts. Once RetryCount reaches the cap the slot stays in terminal error
// and callers get ErrRetriesExhausted.
func (s *sessionService) RetrySlot(ctx context.Context, id domain.SessionID, index int) error {
	return s.transitionSlot(ctx, id, index, func(slot *domain.Slot) error {
		if !slot.Occupied() {
			return domain.ErrSlotEmpty
		}
		if slot.State != domain.SlotError {
			return fmt.Errorf("slot %d is %s, only errored slots can be retried", index, slot.State)
		}
		if slot.RetryCount >= s.cfg.MaxRetries {
			return fmt.Errorf("%w: %d attempts", domain.ErrRetriesExhausted, slot.RetryCount)
		}
		slot.RetryCount++
		slot.State = domain.SlotLoading
		s.metrics.SlotRetried()
		return nil
	})
}

func (s *sessionService) transitionSlot(ctx context.Context, id domain.SessionID, index int, mutate func(*domain.Slot) error) error {
	ctx, span := tracing.TraceSessionOperation(ctx, "slot_transition", string(id))
	defer span.End()

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		tracing.RecordError(ctx, err)
		return err
	}

	slot := session.SlotByIndex(index)
	if slot == nil {
		return fmt.Errorf("%w: index %d", domain.ErrSlotNotFound, index)
	}

	if err := mutate(slot); err != nil {
		return err
	}

	if err := s.save(ctx, session); err != nil {
		return err
	}

	s.publish(ctx, domain.EventSlotStateChanged, id, index)
	return nil
}

func (s *sessionService) clampSlotCount(cfg domain.LayoutConfig, n int) int {
	if n <= 0 {
		capacity := layout.Capacity(cfg, s.cfg.LayoutOptions)
		if capacity == layout.Unbounded {
			n = s.cfg.DefaultSlots
		} else {
			n = capacity
		}
	}
	n = layout.Clamp(cfg, n, s.cfg.LayoutOptions)
	if n > s.cfg.MaxSlots {
		n = s.cfg.MaxSlots
	}
	return n
}

func (s *sessionService) save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (s *sessionService) publish(ctx context.Context, typ domain.EventType, id domain.SessionID, slotIndex int) {
	if s.events == nil {
		return
	}
	event := &domain.Event{Type: typ, SessionID: id, Timestamp: time.Now()}
	if slotIndex != domain.NoFocusedSlot {
		event.SlotIndex = slotIndex
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warnw("failed to publish session event",
			"type", typ,
			"session_id", id,
			"error", err,
		)
	}
}

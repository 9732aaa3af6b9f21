package services_test

import (
	"context"
	"testing"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
	"streamgrid/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Mock repositories
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id domain.SessionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Session, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestService(repo *MockSessionRepository) (services.SessionConfig, ports.SessionService) {
	cfg := services.DefaultSessionConfig()
	return cfg, services.NewSessionService(repo, nil, services.NewMetricsService(), cfg, zap.NewNop().Sugar())
}

func testSession(slots int) *domain.Session {
	s := &domain.Session{
		ID:     "sess-1",
		Owner:  "user-1",
		Name:   "race day",
		Layout: domain.DefaultLayout(),
		Audio: domain.AudioState{
			Mode:        domain.AudioFocusedOnly,
			FocusedSlot: domain.NoFocusedSlot,
		},
	}
	for i := 0; i < slots; i++ {
		s.Slots = append(s.Slots, domain.NewSlot(i))
	}
	return s
}

func occupy(s *domain.Session, index int, platform domain.Platform) {
	slot := s.SlotByIndex(index)
	slot.Stream = &domain.StreamRef{Platform: platform, ChannelID: "chan"}
	slot.State = domain.SlotReady
}

func TestSessionService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults for an unbounded layout", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		mockEvents := new(MockEventPublisher)
		cfg := services.DefaultSessionConfig()
		svc := services.NewSessionService(mockRepo, mockEvents, services.NewMetricsService(), cfg, zap.NewNop().Sugar())

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)
		mockEvents.On("Publish", ctx, mock.AnythingOfType("*domain.Event")).Return(nil)

		session, err := svc.CreateSession(ctx, "user-1", "  race day  ", domain.LayoutConfig{}, 0)

		assert.NoError(t, err)
		assert.Equal(t, "race day", session.Name)
		assert.Equal(t, domain.DefaultLayout(), session.Layout)
		assert.Len(t, session.Slots, cfg.DefaultSlots)
		for _, slot := range session.Slots {
			assert.Equal(t, domain.SlotEmpty, slot.State)
			assert.True(t, slot.Muted)
			assert.Nil(t, slot.Stream)
		}
		assert.Equal(t, domain.AudioFocusedOnly, session.Audio.Mode)
		assert.Equal(t, domain.NoFocusedSlot, session.Audio.FocusedSlot)
		mockRepo.AssertExpectations(t)
		mockEvents.AssertExpectations(t)
	})

	t.Run("bounded layout fills to capacity", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		cfg, svc := newTestService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)

		pip := domain.LayoutConfig{Kind: domain.LayoutPiP, PiPCorner: domain.CornerBottomRight}
		session, err := svc.CreateSession(ctx, "user-1", "pip", pip, 0)

		assert.NoError(t, err)
		assert.Len(t, session.Slots, 1+cfg.LayoutOptions.MaxPiPOverlays)
	})

	t.Run("slot count is capped at the session maximum", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		cfg, svc := newTestService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)

		session, err := svc.CreateSession(ctx, "user-1", "wall", domain.DefaultLayout(), 100)

		assert.NoError(t, err)
		assert.Len(t, session.Slots, cfg.MaxSlots)
	})
}

func TestSessionService_AssignSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment restarts the load cycle", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		_, svc := newTestService(mockRepo)

		session := testSession(4)
		slot := session.SlotByIndex(1)
		slot.Stream = &domain.StreamRef{Platform: domain.PlatformTwitch, ChannelID: "old"}
		slot.State = domain.SlotError
		slot.RetryCount = 2
		slot.LastError = "network failure"

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)
		mockRepo.On("Update", ctx, session).Return(nil)

		ref := &domain.StreamRef{Platform: domain.PlatformYouTube, ChannelID: "jfKfPfyJRdk"}
		updated, err := svc.AssignSlot(ctx, session.ID, 1, ref)

		assert.NoError(t, err)
		got := updated.SlotByIndex(1)
		assert.Equal(t, ref, got.Stream)
		assert.Equal(t, domain.SlotLoading, got.State)
		assert.Equal(t, 0, got.RetryCount)
		assert.Empty(t, got.LastError)
	})

	t.Run("nil reference is rejected", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		_, err := svc.AssignSlot(ctx, "sess-1", 0, nil)

		assert.ErrorIs(t, err, domain.ErrSlotEmpty)
	})

	t.Run("unknown slot index", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(2)
		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)

		ref := &domain.StreamRef{Platform: domain.PlatformKick, ChannelID: "xqc"}
		_, err := svc.AssignSlot(ctx, session.ID, 7, ref)

		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	})
}

func TestSessionService_RetrySlot(t *testing.T) {
	ctx := context.Background()

	t.Run("errored slot goes back to loading", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(2)
		occupy(session, 0, domain.PlatformTwitch)
		slot := session.SlotByIndex(0)
		slot.State = domain.SlotError
		slot.LastError = "embed failed"

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)
		mockRepo.On("Update", ctx, session).Return(nil)

		err := svc.RetrySlot(ctx, session.ID, 0)

		assert.NoError(t, err)
		assert.Equal(t, domain.SlotLoading, slot.State)
		assert.Equal(t, 1, slot.RetryCount)
	})

	t.Run("retry budget is terminal", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		cfg := services.DefaultSessionConfig()
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), cfg, zap.NewNop().Sugar())

		session := testSession(2)
		occupy(session, 0, domain.PlatformTwitch)
		slot := session.SlotByIndex(0)
		slot.State = domain.SlotError
		slot.RetryCount = cfg.MaxRetries

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)

		err := svc.RetrySlot(ctx, session.ID, 0)

		assert.ErrorIs(t, err, domain.ErrRetriesExhausted)
		assert.Equal(t, domain.SlotError, slot.State)
		assert.Equal(t, cfg.MaxRetries, slot.RetryCount)
	})

	t.Run("only errored slots can be retried", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(2)
		occupy(session, 0, domain.PlatformTwitch)

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)

		err := svc.RetrySlot(ctx, session.ID, 0)

		assert.Error(t, err)
		assert.Equal(t, domain.SlotReady, session.SlotByIndex(0).State)
	})

	t.Run("empty slot cannot be retried", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(2)
		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)

		err := svc.RetrySlot(ctx, session.ID, 1)

		assert.ErrorIs(t, err, domain.ErrSlotEmpty)
	})
}

func TestSessionService_SetLayout(t *testing.T) {
	ctx := context.Background()

	t.Run("shrinking keeps the lowest indexes and drops out-of-range focus", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(8)
		for i := 0; i < 8; i++ {
			occupy(session, i, domain.PlatformTwitch)
		}
		session.Audio.FocusedSlot = 7

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)
		mockRepo.On("Update", ctx, session).Return(nil)

		pip := domain.LayoutConfig{Kind: domain.LayoutPiP, PiPCorner: domain.CornerTopRight}
		updated, err := svc.SetLayout(ctx, session.ID, pip)

		assert.NoError(t, err)
		assert.Len(t, updated.Slots, 5)
		for i, slot := range updated.Slots {
			assert.Equal(t, i, slot.Index)
			assert.True(t, slot.Occupied())
		}
		assert.Equal(t, domain.NoFocusedSlot, updated.Audio.FocusedSlot)
	})

	t.Run("switching under capacity keeps the slot count", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(2)
		occupy(session, 0, domain.PlatformKick)

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)
		mockRepo.On("Update", ctx, session).Return(nil)

		updated, err := svc.SetLayout(ctx, session.ID, domain.LayoutConfig{Kind: domain.LayoutPiP})

		assert.NoError(t, err)
		assert.Len(t, updated.Slots, 2)
		assert.True(t, updated.Slots[0].Occupied())
		assert.False(t, updated.Slots[1].Occupied())
	})
}

func TestSessionService_ClearSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("clearing the focused slot leaves the session silent", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		svc := services.NewSessionService(mockRepo, nil, services.NewMetricsService(), services.DefaultSessionConfig(), zap.NewNop().Sugar())

		session := testSession(3)
		occupy(session, 0, domain.PlatformTwitch)
		occupy(session, 1, domain.PlatformYouTube)
		session.Audio.FocusedSlot = 1
		session.SlotByIndex(1).Muted = false

		mockRepo.On("GetByID", ctx, session.ID).Return(session, nil)
		mockRepo.On("Update", ctx, session).Return(nil)

		updated, err := svc.ClearSlot(ctx, session.ID, 1)

		assert.NoError(t, err)
		cleared := updated.SlotByIndex(1)
		assert.Nil(t, cleared.Stream)
		assert.Equal(t, domain.SlotEmpty, cleared.State)
		assert.Equal(t, domain.NoFocusedSlot, updated.Audio.FocusedSlot)
		for _, slot := range updated.Slots {
			assert.True(t, slot.Muted)
		}
	})
}

package ports

import (
	"context"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/layout"
)

type SessionService interface {
	CreateSession(ctx context.Context, owner domain.UserID, name string, layout domain.LayoutConfig, slotCount int) (*domain.Session, error)
	GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	ListSessions(ctx context.Context, owner domain.UserID) ([]*domain.Session, error)
	CloseSession(ctx context.Context, id domain.SessionID) error
	SetLayout(ctx context.Context, id domain.SessionID, layout domain.LayoutConfig) (*domain.Session, error)
	AssignSlot(ctx context.Context, id domain.SessionID, index int, ref *domain.StreamRef) (*domain.Session, error)
	ClearSlot(ctx context.Context, id domain.SessionID, index int) (*domain.Session, error)
	MarkSlotReady(ctx context.Context, id domain.SessionID, index int) error
	MarkSlotError(ctx context.Context, id domain.SessionID, index int, message string) error
	RetrySlot(ctx context.Context, id domain.SessionID, index int) error
}

type AudioService interface {
	SetMode(ctx context.Context, id domain.SessionID, mode domain.AudioMode) (*domain.Session, error)
	SetFocus(ctx context.Context, id domain.SessionID, index int) (*domain.Session, error)
	SetSlotMuted(ctx context.Context, id domain.SessionID, index int, muted bool) (*domain.Session, error)
}

type LayoutService interface {
	Frames(ctx context.Context, id domain.SessionID, width, height float64) ([]layout.Frame, error)
	EmbedURLs(ctx context.Context, id domain.SessionID) (map[int]string, error)
	Capacity(cfg domain.LayoutConfig) int
	BentoTemplates() []string
}

type ResolveService interface {
	Resolve(ctx context.Context, rawURL string) (*domain.StreamRef, error)
}

// PlatformClient looks up live-stream metadata on one external platform.
type PlatformClient interface {
	Platform() domain.Platform
	Lookup(ctx context.Context, id string) (*domain.StreamRef, error)
}

// EventPublisher fans session change events out to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

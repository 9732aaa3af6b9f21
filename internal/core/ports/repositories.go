package ports

import (
	"context"

	"streamgrid/internal/core/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id domain.SessionID) error
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Session, error)
}

type PreferenceRepository interface {
	Set(ctx context.Context, pref domain.Preference) error
	Get(ctx context.Context, user domain.UserID, key string) (*domain.Preference, error)
	Delete(ctx context.Context, user domain.UserID, key string) error
	List(ctx context.Context, user domain.UserID) ([]domain.Preference, error)
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
)

// MemorySessionRepository stores sessions in a mutex-guarded map. Sessions
// are deep-copied on every boundary so callers never share slot slices.
type MemorySessionRepository struct {
	sessions map[domain.SessionID]*domain.Session
	mu       sync.RWMutex
}

func NewMemorySessionRepository() ports.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (r *MemorySessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session already exists: %s", session.ID)
	}

	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *MemorySessionRepository) GetByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, domain.ErrSessionNotFound
	}

	return cloneSession(session), nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists {
		return domain.ErrSessionNotFound
	}

	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return domain.ErrSessionNotFound
	}

	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []*domain.Session
	for _, session := range r.sessions {
		if session.Owner == owner {
			owned = append(owned, cloneSession(session))
		}
	}

	return owned, nil
}

func cloneSession(s *domain.Session) *domain.Session {
	clone := *s
	clone.Slots = make([]domain.Slot, len(s.Slots))
	copy(clone.Slots, s.Slots)
	for i := range clone.Slots {
		if clone.Slots[i].Stream != nil {
			ref := *clone.Slots[i].Stream
			clone.Slots[i].Stream = &ref
		}
	}
	return &clone
}

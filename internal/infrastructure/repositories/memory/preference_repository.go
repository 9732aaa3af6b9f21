package memory

import (
	"context"
	"sort"
	"sync"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
)

type prefKey struct {
	user domain.UserID
	key  string
}

// MemoryPreferenceRepository stores flat key/value settings per user.
type MemoryPreferenceRepository struct {
	prefs map[prefKey]domain.Preference
	mu    sync.RWMutex
}

func NewMemoryPreferenceRepository() ports.PreferenceRepository {
	return &MemoryPreferenceRepository{
		prefs: make(map[prefKey]domain.Preference),
	}
}

func (r *MemoryPreferenceRepository) Set(ctx context.Context, pref domain.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefKey{user: pref.UserID, key: pref.Key}] = pref
	return nil
}

func (r *MemoryPreferenceRepository) Get(ctx context.Context, user domain.UserID, key string) (*domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pref, exists := r.prefs[prefKey{user: user, key: key}]
	if !exists {
		return nil, domain.ErrPreferenceNotFound
	}
	return &pref, nil
}

func (r *MemoryPreferenceRepository) Delete(ctx context.Context, user domain.UserID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := prefKey{user: user, key: key}
	if _, exists := r.prefs[k]; !exists {
		return domain.ErrPreferenceNotFound
	}
	delete(r.prefs, k)
	return nil
}

func (r *MemoryPreferenceRepository) List(ctx context.Context, user domain.UserID) ([]domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var prefs []domain.Preference
	for k, pref := range r.prefs {
		if k.user == user {
			prefs = append(prefs, pref)
		}
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Key < prefs[j].Key })

	return prefs, nil
}

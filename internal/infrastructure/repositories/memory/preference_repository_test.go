package memory

import (
	"context"
	"testing"

	"streamgrid/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestMemoryPreferenceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPreferenceRepository()

	assert.NoError(t, repo.Set(ctx, domain.Preference{UserID: "user-1", Key: "theme", Value: "dark"}))
	assert.NoError(t, repo.Set(ctx, domain.Preference{UserID: "user-1", Key: "default_layout", Value: "grid"}))
	assert.NoError(t, repo.Set(ctx, domain.Preference{UserID: "user-2", Key: "theme", Value: "light"}))

	pref, err := repo.Get(ctx, "user-1", "theme")
	assert.NoError(t, err)
	assert.Equal(t, "dark", pref.Value)

	// overwrite replaces the value
	assert.NoError(t, repo.Set(ctx, domain.Preference{UserID: "user-1", Key: "theme", Value: "light"}))
	pref, err = repo.Get(ctx, "user-1", "theme")
	assert.NoError(t, err)
	assert.Equal(t, "light", pref.Value)

	prefs, err := repo.List(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, prefs, 2)
	assert.Equal(t, "default_layout", prefs[0].Key)
	assert.Equal(t, "theme", prefs[1].Key)

	assert.NoError(t, repo.Delete(ctx, "user-1", "theme"))
	_, err = repo.Get(ctx, "user-1", "theme")
	assert.ErrorIs(t, err, domain.ErrPreferenceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "user-1", "theme"), domain.ErrPreferenceNotFound)
}

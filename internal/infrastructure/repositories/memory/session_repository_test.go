package memory

import (
	"context"
	"testing"

	"streamgrid/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func storedSession(id domain.SessionID, owner domain.UserID) *domain.Session {
	s := &domain.Session{
		ID:     id,
		Owner:  owner,
		Name:   "watch party",
		Layout: domain.DefaultLayout(),
		Audio: domain.AudioState{
			Mode:        domain.AudioFocusedOnly,
			FocusedSlot: domain.NoFocusedSlot,
		},
	}
	for i := 0; i < 3; i++ {
		s.Slots = append(s.Slots, domain.NewSlot(i))
	}
	s.Slots[0].Stream = &domain.StreamRef{Platform: domain.PlatformTwitch, ChannelID: "shroud"}
	s.Slots[0].State = domain.SlotReady
	return s
}

func TestMemorySessionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	session := storedSession("sess-1", "user-1")

	assert.NoError(t, repo.Create(ctx, session))
	assert.Error(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, session, got)

	got.Name = "renamed"
	assert.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	assert.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err = repo.GetByID(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Update(ctx, session), domain.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "sess-1"), domain.ErrSessionNotFound)
}

func TestMemorySessionRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	assert.NoError(t, repo.Create(ctx, storedSession("sess-1", "user-1")))
	assert.NoError(t, repo.Create(ctx, storedSession("sess-2", "user-1")))
	assert.NoError(t, repo.Create(ctx, storedSession("sess-3", "user-2")))

	owned, err := repo.ListByOwner(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, owned, 2)

	owned, err = repo.ListByOwner(ctx, "user-3")
	assert.NoError(t, err)
	assert.Empty(t, owned)
}

func TestMemorySessionRepository_ClonesOnBoundaries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	session := storedSession("sess-1", "user-1")
	assert.NoError(t, repo.Create(ctx, session))

	// mutating the caller's copy must not reach the stored one
	session.Slots[0].Stream.ChannelID = "someone-else"
	session.Slots[1].State = domain.SlotError

	got, err := repo.GetByID(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, "shroud", got.Slots[0].Stream.ChannelID)
	assert.Equal(t, domain.SlotEmpty, got.Slots[1].State)

	// and mutating a read copy must not reach later reads
	got.Slots[0].Muted = false

	again, err := repo.GetByID(ctx, "sess-1")
	assert.NoError(t, err)
	assert.True(t, again.Slots[0].Muted)
}

package beneficiary

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestAddListAndRemove(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))
	ctx := context.Background()

	b1, err := store.Add(ctx, "alice", "bob@example.com", "Bob")
	require.NoError(t, err)
	b2, err := store.Add(ctx, "alice", "carol@example.com", "Carol")
	require.NoError(t, err)
	_, err = store.Add(ctx, "other", "dan@example.com", "Dan")
	require.NoError(t, err)

	got, err := store.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, store.Remove(ctx, "alice", b1.ID))
	got, err = store.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, b2.ID, got[0].ID)
}

func TestAddRequiresEmail(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))

	_, err := store.Add(context.Background(), "alice", "  ", "Bob")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUpdatePatchesFields(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))
	ctx := context.Background()

	b, err := store.Add(ctx, "alice", "bob@example.com", "Bob")
	require.NoError(t, err)

	updated, err := store.Update(ctx, "alice", b.ID, "", "Robert")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", updated.Email)
	require.Equal(t, "Robert", updated.Name)

	_, err = store.Update(ctx, "alice", uuid.New(), "x@example.com", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOwnersAreIsolated(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))
	ctx := context.Background()

	b, err := store.Add(ctx, "alice", "bob@example.com", "Bob")
	require.NoError(t, err)

	_, err = store.Get(ctx, "mallory", b.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Remove(ctx, "mallory", b.ID), ErrNotFound)
}

func TestRemoveByOwner(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))
	ctx := context.Background()

	_, err := store.Add(ctx, "alice", "bob@example.com", "Bob")
	require.NoError(t, err)
	require.NoError(t, store.RemoveByOwner(ctx, "alice"))

	got, err := store.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, got)
}

package vault

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPutIsUpsertWithStableID(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))
	ctx := context.Background()

	created, err := store.Put(ctx, "alice", "personal", "ciphertext-1", "salt-1")
	require.NoError(t, err)
	require.Equal(t, "alice", created.Owner)

	updated, err := store.Put(ctx, "alice", "personal", "ciphertext-2", "salt-2")
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID, "one vault per account keeps its identity")
	require.Equal(t, "ciphertext-2", updated.EncryptedData)

	snap, present, err := store.Snapshot(ctx, "alice")
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, updated, snap)
}

func TestSnapshotAbsentIsNotAnError(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))

	_, present, err := store.Snapshot(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, present)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	store := NewMemory(zerolog.New(io.Discard))
	ctx := context.Background()

	_, err := store.Put(ctx, "alice", "personal", "ciphertext", "salt")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "alice"))
	_, present, err := store.Snapshot(ctx, "alice")
	require.NoError(t, err)
	require.False(t, present)

	require.ErrorIs(t, store.Delete(ctx, "alice"), ErrNotFound)
}

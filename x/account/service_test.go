package account

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vaultguard/sentinel/x/beneficiary"
	"github.com/vaultguard/sentinel/x/timer"
	"github.com/vaultguard/sentinel/x/vault"
)

func newFixture(t *testing.T) (*Service, *timer.Memory, *vault.Memory, *beneficiary.Memory) {
	t.Helper()
	log := zerolog.New(io.Discard)
	timers := timer.NewMemory(log)
	vaults := vault.NewMemory(log)
	beneficiaries := beneficiary.NewMemory(log)
	return NewService(timers, vaults, beneficiaries, log), timers, vaults, beneficiaries
}

func TestCreateRegistersTimerWithDefaultWindow(t *testing.T) {
	t.Parallel()
	svc, timers, _, _ := newFixture(t)
	ctx := context.Background()

	acc, err := svc.Create(ctx, "Alice@Example.com")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", acc.Email)
	require.True(t, acc.Active)

	tm, err := timers.Get(ctx, acc.ID.String())
	require.NoError(t, err)
	require.Equal(t, timer.DefaultTimeoutDays, tm.TimeoutDays)
	require.Equal(t, timer.StatusActive, tm.Status)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice@example.com")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "ALICE@example.com")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateRejectsEmptyEmail(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(t)

	_, err := svc.Create(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestDestroyCascades(t *testing.T) {
	t.Parallel()
	svc, timers, vaults, beneficiaries := newFixture(t)
	ctx := context.Background()

	acc, err := svc.Create(ctx, "alice@example.com")
	require.NoError(t, err)
	owner := acc.ID.String()

	_, err = vaults.Put(ctx, owner, "vault", "ciphertext", "salt")
	require.NoError(t, err)
	_, err = beneficiaries.Add(ctx, owner, "bob@example.com", "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(ctx, owner))

	_, err = svc.Get(ctx, owner)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = timers.Get(ctx, owner)
	require.ErrorIs(t, err, timer.ErrNotFound)
	_, present, err := vaults.Snapshot(ctx, owner)
	require.NoError(t, err)
	require.False(t, present)
	got, err := beneficiaries.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDestroyUnknownOwner(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(t)

	require.ErrorIs(t, svc.Destroy(context.Background(), "ghost"), ErrNotFound)
}

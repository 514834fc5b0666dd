package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLedger_StartingBalance(t *testing.T) {
	ledger, err := NewFileLedger(filepath.Join(t.TempDir(), "ledger.json"), 1000)
	require.NoError(t, err)

	balance, err := ledger.GetBalance(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestFileLedger_ApplyDelta(t *testing.T) {
	ledger, err := NewFileLedger(filepath.Join(t.TempDir(), "ledger.json"), 1000)
	require.NoError(t, err)
	ctx := context.Background()

	balance, err := ledger.ApplyDelta(ctx, 42, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)

	balance, err = ledger.ApplyDelta(ctx, 42, -2000)
	require.NoError(t, err)
	assert.Equal(t, int64(-500), balance)

	balance, err = ledger.GetBalance(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(-500), balance)

	// Other users are untouched
	balance, err = ledger.GetBalance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestFileLedger_PersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	ctx := context.Background()
	expires := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	ledger, err := NewFileLedger(path, 1000)
	require.NoError(t, err)

	_, err = ledger.ApplyDelta(ctx, 42, 500)
	require.NoError(t, err)
	require.NoError(t, ledger.SetCooldown(ctx, 42, "daily", expires))

	// A fresh instance over the same file sees the persisted state
	reopened, err := NewFileLedger(path, 1000)
	require.NoError(t, err)

	balance, err := reopened.GetBalance(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)

	cooldown, err := reopened.GetCooldown(ctx, 42, "daily")
	require.NoError(t, err)
	require.NotNil(t, cooldown)
	assert.True(t, cooldown.Equal(expires))

	cooldown, err = reopened.GetCooldown(ctx, 42, "gamble")
	require.NoError(t, err)
	assert.Nil(t, cooldown)
}

func TestFileLedger_MissingFile(t *testing.T) {
	ledger, err := NewFileLedger(filepath.Join(t.TempDir(), "missing", "ledger.json"), 1000)
	require.NoError(t, err)

	balance, err := ledger.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestFileLedger_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	// Corrupt state starts a fresh ledger instead of failing startup
	ledger, err := NewFileLedger(path, 1000)
	require.NoError(t, err)

	balance, err := ledger.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	// The first mutation replaces the corrupt file with a valid snapshot
	_, err = ledger.ApplyDelta(context.Background(), 1, 250)
	require.NoError(t, err)

	reopened, err := NewFileLedger(path, 1000)
	require.NoError(t, err)
	balance, err = reopened.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), balance)
}

func TestFileLedger_SetCooldownOverwrites(t *testing.T) {
	ledger, err := NewFileLedger(filepath.Join(t.TempDir(), "ledger.json"), 1000)
	require.NoError(t, err)
	ctx := context.Background()

	first := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)

	require.NoError(t, ledger.SetCooldown(ctx, 42, "steal", first))
	require.NoError(t, ledger.SetCooldown(ctx, 42, "steal", second))

	cooldown, err := ledger.GetCooldown(ctx, 42, "steal")
	require.NoError(t, err)
	require.NotNil(t, cooldown)
	assert.True(t, cooldown.Equal(second))
}

package repository

import (
	"context"
	"testing"
	"time"

	"applebot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresLedger_Balances(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	ledger := NewPostgresLedger(testDB.DB, 1000)
	ctx := context.Background()

	t.Run("unknown user gets starting balance", func(t *testing.T) {
		balance, err := ledger.GetBalance(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), balance)
	})

	t.Run("first delta creates the account at starting balance", func(t *testing.T) {
		balance, err := ledger.ApplyDelta(ctx, 42, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), balance)

		balance, err = ledger.GetBalance(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), balance)
	})

	t.Run("deltas accumulate and may go negative", func(t *testing.T) {
		balance, err := ledger.ApplyDelta(ctx, 42, -2000)
		require.NoError(t, err)
		assert.Equal(t, int64(-500), balance)
	})

	t.Run("users are independent", func(t *testing.T) {
		balance, err := ledger.GetBalance(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), balance)
	})
}

func TestPostgresLedger_Cooldowns(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	ledger := NewPostgresLedger(testDB.DB, 1000)
	ctx := context.Background()

	expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Microsecond)

	t.Run("no record", func(t *testing.T) {
		cooldown, err := ledger.GetCooldown(ctx, 42, "steal")
		require.NoError(t, err)
		assert.Nil(t, cooldown)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, ledger.SetCooldown(ctx, 42, "steal", expires))

		cooldown, err := ledger.GetCooldown(ctx, 42, "steal")
		require.NoError(t, err)
		require.NotNil(t, cooldown)
		assert.True(t, cooldown.Equal(expires))
	})

	t.Run("overwrite", func(t *testing.T) {
		later := expires.Add(time.Hour)
		require.NoError(t, ledger.SetCooldown(ctx, 42, "steal", later))

		cooldown, err := ledger.GetCooldown(ctx, 42, "steal")
		require.NoError(t, err)
		require.NotNil(t, cooldown)
		assert.True(t, cooldown.Equal(later))
	})

	t.Run("commands are independent windows", func(t *testing.T) {
		cooldown, err := ledger.GetCooldown(ctx, 42, "daily")
		require.NoError(t, err)
		assert.Nil(t, cooldown)
	})
}

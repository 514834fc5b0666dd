package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("MINIMUM_AGE", "13")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("REMINDER_TIMES", "60,30,0")
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("LEDGER_FILE", "")
	t.Setenv("STARTING_BALANCE", "")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 13, cfg.MinimumAge)
	assert.Equal(t, "America/New_York", cfg.Timezone.String())
	assert.Equal(t, []time.Duration{time.Hour, 30 * time.Minute, 0}, cfg.ReminderOffsets)
	assert.Equal(t, BackendFile, cfg.LedgerBackend)
	assert.Equal(t, "data/ledger.json", cfg.LedgerFile)
	assert.Equal(t, int64(1000), cfg.StartingBalance)
}

func TestLoad_StartingBalanceOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STARTING_BALANCE", "2500")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(2500), cfg.StartingBalance)
}

func TestLoad_RequiredValues(t *testing.T) {
	t.Run("missing minimum age", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("MINIMUM_AGE", "")

		_, err := Load()
		assert.ErrorContains(t, err, "MINIMUM_AGE")
	})

	t.Run("bad timezone", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

		_, err := Load()
		assert.ErrorContains(t, err, "TIMEZONE")
	})

	t.Run("bad reminder offsets", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REMINDER_TIMES", "60,-5")

		_, err := Load()
		assert.ErrorContains(t, err, "REMINDER_TIMES")
	})

	t.Run("unknown ledger backend", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LEDGER_BACKEND", "redis")

		_, err := Load()
		assert.ErrorContains(t, err, "LEDGER_BACKEND")
	})
}

package service

import (
	"context"
	"fmt"
	"time"

	"applebot/models"
)

// LedgerStore defines the interface for durable balance and cooldown state.
// It is the single owner of Account and CooldownRecord data; implementations
// must persist every mutation before returning and must serialize writes.
type LedgerStore interface {
	// GetBalance returns the user's balance, or the configured starting
	// balance if the user has never been seen
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// ApplyDelta adjusts the user's balance and returns the new balance,
	// persisted before return
	ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error)

	// GetCooldown returns the cooldown expiry for (user, command), or nil
	// when no record exists
	GetCooldown(ctx context.Context, userID int64, command string) (*time.Time, error)

	// SetCooldown overwrites the cooldown expiry for (user, command)
	SetCooldown(ctx context.Context, userID int64, command string, expiresAt time.Time) error
}

// EconomyService defines the gambling and balance operations exposed to the
// bot's slash commands
type EconomyService interface {
	// Balance returns the user's current balance
	Balance(ctx context.Context, userID int64) (int64, error)

	// Grant credits the user with amount and returns the new balance
	Grant(ctx context.Context, userID int64, amount int64) (int64, error)

	// Daily claims the daily reward, gated by a 24h cooldown
	Daily(ctx context.Context, userID int64) (*models.DailyResult, error)

	// Gamble wagers bet on a d100 roll mapped through the payout table
	Gamble(ctx context.Context, userID int64, bet int64) (*models.GambleResult, error)

	// Coinflip wagers bet on a coin landing on choice ("heads" or "tails")
	Coinflip(ctx context.Context, userID int64, bet int64, choice string) (*models.CoinflipResult, error)

	// Roll wagers bet on a d6 landing on guess
	Roll(ctx context.Context, userID int64, bet int64, guess int) (*models.DiceRollResult, error)

	// Lottery wagers bet on a 10% chance at a random jackpot
	Lottery(ctx context.Context, userID int64, bet int64) (*models.LotteryResult, error)

	// Steal attempts to take a random amount from the target's balance;
	// failure fines the actor instead
	Steal(ctx context.Context, userID int64, targetID int64) (*models.StealResult, error)
}

// RejectionError is a validation failure that should be shown to the invoking
// user verbatim. A rejected action mutates no balance and arms no cooldown.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// Rejectf builds a RejectionError from a format string
func Rejectf(format string, args ...any) error {
	return &RejectionError{Message: fmt.Sprintf(format, args...)}
}

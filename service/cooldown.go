package service

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CooldownGate answers whether a command is currently allowed for a user and
// arms new cooldown windows. Each command name has its own independent window.
type CooldownGate struct {
	store LedgerStore
}

// NewCooldownGate creates a gate over the given ledger store
func NewCooldownGate(store LedgerStore) *CooldownGate {
	return &CooldownGate{store: store}
}

// IsBlocked reports whether (user, command) is on cooldown at now
func (g *CooldownGate) IsBlocked(ctx context.Context, userID int64, command string, now time.Time) (bool, error) {
	expiresAt, err := g.store.GetCooldown(ctx, userID, command)
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if expiresAt == nil {
		return false, nil
	}
	return now.Before(*expiresAt), nil
}

// Remaining returns how long until (user, command) is allowed again, zero when
// no record exists or the window has expired
func (g *CooldownGate) Remaining(ctx context.Context, userID int64, command string, now time.Time) (time.Duration, error) {
	expiresAt, err := g.store.GetCooldown(ctx, userID, command)
	if err != nil {
		return 0, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if expiresAt == nil {
		return 0, nil
	}
	remaining := expiresAt.Sub(now)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Arm writes a new cooldown window expiring at now + duration. Callers must
// only arm after the gated action's preconditions and mutations have passed;
// a rejected action never consumes or resets a cooldown.
func (g *CooldownGate) Arm(ctx context.Context, userID int64, command string, now time.Time, duration time.Duration) error {
	return g.store.SetCooldown(ctx, userID, command, now.Add(duration))
}

// FormatRemaining renders a cooldown duration for user-facing messages,
// e.g. "23 hours, 59 minutes" or "9 seconds"
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0 seconds"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if len(parts) == 0 || (days == 0 && hours == 0 && seconds > 0) {
		parts = append(parts, plural(seconds, "second"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

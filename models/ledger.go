package models

import (
	"time"
)

// Account represents a member's coin holdings
type Account struct {
	UserID    int64     `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CooldownRecord marks when a command becomes usable again for a user.
// A command is on cooldown iff now < ExpiresAt; a missing record means
// the command has never been used.
type CooldownRecord struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// LedgerSnapshot is the full durable state of the economy ledger. The file
// backend rewrites the whole snapshot on every mutation; integer user IDs
// round-trip through encoding/json map keys unchanged.
type LedgerSnapshot struct {
	Balances  map[int64]int64                     `json:"balances"`
	Cooldowns map[int64]map[string]CooldownRecord `json:"cooldowns"`
}

// NewLedgerSnapshot returns an empty snapshot with allocated maps
func NewLedgerSnapshot() LedgerSnapshot {
	return LedgerSnapshot{
		Balances:  make(map[int64]int64),
		Cooldowns: make(map[int64]map[string]CooldownRecord),
	}
}

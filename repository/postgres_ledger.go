package repository

import (
	"context"
	"fmt"
	"time"

	"applebot/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over a pool or transaction
type queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresLedger is a ledger store backed by Postgres. Balance mutations are
// single-statement upserts, so concurrent commands cannot lose updates.
type PostgresLedger struct {
	q               queryable
	startingBalance int64
}

// NewPostgresLedger creates a ledger store over the given connection pool
func NewPostgresLedger(db *database.DB, startingBalance int64) *PostgresLedger {
	return &PostgresLedger{q: db.Pool, startingBalance: startingBalance}
}

// GetBalance returns the user's balance, or the starting balance if the user
// has never been seen
func (l *PostgresLedger) GetBalance(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT balance FROM balances WHERE user_id = $1`

	var balance int64
	err := l.q.QueryRow(ctx, query, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return l.startingBalance, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	return balance, nil
}

// ApplyDelta adjusts the user's balance atomically, creating the account at
// the starting balance on first reference, and returns the new balance
func (l *PostgresLedger) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	query := `
		INSERT INTO balances (user_id, balance)
		VALUES ($1, $2 + $3)
		ON CONFLICT (user_id)
		DO UPDATE SET balance = balances.balance + $3, updated_at = NOW()
		RETURNING balance
	`

	var balance int64
	err := l.q.QueryRow(ctx, query, userID, l.startingBalance, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to apply delta for user %d: %w", userID, err)
	}
	return balance, nil
}

// GetCooldown returns the cooldown expiry for (user, command), or nil when no
// record exists
func (l *PostgresLedger) GetCooldown(ctx context.Context, userID int64, command string) (*time.Time, error) {
	query := `SELECT expires_at FROM cooldowns WHERE user_id = $1 AND command = $2`

	var expiresAt time.Time
	err := l.q.QueryRow(ctx, query, userID, command).Scan(&expiresAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cooldown for user %d command %s: %w", userID, command, err)
	}
	return &expiresAt, nil
}

// SetCooldown overwrites the cooldown expiry for (user, command)
func (l *PostgresLedger) SetCooldown(ctx context.Context, userID int64, command string, expiresAt time.Time) error {
	query := `
		INSERT INTO cooldowns (user_id, command, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, command)
		DO UPDATE SET expires_at = $3
	`

	_, err := l.q.Exec(ctx, query, userID, command, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set cooldown for user %d command %s: %w", userID, command, err)
	}
	return nil
}

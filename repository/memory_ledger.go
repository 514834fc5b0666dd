package repository

import (
	"context"
	"sync"
	"time"

	"applebot/models"
)

// MemoryLedger is an in-memory ledger store. It backs tests and ephemeral
// runs; it satisfies the same contract as the durable backends.
type MemoryLedger struct {
	mu              sync.Mutex
	startingBalance int64
	snapshot        models.LedgerSnapshot
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger(startingBalance int64) *MemoryLedger {
	return &MemoryLedger{
		startingBalance: startingBalance,
		snapshot:        models.NewLedgerSnapshot(),
	}
}

func (l *MemoryLedger) GetBalance(ctx context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if balance, ok := l.snapshot.Balances[userID]; ok {
		return balance, nil
	}
	return l.startingBalance, nil
}

func (l *MemoryLedger) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.snapshot.Balances[userID]
	if !ok {
		balance = l.startingBalance
	}
	balance += delta
	l.snapshot.Balances[userID] = balance
	return balance, nil
}

func (l *MemoryLedger) GetCooldown(ctx context.Context, userID int64, command string) (*time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.snapshot.Cooldowns[userID][command]
	if !ok {
		return nil, nil
	}
	expiresAt := record.ExpiresAt
	return &expiresAt, nil
}

func (l *MemoryLedger) SetCooldown(ctx context.Context, userID int64, command string, expiresAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snapshot.Cooldowns[userID] == nil {
		l.snapshot.Cooldowns[userID] = make(map[string]models.CooldownRecord)
	}
	l.snapshot.Cooldowns[userID][command] = models.CooldownRecord{ExpiresAt: expiresAt}
	return nil
}

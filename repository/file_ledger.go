package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"applebot/models"

	log "github.com/sirupsen/logrus"
)

// FileLedger is a ledger store backed by a single JSON snapshot file. Every
// mutation rewrites the full snapshot before returning, so a crash between a
// mutation and the next read never observes a partial update. All operations
// are serialized through one mutex.
type FileLedger struct {
	mu              sync.Mutex
	path            string
	startingBalance int64
	snapshot        models.LedgerSnapshot
}

// NewFileLedger opens (or initializes) the snapshot at path. A missing file
// yields an empty ledger; a corrupt file yields an empty ledger and a logged
// warning rather than a startup failure.
func NewFileLedger(path string, startingBalance int64) (*FileLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory %s: %w", dir, err)
		}
	}

	l := &FileLedger{
		path:            path,
		startingBalance: startingBalance,
		snapshot:        models.NewLedgerSnapshot(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Infof("Ledger file %s not found, starting with an empty ledger", path)
		return l, nil
	}
	if err != nil {
		log.Warnf("Failed to read ledger file %s, starting with an empty ledger: %v", path, err)
		return l, nil
	}

	var snapshot models.LedgerSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Warnf("Ledger file %s is corrupt, starting with an empty ledger: %v", path, err)
		return l, nil
	}
	if snapshot.Balances == nil {
		snapshot.Balances = make(map[int64]int64)
	}
	if snapshot.Cooldowns == nil {
		snapshot.Cooldowns = make(map[int64]map[string]models.CooldownRecord)
	}

	l.snapshot = snapshot
	return l, nil
}

// GetBalance returns the user's balance, or the starting balance if the user
// has never been seen
func (l *FileLedger) GetBalance(ctx context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(userID), nil
}

// ApplyDelta adjusts the user's balance and persists the snapshot before
// returning the new balance
func (l *FileLedger) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	newBalance := l.balanceLocked(userID) + delta
	l.snapshot.Balances[userID] = newBalance

	if err := l.persistLocked(); err != nil {
		return 0, fmt.Errorf("failed to persist balance for user %d: %w", userID, err)
	}
	return newBalance, nil
}

// GetCooldown returns the cooldown expiry for (user, command), or nil when no
// record exists
func (l *FileLedger) GetCooldown(ctx context.Context, userID int64, command string) (*time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.snapshot.Cooldowns[userID][command]
	if !ok {
		return nil, nil
	}
	expiresAt := record.ExpiresAt
	return &expiresAt, nil
}

// SetCooldown overwrites the cooldown expiry for (user, command) and persists
// the snapshot before returning
func (l *FileLedger) SetCooldown(ctx context.Context, userID int64, command string, expiresAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snapshot.Cooldowns[userID] == nil {
		l.snapshot.Cooldowns[userID] = make(map[string]models.CooldownRecord)
	}
	l.snapshot.Cooldowns[userID][command] = models.CooldownRecord{ExpiresAt: expiresAt}

	if err := l.persistLocked(); err != nil {
		return fmt.Errorf("failed to persist cooldown for user %d command %s: %w", userID, command, err)
	}
	return nil
}

func (l *FileLedger) balanceLocked(userID int64) int64 {
	if balance, ok := l.snapshot.Balances[userID]; ok {
		return balance
	}
	return l.startingBalance
}

// persistLocked writes the snapshot to a temp file in the same directory and
// renames it over the live file, so readers never see a half-written snapshot
func (l *FileLedger) persistLocked() error {
	data, err := json.MarshalIndent(l.snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".ledger-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andy/billcraft/internal/db"
	"github.com/andy/billcraft/internal/domain"
)

// HistoryRepo stores the draft history as one serialized JSON array under a
// single kv row, so every write replaces the whole logical record.
type HistoryRepo struct {
	db *db.DB
}

// NewHistoryRepo creates a new HistoryRepo
func NewHistoryRepo(database *db.DB) *HistoryRepo {
	return &HistoryRepo{db: database}
}

// Save inserts the snapshot at the head of the history and persists the
// trimmed list in one transaction. Any failure leaves the prior state in
// place and is reported wrapping ErrSaveFailed.
func (r *HistoryRepo) Save(ctx context.Context, inv domain.SavedInvoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer tx.Rollback()

	history := decodeHistory(readValueTx(ctx, tx, historyKey))
	history = prependAndTrim(history, inv)

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := writeValueTx(ctx, tx, historyKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return nil
}

// Load returns the history head-first. Missing or unparseable state degrades
// to an empty list.
func (r *HistoryRepo) Load(ctx context.Context) ([]domain.SavedInvoice, error) {
	raw, err := r.readValue(ctx, historyKey)
	if err != nil {
		// Read failures never propagate; the UI shows an empty history.
		return []domain.SavedInvoice{}, nil
	}
	return decodeHistory(raw), nil
}

// GetByID returns the record with the given id, or nil when absent.
func (r *HistoryRepo) GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error) {
	history, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].ID == id {
			return &history[i], nil
		}
	}
	return nil, nil
}

// DeleteByID removes the matching record. Deleting an id that is not present
// is a no-op, not an error.
func (r *HistoryRepo) DeleteByID(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}
	defer tx.Rollback()

	history := decodeHistory(readValueTx(ctx, tx, historyKey))
	trimmed := removeByID(history, id)
	if len(trimmed) == len(history) {
		return nil
	}

	data, err := json.Marshal(trimmed)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}
	if err := writeValueTx(ctx, tx, historyKey, string(data)); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}

	return tx.Commit()
}

// Clear empties the entire history.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", historyKey); err != nil {
		return fmt.Errorf("failed to clear invoice history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) readValue(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(value), nil
}

// readValueTx reads a kv row inside a transaction. Missing rows and read
// errors both come back as nil; the caller treats that as an empty record.
func readValueTx(ctx context.Context, tx *sql.Tx, key string) []byte {
	var value string
	err := tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		return nil
	}
	return []byte(value)
}

func writeValueTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/billcraft/internal/db"
)

// SequenceRepo persists the monotonic invoice-number counter in the kv table.
// The stored value is the next number to assign; an unset counter means 1.
type SequenceRepo struct {
	db *db.DB
}

// NewSequenceRepo creates a new SequenceRepo
func NewSequenceRepo(database *db.DB) *SequenceRepo {
	return &SequenceRepo{db: database}
}

// Peek returns the next invoice number without consuming it.
func (r *SequenceRepo) Peek(ctx context.Context) (int64, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", sequenceKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to read invoice sequence: %w", err)
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 1 {
		// A damaged counter restarts the sequence rather than failing.
		return 1, nil
	}
	return n, nil
}

// Advance consumes the next number: it returns the current value and persists
// value+1 so the following Peek sees the increment.
func (r *SequenceRepo) Advance(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}
	defer tx.Rollback()

	next := int64(1)
	var value string
	err = tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", sequenceKey).Scan(&value)
	if err == nil {
		if n, perr := strconv.ParseInt(value, 10, 64); perr == nil && n >= 1 {
			next = n
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}

	if err := writeValueTx(ctx, tx, sequenceKey, strconv.FormatInt(next+1, 10)); err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}

	return next, nil
}

// Reset clears the counter so the next Peek returns 1 again.
func (r *SequenceRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", sequenceKey); err != nil {
		return fmt.Errorf("failed to reset invoice sequence: %w", err)
	}
	return nil
}

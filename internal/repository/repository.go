package repository

import (
	"context"
	"errors"

	"github.com/andy/billcraft/internal/domain"
)

// Storage keys for the kv table. One logical record per key.
const (
	historyKey  = "billcraft_invoice_history"
	sequenceKey = "billcraft_invoice_sequence"
)

// ErrSaveFailed marks a history write that did not persist. Callers surface it
// as a non-blocking "draft not saved" notice; the in-memory invoice is
// unaffected and editing continues.
var ErrSaveFailed = errors.New("invoice history save failed")

// HistoryRepository manages the bounded, head-first draft history.
type HistoryRepository interface {
	// Save inserts the snapshot at the head, evicting the oldest records past
	// domain.MaxHistoryRecords. The write is atomic: on failure the prior
	// state remains and the returned error wraps ErrSaveFailed.
	Save(ctx context.Context, inv domain.SavedInvoice) error

	// Load returns the history head-first. A missing or corrupt payload
	// degrades to an empty list, never an error.
	Load(ctx context.Context) ([]domain.SavedInvoice, error)

	// GetByID returns the matching record, or nil when absent.
	GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error)

	// DeleteByID removes the matching record; absent ids are a no-op.
	DeleteByID(ctx context.Context, id string) error

	// Clear empties the history.
	Clear(ctx context.Context) error
}

// SequenceRepository is the persisted invoice-number counter.
type SequenceRepository interface {
	// Peek returns the next number to assign without consuming it.
	Peek(ctx context.Context) (int64, error)

	// Advance consumes and returns the next number, persisting counter+1.
	Advance(ctx context.Context) (int64, error)

	// Reset sets the counter back to its initial state.
	Reset(ctx context.Context) error
}

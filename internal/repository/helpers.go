package repository

import (
	"encoding/json"

	"github.com/andy/billcraft/internal/domain"
)

// prependAndTrim inserts inv at the head and truncates the tail so the
// history never exceeds domain.MaxHistoryRecords. The input slice is not
// modified.
func prependAndTrim(history []domain.SavedInvoice, inv domain.SavedInvoice) []domain.SavedInvoice {
	out := make([]domain.SavedInvoice, 0, len(history)+1)
	out = append(out, inv)
	out = append(out, history...)
	if len(out) > domain.MaxHistoryRecords {
		out = out[:domain.MaxHistoryRecords]
	}
	return out
}

// removeByID filters out the record with the given id. Absent ids leave the
// slice unchanged.
func removeByID(history []domain.SavedInvoice, id string) []domain.SavedInvoice {
	out := make([]domain.SavedInvoice, 0, len(history))
	for _, inv := range history {
		if inv.ID != id {
			out = append(out, inv)
		}
	}
	return out
}

// decodeHistory parses the stored JSON array. Corrupt payloads are treated as
// an empty history; a damaged store must never make the app unusable.
func decodeHistory(raw []byte) []domain.SavedInvoice {
	if len(raw) == 0 {
		return []domain.SavedInvoice{}
	}
	var history []domain.SavedInvoice
	if err := json.Unmarshal(raw, &history); err != nil || history == nil {
		return []domain.SavedInvoice{}
	}
	return history
}

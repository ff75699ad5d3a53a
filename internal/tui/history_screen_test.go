package tui

import (
	"testing"
	"time"

	"github.com/andy/billcraft/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func savedRecord(t *testing.T, n int64) domain.SavedInvoice {
	t.Helper()
	inv := &domain.Invoice{
		Header:   domain.Header{InvoiceNumber: domain.FormatInvoiceNumber(n), DueDate: "2026-09-14"},
		Client:   domain.Client{Name: "Acme Pty Ltd"},
		Items:    []domain.Item{{ID: 1, Description: "Design work", Quantity: 2, UnitPrice: 50}},
		Currency: "AUD",
	}
	at := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Second)
	return domain.Snapshot(inv, at)
}

// A reload can come back shorter than the cursor, or empty. The screen has to
// land on a valid selection either way, even if the user was on the detail
// view of a record that no longer exists.
func TestHistoryReloadShrinksSelection(t *testing.T) {
	m := NewHistoryModel(newTestApp()).(*HistoryModel)

	recs := []domain.SavedInvoice{savedRecord(t, 2), savedRecord(t, 1)}
	m.Update(historyDataMsg{records: recs})
	m.Update(keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != historyViewDetail {
		t.Fatalf("expected detail mode")
	}

	// Everything vanished out from under the open detail view
	m.Update(historyDataMsg{})
	if m.cursor != 0 {
		t.Errorf("expected cursor reset to 0 on empty reload, got %d", m.cursor)
	}
	if m.mode != historyViewList {
		t.Errorf("expected fallback to the list view")
	}

	// Selection keys on the empty list must be inert
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
	if _, cmd := m.Update(keyRune('r')); cmd != nil {
		t.Error("restore on an empty list should do nothing")
	}
	_ = m.View()

	// A one-record reload clamps a stale high cursor rather than resetting
	m.Update(historyDataMsg{records: recs})
	m.Update(keyRune('j'))
	m.Update(historyDataMsg{records: recs[:1]})
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}

	_, cmd := m.Update(keyRune('r'))
	if cmd == nil {
		t.Fatal("expected a restore command")
	}
	msg, ok := cmd().(RestoreDraftMsg)
	if !ok {
		t.Fatal("expected a RestoreDraftMsg")
	}
	if got := msg.Invoice.Header.InvoiceNumber; got != "002" {
		t.Errorf("expected restored number 002, got %s", got)
	}
}

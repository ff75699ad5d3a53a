package tui

import (
	"context"
	"testing"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/config"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// in-memory repositories

type memHistoryRepo struct {
	records []domain.SavedInvoice
}

func (m *memHistoryRepo) Save(ctx context.Context, inv domain.SavedInvoice) error {
	m.records = append([]domain.SavedInvoice{inv}, m.records...)
	if len(m.records) > domain.MaxHistoryRecords {
		m.records = m.records[:domain.MaxHistoryRecords]
	}
	return nil
}

func (m *memHistoryRepo) Load(ctx context.Context) ([]domain.SavedInvoice, error) {
	out := make([]domain.SavedInvoice, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memHistoryRepo) GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, nil
}

func (m *memHistoryRepo) DeleteByID(ctx context.Context, id string) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memHistoryRepo) Clear(ctx context.Context) error {
	m.records = nil
	return nil
}

type memSequenceRepo struct {
	next int64
}

func (m *memSequenceRepo) Peek(ctx context.Context) (int64, error) {
	if m.next < 1 {
		m.next = 1
	}
	return m.next, nil
}

func (m *memSequenceRepo) Advance(ctx context.Context) (int64, error) {
	n, _ := m.Peek(ctx)
	m.next = n + 1
	return n, nil
}

func (m *memSequenceRepo) Reset(ctx context.Context) error {
	m.next = 1
	return nil
}

func newTestApp() *app.App {
	cfg := config.DefaultConfig()
	hist := &memHistoryRepo{}
	seq := &memSequenceRepo{next: 1}
	return &app.App{
		Config:         cfg,
		HistoryRepo:    hist,
		SequenceRepo:   seq,
		InvoiceService: service.NewInvoiceService(hist, seq, cfg),
	}
}

// The save command must work from a copy frozen at dispatch time: keystrokes
// applied while the command goroutine runs can neither leak into the saved
// record nor race the snapshot. Run with -race.
func TestEditorSaveCommand_UsesFrozenSnapshot(t *testing.T) {
	a := newTestApp()
	draft, err := a.InvoiceService.NewDraft(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	draft.Items[0].Description = "Design work"
	draft.Items[0].UnitPrice = 100

	m := NewEditorModel(a, draft).(*EditorModel)
	cmd := m.saveDraft()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	// Concurrent edits, as the Update loop would apply them
	for i := 0; i < 1000; i++ {
		draft.Items[0].UnitPrice = float64(i)
	}

	msg, ok := (<-done).(draftSavedMsg)
	if !ok {
		t.Fatal("expected a draftSavedMsg")
	}
	if msg.err != nil {
		t.Fatalf("unexpected save error: %v", msg.err)
	}
	if msg.record.Items[0].UnitPrice != 100 {
		t.Errorf("saved record must carry the value at dispatch time, got %v",
			msg.record.Items[0].UnitPrice)
	}
	if msg.record.Header.InvoiceNumber != "001" {
		t.Errorf("expected saved number 001, got %s", msg.record.Header.InvoiceNumber)
	}

	// The command itself must not have touched the draft
	if draft.Header.InvoiceNumber != "001" {
		t.Errorf("draft header changed outside Update: %s", draft.Header.InvoiceNumber)
	}

	// The rollover lands when the message is applied
	m.Update(msg)
	if draft.Header.InvoiceNumber != "002" {
		t.Errorf("expected rollover to 002 on message receipt, got %s", draft.Header.InvoiceNumber)
	}
}

func TestEditorSaveFailure_ShownWithoutRollover(t *testing.T) {
	a := newTestApp()
	draft, err := a.InvoiceService.NewDraft(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewEditorModel(a, draft).(*EditorModel)

	m.Update(draftSavedMsg{err: service.ErrHistorySaveFailed})
	if m.err == nil {
		t.Error("expected the failure to surface on the screen")
	}
	if draft.Header.InvoiceNumber != "001" {
		t.Errorf("a failed save must leave the header alone, got %s", draft.Header.InvoiceNumber)
	}
}

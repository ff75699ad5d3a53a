package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type historyViewMode int

const (
	historyViewList historyViewMode = iota
	historyViewDetail
)

type historyDataMsg struct {
	records []domain.SavedInvoice
	err     error
}

type historyDeletedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// HistoryModel lists saved drafts: view, restore, delete, export
type HistoryModel struct {
	app       *app.App
	mode      historyViewMode
	records   []domain.SavedInvoice
	cursor    int
	loading   bool
	err       error
	statusMsg string
}

// NewHistoryModel creates a new history screen model
func NewHistoryModel(a *app.App) tea.Model {
	return &HistoryModel{
		app:     a,
		mode:    historyViewList,
		loading: true,
	}
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.loadHistory()
}

func (m *HistoryModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		records, err := m.app.InvoiceService.History(context.Background())
		return historyDataMsg{records: records, err: err}
	}
}

func (m *HistoryModel) deleteRecord(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.InvoiceService.DeleteDraft(context.Background(), id)
		return historyDeletedMsg{err: err}
	}
}

func (m *HistoryModel) exportRecord(rec domain.SavedInvoice) tea.Cmd {
	outDir := m.app.Config.Invoice.OutputDir
	thankYou := m.app.Config.Invoice.ThankYouMessage
	return func() tea.Msg {
		path := filepath.Join(outDir, render.PDFFileName(rec))
		if err := render.WritePDF(rec, path, thankYou); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadHistory()

	case historyDataMsg:
		m.loading = false
		m.err = msg.err
		m.records = msg.records
		if len(m.records) == 0 {
			m.cursor = 0
			m.mode = historyViewList
		} else if m.cursor >= len(m.records) {
			m.cursor = len(m.records) - 1
		}
		return m, nil

	case historyDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Draft deleted"
		return m, m.loadHistory()

	case exportDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Exported -> %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch m.mode {
		case historyViewList:
			return m.updateList(msg)
		case historyViewDetail:
			return m.updateDetail(msg)
		}
	}

	return m, nil
}

func (m *HistoryModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.records) > 0 {
			m.mode = historyViewDetail
		}
	case key.Matches(msg, DefaultKeyMap.Restore):
		if len(m.records) > 0 {
			rec := m.records[m.cursor]
			return m, func() tea.Msg {
				return RestoreDraftMsg{Invoice: rec.Restore()}
			}
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if len(m.records) > 0 {
			m.loading = true
			m.statusMsg = ""
			return m, m.deleteRecord(m.records[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.Export):
		if len(m.records) > 0 {
			m.loading = true
			m.statusMsg = ""
			return m, m.exportRecord(m.records[m.cursor])
		}
	}

	return m, nil
}

func (m *HistoryModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.records) == 0 {
		// The viewed record can vanish under us when a reload empties the
		// list; fall back to the list rather than indexing it
		m.mode = historyViewList
		return m, nil
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = historyViewList
	case key.Matches(msg, DefaultKeyMap.Restore):
		rec := m.records[m.cursor]
		return m, func() tea.Msg {
			return RestoreDraftMsg{Invoice: rec.Restore()}
		}
	case key.Matches(msg, DefaultKeyMap.Export):
		m.loading = true
		m.statusMsg = ""
		return m, m.exportRecord(m.records[m.cursor])
	}
	return m, nil
}

func (m *HistoryModel) View() string {
	if m.loading {
		return "Loading..."
	}

	if m.mode == historyViewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *HistoryModel) viewList() string {
	var s string
	s += titleStyle.Render("Saved Drafts") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.records) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No saved drafts yet. Save one from the editor with ctrl+s.")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-8s  %-20s  %-17s  %-11s  %5s  %14s",
		"Number", "Client", "Saved", "Due", "Items", "Total",
	)) + "\n"

	for i, rec := range m.records {
		clientName := rec.Client.Name
		if clientName == "" {
			clientName = "(no client)"
		}

		line := fmt.Sprintf("  %-8s  %-20s  %-17s  %-11s  %5d  %14s",
			rec.Header.InvoiceNumber,
			truncateStr(clientName, 20),
			rec.SavedAt.Local().Format("2006-01-02 15:04"),
			rec.Header.DueDate,
			len(rec.Items),
			formatAmount(rec.Currency, rec.Total()),
		)

		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + subtitleStyle.Render(fmt.Sprintf("  %d of %d slots used; oldest drafts are evicted first",
		len(m.records), domain.MaxHistoryRecords)) + "\n"
	s += "\n" + helpStyle.Render("  j/k: navigate  enter: view  r: restore  d: delete  x: export pdf")

	return s
}

func (m *HistoryModel) viewDetail() string {
	if len(m.records) == 0 {
		return "No draft selected"
	}
	rec := m.records[m.cursor]

	var s string
	s += render.Text(rec)
	s += "\n" + helpStyle.Render("  esc: back  r: restore  x: export pdf")
	return s
}

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/render"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editorMode int

const (
	editorModeBrowse editorMode = iota
	editorModeEdit
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldNumber
	fieldToggle
)

// editorField is one editable slot on the form. get/set close over the draft,
// so committing an edit writes straight into the aggregate.
type editorField struct {
	label   string
	section string
	kind    fieldKind
	get     func() string
	set     func(string)
	toggle  func()
	itemID  int64 // non-zero when the field belongs to a line item
}

type draftSavedMsg struct {
	record *domain.SavedInvoice
	next   string // next display number; applied to the draft on receipt
	err    error
}

type draftExportedMsg struct {
	record *domain.SavedInvoice
	next   string
	path   string
	err    error
}

// EditorModel is the draft editing screen: header, client, tax, and line
// item fields over the shared working invoice.
type EditorModel struct {
	app   *app.App
	draft *domain.Invoice

	mode      editorMode
	fields    []editorField
	cursor    int
	input     textinput.Model
	err       error
	statusMsg string
}

// NewEditorModel creates a new editor screen over the working draft
func NewEditorModel(a *app.App, draft *domain.Invoice) tea.Model {
	m := &EditorModel{
		app:   a,
		draft: draft,
		mode:  editorModeBrowse,
	}
	m.buildFields()
	return m
}

// IsCapturingInput returns true while a field edit is active
func (m *EditorModel) IsCapturingInput() bool {
	return m.mode == editorModeEdit
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// buildFields rebuilds the flat field list from the draft. Called after any
// structural change (item added or removed).
func (m *EditorModel) buildFields() {
	inv := m.draft
	fields := []editorField{
		{label: "Invoice Number", section: "Invoice", kind: fieldText,
			get: func() string { return inv.Header.InvoiceNumber },
			set: func(v string) { inv.Header.InvoiceNumber = v }},
		{label: "Issue Date", section: "Invoice", kind: fieldText,
			get: func() string { return inv.Header.IssueDate },
			set: func(v string) { inv.Header.IssueDate = v }},
		{label: "Due Date", section: "Invoice", kind: fieldText,
			get: func() string { return inv.Header.DueDate },
			set: func(v string) { inv.Header.DueDate = v }},
		{label: "Payment Method", section: "Invoice", kind: fieldText,
			get: func() string { return inv.Header.PaymentMethod },
			set: func(v string) { inv.Header.PaymentMethod = v }},
		{label: "Tax Invoice", section: "Invoice", kind: fieldToggle,
			get: func() string {
				if inv.Header.IsTaxInvoice {
					return "yes"
				}
				return "no"
			},
			toggle: func() { inv.Header.IsTaxInvoice = !inv.Header.IsTaxInvoice }},
		{label: "Currency", section: "Invoice", kind: fieldText,
			get: func() string { return inv.Currency },
			set: func(v string) { inv.Currency = v }},
		{label: "Logo (data URL)", section: "Invoice", kind: fieldText,
			get: func() string { return inv.Logo },
			set: func(v string) { inv.Logo = v }},

		{label: "Name", section: "Bill To", kind: fieldText,
			get: func() string { return inv.Client.Name },
			set: func(v string) { inv.Client.Name = v }},
		{label: "Address", section: "Bill To", kind: fieldText,
			get: func() string { return inv.Client.Address },
			set: func(v string) { inv.Client.Address = v }},
		{label: "Email", section: "Bill To", kind: fieldText,
			get: func() string { return inv.Client.Email },
			set: func(v string) { inv.Client.Email = v }},
		{label: "Phone", section: "Bill To", kind: fieldText,
			get: func() string { return inv.Client.Phone },
			set: func(v string) { inv.Client.Phone = v }},

		{label: "Tax Name", section: "Tax", kind: fieldText,
			get: func() string { return inv.TaxInfo.TaxName },
			set: func(v string) { inv.TaxInfo.TaxName = v }},
		{label: "Tax Percentage", section: "Tax", kind: fieldNumber,
			get: func() string { return formatQty(inv.TaxInfo.TaxPercentage) },
			set: func(v string) { inv.TaxInfo.TaxPercentage = domain.ParseAmount(v) }},
	}

	for i := range inv.Items {
		it := &inv.Items[i]
		section := fmt.Sprintf("Item %d", it.ID)
		fields = append(fields,
			editorField{label: "Description", section: section, kind: fieldText, itemID: it.ID,
				get: func() string { return it.Description },
				set: func(v string) { it.Description = v }},
			editorField{label: "Quantity", section: section, kind: fieldNumber, itemID: it.ID,
				get: func() string { return formatQty(it.Quantity) },
				set: func(v string) { it.Quantity = domain.ParseAmount(v) }},
			editorField{label: "Unit Price", section: section, kind: fieldNumber, itemID: it.ID,
				get: func() string { return domain.FormatMoney(it.UnitPrice) },
				set: func(v string) { it.UnitPrice = domain.ParseAmount(v) }},
			editorField{label: "Discount", section: section, kind: fieldNumber, itemID: it.ID,
				get: func() string { return domain.FormatMoney(it.Discount) },
				set: func(v string) { it.Discount = domain.ParseAmount(v) }},
		)
	}

	m.fields = fields
	if m.cursor >= len(m.fields) {
		m.cursor = len(m.fields) - 1
	}
}

// saveDraft snapshots the draft synchronously, before bubbletea dispatches
// the command. The command goroutine only sees the frozen copy; the shared
// draft is never read or written off the Update loop.
func (m *EditorModel) saveDraft() tea.Cmd {
	snap := domain.Snapshot(m.draft, time.Now())
	svc := m.app.InvoiceService
	return func() tea.Msg {
		next, err := svc.SaveSnapshot(context.Background(), snap)
		return draftSavedMsg{record: &snap, next: next, err: err}
	}
}

// saveAndExport mirrors the export flow: the draft is saved (consuming a
// number) and the resulting snapshot is rasterized to a PDF. Like saveDraft,
// the snapshot is taken here, not in the command goroutine.
func (m *EditorModel) saveAndExport() tea.Cmd {
	snap := domain.Snapshot(m.draft, time.Now())
	svc := m.app.InvoiceService
	outDir := m.app.Config.Invoice.OutputDir
	thankYou := m.app.Config.Invoice.ThankYouMessage
	return func() tea.Msg {
		next, err := svc.SaveSnapshot(context.Background(), snap)
		if err != nil {
			return draftExportedMsg{err: err}
		}

		path := filepath.Join(outDir, render.PDFFileName(snap))
		if err := render.WritePDF(snap, path, thankYou); err != nil {
			return draftExportedMsg{record: &snap, next: next, err: err}
		}
		return draftExportedMsg{record: &snap, next: next, path: path}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.buildFields()
		return m, nil

	case draftSavedMsg:
		if msg.err != nil {
			// On ErrHistorySaveFailed the draft is still intact; either way,
			// show the failure and keep editing
			m.err = msg.err
			return m, nil
		}
		// The rollover happens here, on the Update loop, not in the command
		m.draft.Header.InvoiceNumber = msg.next
		m.statusMsg = fmt.Sprintf("Saved invoice %s; next number is %s",
			msg.record.Header.InvoiceNumber, msg.next)
		m.buildFields()
		return m, nil

	case draftExportedMsg:
		if msg.next != "" {
			// The save portion succeeded and consumed a number even if the
			// PDF write failed afterwards
			m.draft.Header.InvoiceNumber = msg.next
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Exported invoice %s -> %s",
			msg.record.Header.InvoiceNumber, msg.path)
		m.buildFields()
		return m, nil

	case tea.KeyMsg:
		if m.mode == editorModeEdit {
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == editorModeEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		field := m.fields[m.cursor]
		if field.kind == fieldToggle {
			field.toggle()
			return m, nil
		}
		m.statusMsg = ""
		m.input = textinput.New()
		m.input.Width = 48
		m.input.SetValue(field.get())
		m.input.CursorEnd()
		m.mode = editorModeEdit
		return m, m.input.Focus()

	case key.Matches(msg, DefaultKeyMap.New):
		m.draft.AddItem()
		m.buildFields()
		// Jump to the new item's description field
		m.cursor = len(m.fields) - 4
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Delete):
		field := m.fields[m.cursor]
		if field.itemID == 0 {
			return m, nil
		}
		if err := m.draft.RemoveItem(field.itemID); err != nil {
			m.err = err
			return m, nil
		}
		m.buildFields()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Save):
		m.statusMsg = ""
		return m, m.saveDraft()

	case key.Matches(msg, DefaultKeyMap.Export):
		m.statusMsg = ""
		return m, m.saveAndExport()
	}

	return m, nil
}

func (m *EditorModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = editorModeBrowse
		return m, nil

	case "enter":
		m.fields[m.cursor].set(m.input.Value())
		m.mode = editorModeBrowse
		// Numeric fields may have been coerced; redisplay from the draft
		m.buildFields()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) View() string {
	var s string
	s += titleStyle.Render("Invoice Editor") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	lastSection := ""
	for i, field := range m.fields {
		if field.section != lastSection {
			if lastSection != "" {
				s += "\n"
			}
			s += subtitleStyle.Render("  "+field.section) + "\n"
			lastSection = field.section
		}

		indicator := "  "
		if i == m.cursor && m.mode == editorModeBrowse {
			indicator = "> "
		}

		if i == m.cursor && m.mode == editorModeEdit {
			s += fmt.Sprintf("  %s%-16s %s\n", indicator, field.label+":", m.input.View())
			continue
		}

		value := truncateStr(field.get(), 48)
		line := fmt.Sprintf("  %s%-16s %s", indicator, field.label+":", value)
		if i == m.cursor && m.mode == editorModeBrowse {
			s += lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	// Live totals
	inv := m.draft
	s += "\n"
	s += fmt.Sprintf("  Subtotal:  %s\n", formatAmount(inv.Currency, inv.Subtotal()))
	s += fmt.Sprintf("  %s (%s%%): %s\n",
		inv.TaxInfo.TaxName, formatQty(inv.TaxInfo.TaxPercentage),
		formatAmount(inv.Currency, inv.TaxAmount()))
	s += totalStyle.Render(fmt.Sprintf("  Total:     %s", formatAmount(inv.Currency, inv.Total()))) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: edit/toggle  a: add item  d: delete item  ctrl+s: save  x: save + export pdf")

	return s
}

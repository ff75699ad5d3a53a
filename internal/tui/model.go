package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenEditor Screen = iota
	ScreenHistory
	ScreenPreview
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenEditor:
		return "Editor"
	case ScreenHistory:
		return "History"
	case ScreenPreview:
		return "Preview"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// The single working draft, shared with the editor and preview screens
	draft *domain.Invoice

	// Screen models (lazy initialized)
	editor  tea.Model
	history tea.Model
	preview tea.Model

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenEditor,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.loadDraft()
}

// loadDraft builds the initial working draft from config defaults and the
// next sequence number
func (m *Model) loadDraft() tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.InvoiceService.NewDraft(context.Background())
		return draftLoadedMsg{invoice: inv, err: err}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
// The preview is rebuilt on every visit so it always reflects the draft.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenEditor:
		if m.editor == nil {
			m.editor = NewEditorModel(m.app, m.draft)
			return m.editor.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenHistory:
		if m.history == nil {
			m.history = NewHistoryModel(m.app)
			return m.history.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenPreview:
		m.preview = NewPreviewModel(m.app, m.draft)
		return m.preview.Init()
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (E, H, P, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenEditor:
		screen = m.editor
	case ScreenHistory:
		screen = m.history
	case ScreenPreview:
		screen = m.preview
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Editor):
				m.currentScreen = ScreenEditor
				cmd := m.initScreen(ScreenEditor)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.History):
				m.currentScreen = ScreenHistory
				cmd := m.initScreen(ScreenHistory)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Preview):
				m.currentScreen = ScreenPreview
				cmd := m.initScreen(ScreenPreview)
				return m, cmd
			}
		}

	case draftLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.draft = msg.invoice
		m.editor = NewEditorModel(m.app, m.draft)
		m.currentScreen = ScreenEditor
		return m, m.editor.Init()

	case RestoreDraftMsg:
		m.draft = msg.Invoice
		m.editor = NewEditorModel(m.app, m.draft)
		m.currentScreen = ScreenEditor
		return m, m.editor.Init()

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenEditor:
		if m.editor != nil {
			m.editor, cmd = m.editor.Update(msg)
		}
	case ScreenHistory:
		if m.history != nil {
			m.history, cmd = m.history.Update(msg)
		}
	case ScreenPreview:
		if m.preview != nil {
			m.preview, cmd = m.preview.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("billcraft - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[E]ditor  [H]istory  [P]review  [Q]uit")

	var content string
	switch m.currentScreen {
	case ScreenEditor:
		if m.editor != nil {
			content = m.editor.View()
		} else {
			content = "Loading..."
		}
	case ScreenHistory:
		if m.history != nil {
			content = m.history.View()
		} else {
			content = "Loading..."
		}
	case ScreenPreview:
		if m.preview != nil {
			content = m.preview.View()
		} else {
			content = "Loading..."
		}
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

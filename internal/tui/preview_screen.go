package tui

import (
	"time"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// PreviewModel renders the working draft the way the exported document will
// look. It is rebuilt on every visit so it always reflects current edits.
type PreviewModel struct {
	app   *app.App
	draft *domain.Invoice
}

// NewPreviewModel creates a new preview screen over the working draft
func NewPreviewModel(a *app.App, draft *domain.Invoice) tea.Model {
	return &PreviewModel{app: a, draft: draft}
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, DefaultKeyMap.Back) {
			return m, func() tea.Msg {
				return SwitchScreenMsg{Screen: ScreenEditor}
			}
		}
	}
	return m, nil
}

func (m *PreviewModel) View() string {
	// A transient snapshot drives the renderer; nothing is persisted
	snap := domain.Snapshot(m.draft, time.Now())
	s := render.Text(snap)
	s += "\n" + helpStyle.Render("  esc: back to editor  ctrl+s in editor saves to history")
	return s
}

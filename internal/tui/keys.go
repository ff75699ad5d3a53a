package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Editor  key.Binding
	History key.Binding
	Preview key.Binding

	// Actions
	Select  key.Binding
	New     key.Binding
	Delete  key.Binding
	Save    key.Binding
	Export  key.Binding
	Restore key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Editor:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editor")),
	History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export pdf")),
	Restore: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
}

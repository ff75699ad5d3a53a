package tui

import "github.com/andy/billcraft/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// RestoreDraftMsg asks the root model to replace the working draft with a
// restored copy of a saved record and jump to the editor
type RestoreDraftMsg struct {
	Invoice *domain.Invoice
}

// draftLoadedMsg carries the initial working draft (or the error from
// building it)
type draftLoadedMsg struct {
	invoice *domain.Invoice
	err     error
}

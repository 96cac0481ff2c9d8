package ui

import (
	"devgrid/internal/grid"
	"devgrid/internal/pane"
)

// DismissModalMsg closes the topmost overlay.
type DismissModalMsg struct{}

// SplitMsg opens a new pane of Kind next to the focused pane along
// Orientation. With nothing focused the pane is appended to the root.
type SplitMsg struct {
	Kind        pane.Kind
	Orientation grid.Orientation
}

// ClosePaneMsg closes a pane. An empty ID means the focused pane. Panes
// owning a live process ask first unless Confirmed is set.
type ClosePaneMsg struct {
	ID        string
	Confirmed bool
}

// SaveLayoutMsg saves the grid under Name. An empty Name saves under the
// current layout name, or asks for one.
type SaveLayoutMsg struct {
	Name string
}

// SaveLayoutAsMsg always asks for a name.
type SaveLayoutAsMsg struct{}

// LoadLayoutMsg replaces the grid with a saved layout. An empty Name
// reloads the current one.
type LoadLayoutMsg struct {
	Name string
}

// FocusMsg moves focus Delta panes along the tab order.
type FocusMsg struct {
	Delta int
}

// EqualizeMsg gives the focused pane and its siblings equal shares.
type EqualizeMsg struct{}

// SetModeMsg switches the input mode.
type SetModeMsg struct {
	Mode AppMode
}

// HidePaneMsg hides the focused pane.
type HidePaneMsg struct{}

// ShowAllMsg shows every hidden pane again.
type ShowAllMsg struct{}

// TogglePinMsg switches the focused pane between pixel and proportional
// sizing.
type TogglePinMsg struct{}

// ShowHelpMsg opens the key reference.
type ShowHelpMsg struct{}

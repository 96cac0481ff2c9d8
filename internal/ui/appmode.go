package ui

// AppMode decides where key presses go.
type AppMode int

const (
	// ModeNormal routes keys through the keybind registry; unbound keys
	// scroll the focused pane.
	ModeNormal AppMode = iota
	// ModeInsert sends every key to the focused shell until ctrl+g.
	ModeInsert
	// ModeResize moves the focused pane's sashes with h/j/k/l.
	ModeResize
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeResize:
		return "RESIZE"
	default:
		return "UNKNOWN"
	}
}

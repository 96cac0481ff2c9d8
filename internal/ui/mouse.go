package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"devgrid/internal/grid"
)

// clickTracker turns two presses on the same sash within interval into a
// double click.
type clickTracker struct {
	interval time.Duration
	now      func() time.Time

	armed  bool
	at     time.Time
	branch *grid.Branch
	index  int
}

// press records a press on s and reports whether it completes a double click.
func (c *clickTracker) press(s grid.Sash) bool {
	t := c.now()
	if c.armed && c.branch == s.Branch && c.index == s.Index && t.Sub(c.at) <= c.interval {
		c.reset()
		return true
	}
	c.armed, c.at, c.branch, c.index = true, t, s.Branch, s.Index
	return false
}

func (c *clickTracker) reset() {
	c.armed, c.branch, c.index = false, nil, 0
}

// handleMouse feeds left-button presses, motion and releases to the grid as
// pointer events. A press that misses every sash focuses the pane under the
// pointer; wheel events scroll it.
func (w *Workbench) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if w.Overlays.Len() > 0 {
		return nil
	}
	x, y := msg.X, msg.Y

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if id, ok := w.paneAt(x, y); ok {
			return w.routeTo(id, msg)
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if s, ok := w.Grid.SashAt(x, y); ok {
			kind := grid.PointerDown
			if w.clicks.press(s) {
				kind = grid.PointerDoubleClick
			}
			w.Grid.HandlePointer(grid.PointerEvent{Kind: kind, X: x, Y: y})
			return nil
		}
		w.clicks.reset()
		if id, ok := w.paneAt(x, y); ok {
			w.Focus.SetFocus(id)
		}
	case tea.MouseActionMotion:
		w.Grid.HandlePointer(grid.PointerEvent{Kind: grid.PointerMove, X: x, Y: y})
	case tea.MouseActionRelease:
		w.Grid.HandlePointer(grid.PointerEvent{Kind: grid.PointerUp, X: x, Y: y})
	}
	return nil
}

// paneAt returns the visible pane whose rectangle contains (x, y).
func (w *Workbench) paneAt(x, y int) (string, bool) {
	for _, id := range w.Focus.Order {
		if r, ok := w.Grid.ViewRect(id); ok && r.Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

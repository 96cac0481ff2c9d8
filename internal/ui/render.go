package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"devgrid/internal/grid"
	"devgrid/internal/ui/textutil"
)

const (
	sashGlyphVertical   = "│"
	sashGlyphHorizontal = "─"
)

// View draws the grid and the status line. The output is exactly the
// terminal size from the last WindowSizeMsg.
func (w *Workbench) View() string {
	if w.width == 0 || w.height == 0 {
		return ""
	}
	status := w.statusBar()
	if w.Grid.Height() == 0 {
		return status
	}
	body := w.renderGrid()
	if top, ok := w.Overlays.Peek(); ok {
		body = lipgloss.Place(w.Grid.Width(), w.Grid.Height(), lipgloss.Center, lipgloss.Center, top.View.View())
		body = clip(body, w.Grid.Width(), w.Grid.Height())
	}
	return body + "\n" + status
}

// renderGrid draws the tree at the geometry of the last layout pass.
func (w *Workbench) renderGrid() string {
	width, height := w.Grid.Width(), w.Grid.Height()
	if w.Grid.ViewCount() == 0 {
		hint := Styles.Empty.Render("No panes. SPC s v opens one, q quits.")
		return clip(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, hint), width, height)
	}
	out := w.renderNode(w.Grid.Root())
	return clip(lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, out), width, height)
}

func (w *Workbench) renderNode(n grid.Node) string {
	switch n := n.(type) {
	case *grid.Leaf:
		if n.Hidden() {
			return ""
		}
		id := n.View().ID()
		p, ok := w.Panes[id]
		if !ok {
			r := n.Rect()
			return strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", r.Width)+"\n", r.Height), "\n")
		}
		return p.Render(id == w.Focus.Current)
	case *grid.Branch:
		parts := make([]string, 0, 2*n.Len())
		for i := range n.Len() {
			if i > 0 {
				if strip := w.sashStrip(n, i-1); strip != "" {
					parts = append(parts, strip)
				}
			}
			c := n.Child(i)
			if r := c.Rect(); r.Width == 0 || r.Height == 0 {
				continue
			}
			if s := w.renderNode(c); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		if n.Orientation() == grid.Horizontal {
			return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return ""
}

// sashStrip draws the reserved space between child idx and idx+1 of b.
// With a zero sash thickness nothing is drawn; the pane borders mark the edge.
func (w *Workbench) sashStrip(b *grid.Branch, idx int) string {
	t := w.Grid.SashThickness()
	r := b.Rect()
	if t == 0 || r.Width == 0 || r.Height == 0 {
		return ""
	}
	style := Styles.Sash
	if db, di, ok := w.Grid.Dragging(); ok && db == b && di == idx {
		style = Styles.SashActive
	}
	if b.Orientation() == grid.Horizontal {
		row := strings.Repeat(sashGlyphVertical, t)
		return style.Render(strings.TrimSuffix(strings.Repeat(row+"\n", r.Height), "\n"))
	}
	row := strings.Repeat(sashGlyphHorizontal, r.Width)
	return style.Render(strings.TrimSuffix(strings.Repeat(row+"\n", t), "\n"))
}

// statusBar is one terminal line: mode, layout and focused pane on the
// left, the last status message on the right. While a leader sequence is
// pending it shows the available keys instead.
func (w *Workbench) statusBar() string {
	if w.Mode == ModeNormal && w.KeyHandler.LeaderWaiting {
		return clip(RenderKeybindHelp(w.KeyHandler, w.Mode, w.width), w.width, 1)
	}

	layout := w.LayoutName
	if layout == "" {
		layout = "unsaved"
	}
	info := layout
	if p, ok := w.Focused(); ok {
		info += " · " + p.Title() + " " + p.ID()
	}
	left := modeBadge(w.Mode) + " " + Styles.Normal.Render(info)

	right := ""
	if room := w.width - lipgloss.Width(left) - 1; room > 0 && w.status != "" {
		msg := textutil.Truncate(w.status, room)
		if w.statusErr {
			right = Styles.Error.Render(msg)
		} else {
			right = Styles.Hint.Render(msg)
		}
	}
	gap := max(w.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return clip(left+strings.Repeat(" ", gap)+right, w.width, 1)
}

// clip cuts s to at most width columns and height lines.
func clip(s string, width, height int) string {
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(s)
}

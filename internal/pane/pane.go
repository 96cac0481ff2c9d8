// Package pane provides the concrete views hosted by the workbench grid.
// Every pane is a grid.View with a Bubble Tea face: it receives messages
// through Update and draws itself into the rectangle the grid assigned.
package pane

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"devgrid/internal/grid"
	"devgrid/internal/ui/textutil"
)

// Kind names a pane implementation. It prefixes pane ids so a saved layout
// can be rebuilt from ids alone.
type Kind string

const (
	KindText      Kind = "text"
	KindInspector Kind = "inspector"
	KindShell     Kind = "shell"
)

var ErrUnknownKind = errors.New("unknown pane kind")

// Pane is a grid view the workbench can draw and feed input to.
type Pane interface {
	grid.View
	Kind() Kind
	Title() string
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	// Render draws the pane into exactly the size of its last Layout.
	Render(focused bool) string
}

// Descriptor is what a pane reports about itself for inspection.
type Descriptor struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
}

// NewID returns a fresh pane id of the given kind, e.g. "shell-1f2e3d4c".
func NewID(kind Kind) string {
	return string(kind) + "-" + uuid.NewString()[:8]
}

// KindOf extracts the kind prefix from a pane id.
func KindOf(id string) (Kind, bool) {
	k, _, ok := strings.Cut(id, "-")
	if !ok {
		return "", false
	}
	switch Kind(k) {
	case KindText, KindInspector, KindShell:
		return Kind(k), true
	}
	return "", false
}

// base holds the state every pane shares.
type base struct {
	id          string
	kind        Kind
	title       string
	constraints grid.Constraints
	width       int
	height      int
	visible     bool
	disposed    bool
}

func (b *base) ID() string                    { return b.id }
func (b *base) Kind() Kind                    { return b.kind }
func (b *base) Title() string                 { return b.title }
func (b *base) Constraints() grid.Constraints { return b.constraints }
func (b *base) SetVisible(v bool)             { b.visible = v }
func (b *base) Visible() bool                 { return b.visible }

// SetConstraints replaces the pane's constraints. The grid reads them on
// its next layout pass.
func (b *base) SetConstraints(c grid.Constraints) { b.constraints = c }

// Size returns the size of the last layout.
func (b *base) Size() (width, height int) { return b.width, b.height }

func (b *base) Descriptor() any {
	return Descriptor{ID: b.id, Kind: b.kind, Title: b.title}
}

func (b *base) setSize(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
}

// inner is the content area inside the frame border.
func (b *base) inner() (width, height int) {
	return max(b.width-2, 0), max(b.height-2, 0)
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
	focusedFrameStyle = frameStyle.
				BorderForeground(lipgloss.Color("205"))
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

// frame wraps body in a rounded border with the title set into the top edge.
// The result is exactly b.width × b.height.
func (b *base) frame(body string, focused bool) string {
	w, h := b.inner()
	if b.width < 2 || b.height < 2 {
		return blank(b.width, b.height)
	}
	if w == 0 || h == 0 {
		body = ""
	}
	style, ts := frameStyle, titleStyle
	if focused {
		style, ts = focusedFrameStyle, focusedTitleStyle
	}
	out := style.Width(w).Height(h).MaxWidth(b.width).MaxHeight(b.height).Render(body)
	if w <= 2 || b.title == "" {
		return out
	}
	title := textutil.Truncate(b.title, w-2)
	lines := strings.SplitN(out, "\n", 2)
	border := style.GetBorderStyle()
	top := lipgloss.NewStyle().Foreground(style.GetBorderTopForeground())
	lines[0] = top.Render(border.TopLeft+border.Top) +
		ts.Render(title) +
		top.Render(strings.Repeat(border.Top, w-1-lipgloss.Width(title))+border.TopRight)
	return strings.Join(lines, "\n")
}

// blank returns a width × height block of spaces.
func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

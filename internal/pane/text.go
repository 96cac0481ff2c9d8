package pane

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"devgrid/internal/grid"
)

// Text shows static, scrollable text.
type Text struct {
	base
	body     string
	viewport viewport.Model
}

var _ Pane = (*Text)(nil)

// NewText creates a text pane.
func NewText(id, title, body string, c grid.Constraints) *Text {
	t := &Text{
		base:     base{id: id, kind: KindText, title: title, constraints: c},
		body:     body,
		viewport: viewport.New(0, 0),
	}
	t.viewport.SetContent(body)
	return t
}

// SetBody replaces the text.
func (t *Text) SetBody(body string) {
	t.body = body
	t.viewport.SetContent(body)
}

// Body returns the text.
func (t *Text) Body() string { return t.body }

func (t *Text) Init() tea.Cmd { return nil }

func (t *Text) Layout(width, height int, _ grid.Orientation) {
	t.setSize(width, height)
	t.viewport.Width, t.viewport.Height = t.inner()
	t.viewport.SetContent(t.body)
}

func (t *Text) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return cmd
}

func (t *Text) Render(focused bool) string {
	return t.frame(t.viewport.View(), focused)
}

func (t *Text) Dispose() { t.disposed = true }

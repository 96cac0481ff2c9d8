package pane

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"devgrid/internal/grid"
	"devgrid/internal/jsonutil"
)

// Inspector shows the live serialized layout of the grid it lives in.
type Inspector struct {
	base
	source   func() grid.State
	viewport viewport.Model
	content  string
}

var _ Pane = (*Inspector)(nil)

// NewInspector creates an inspector reading its document from source.
func NewInspector(id string, source func() grid.State, c grid.Constraints) *Inspector {
	return &Inspector{
		base:     base{id: id, kind: KindInspector, title: "layout", constraints: c},
		source:   source,
		viewport: viewport.New(0, 0),
	}
}

// Refresh re-reads the layout. The workbench calls it after grid events.
func (in *Inspector) Refresh() {
	if in.source == nil {
		return
	}
	data, err := jsonutil.MarshalIndentWithContext(in.source(), "inspect layout")
	if err != nil {
		in.content = err.Error()
	} else {
		in.content = string(data)
	}
	in.viewport.SetContent(in.content)
}

// Content returns the last rendered document.
func (in *Inspector) Content() string { return in.content }

func (in *Inspector) Init() tea.Cmd {
	in.Refresh()
	return nil
}

func (in *Inspector) Layout(width, height int, _ grid.Orientation) {
	in.setSize(width, height)
	in.viewport.Width, in.viewport.Height = in.inner()
	in.viewport.SetContent(in.content)
}

func (in *Inspector) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in.viewport, cmd = in.viewport.Update(msg)
	return cmd
}

func (in *Inspector) Render(focused bool) string {
	return in.frame(in.viewport.View(), focused)
}

func (in *Inspector) Dispose() {
	in.disposed = true
	in.source = nil
}

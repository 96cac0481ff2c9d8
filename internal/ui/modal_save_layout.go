package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SaveLayoutModal asks for the name to save the current layout under.
type SaveLayoutModal struct {
	input textinput.Model
}

// Ensure SaveLayoutModal implements View.
var _ View = (*SaveLayoutModal)(nil)

// NewSaveLayoutModal creates the modal, prefilled with current if set.
func NewSaveLayoutModal(current string) *SaveLayoutModal {
	ti := textinput.New()
	ti.Placeholder = "layout-name"
	ti.Width = 40
	ti.SetValue(current)
	ti.Focus()
	return &SaveLayoutModal{input: ti}
}

// Value returns the text typed so far.
func (m *SaveLayoutModal) Value() string {
	return m.input.Value()
}

// Init implements View.
func (m *SaveLayoutModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *SaveLayoutModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name != "" {
				return m, func() tea.Msg { return SaveLayoutMsg{Name: name} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *SaveLayoutModal) View() string {
	content := Styles.Title.Render("Save layout") + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: save  Esc: cancel")
	return Styles.Box.Render(content)
}

package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal lists every binding of the mode it was opened from, one column
// per leader submenu.
type HelpModal struct {
	mode AppMode
	keys help.KeyMap
	help help.Model
}

var _ View = (*HelpModal)(nil)

// NewHelpModal creates the key reference for mode.
func NewHelpModal(reg *KeybindRegistry, mode AppMode) *HelpModal {
	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "    "
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	h.Styles.FullDesc = Styles.Normal
	h.Styles.FullSeparator = Styles.Hint
	return &HelpModal{mode: mode, keys: NewKeyMap(reg, nil, mode), help: h}
}

func (m *HelpModal) Init() tea.Cmd { return nil }

// Update closes the modal on ?, q or esc.
func (m *HelpModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "?", "q", "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	}
	return m, nil
}

func (m *HelpModal) View() string {
	content := Styles.Title.Render("Keys ("+m.mode.String()+")") + "\n\n"
	content += m.help.View(m.keys)
	content += "\n\n" + Styles.Hint.Render("?/Esc: close")
	return Styles.Box.Render(content)
}

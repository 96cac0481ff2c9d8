package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("SPC q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q") == nil {
		t.Error("expected SPC q to be bound")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC x", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	// Press space -> leader waiting (Bubble Tea reports space as " ")
	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	// Press x -> execute SPC x
	consumed, cmd = h.Handle(keyMsg("x"))
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd != nil {
		cmd()
		if !executed {
			t.Error("expected command to execute")
		}
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"))
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"))
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestKeyHandler_LeaderPrefixWaitsForMoreKeys(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC s v", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("s"))
	if !consumed || cmd != nil {
		t.Errorf("s: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Fatal("expected leader to keep waiting after a prefix")
	}
	if got := strings.Join(h.Buffer, " "); got != "SPC s" {
		t.Errorf("Buffer = %q, want %q", got, "SPC s")
	}

	consumed, cmd = h.Handle(keyMsg("v"))
	if !consumed || cmd == nil {
		t.Errorf("v: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnknownLeaderSequenceResets(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC s v", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("z"))
	if !consumed || cmd != nil {
		t.Errorf("z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting || h.Buffer != nil {
		t.Errorf("expected leader state reset, got waiting=%v buffer=%v", h.LeaderWaiting, h.Buffer)
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Group("SPC s", "Split")
	reg.BindWithDesc("SPC s v", tea.Quit, "Split right")
	reg.BindWithDesc("SPC s h", tea.Quit, "Split below")
	reg.BindWithDesc("SPC l r", tea.Quit, "Reload")
	reg.BindWithDesc("SPC x", tea.Quit, "Close pane")
	reg.BindWithDescForMode("SPC r", tea.Quit, "Resize", []AppMode{ModeNormal})

	top := reg.LeaderHints("", ModeNormal)
	want := map[string]string{"s": "Split", "l": "l…", "x": "Close pane", "r": "Resize"}
	if len(top) != len(want) {
		t.Fatalf("LeaderHints(\"\") = %v, want %v", top, want)
	}
	for k, v := range want {
		if top[k] != v {
			t.Errorf("LeaderHints(\"\")[%q] = %q, want %q", k, top[k], v)
		}
	}

	if _, ok := reg.LeaderHints("", ModeResize)["r"]; ok {
		t.Error("mode-filtered binding should be hidden in other modes")
	}

	sub := reg.LeaderHints("SPC s", ModeNormal)
	if sub["v"] != "Split right" || sub["h"] != "Split below" || len(sub) != 2 {
		t.Errorf("LeaderHints(\"SPC s\") = %v", sub)
	}
}

func TestKeybindRegistry_BindingsGroupedForHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC s v", tea.Quit, "Split right")
	reg.BindWithDesc("SPC x", tea.Quit, "Close pane")
	reg.BindWithDesc("tab", tea.Quit, "Next pane")
	reg.BindWithDesc("SPC l s", tea.Quit, "")
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDescForMode("?", tea.Quit, "Key help", []AppMode{ModeNormal})
	reg.Bind("j", nil)

	var got []string
	for _, b := range reg.Bindings(ModeNormal) {
		got = append(got, b.Seq)
	}
	want := []string{"?", "q", "tab", "SPC x", "SPC l s", "SPC s v"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Bindings(normal) = %v, want %v", got, want)
	}
	if n := len(reg.Bindings(ModeResize)); n != 5 {
		t.Errorf("Bindings(resize) has %d entries, want 5", n)
	}

	cols := NewKeyMap(reg, nil, ModeNormal).FullHelp()
	if len(cols) != 4 {
		t.Fatalf("FullHelp() has %d columns, want 4", len(cols))
	}
	sizes := []int{len(cols[0]), len(cols[1]), len(cols[2]), len(cols[3])}
	if sizes[0] != 3 || sizes[1] != 1 || sizes[2] != 1 || sizes[3] != 1 {
		t.Errorf("column sizes = %v, want [3 1 1 1]", sizes)
	}
	if h := cols[2][0].Help(); h.Key != "SPC l s" || h.Desc != "SPC l s" {
		t.Errorf("undescribed binding help = %+v, want its sequence", h)
	}
}

func TestHelpModal(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC s v", tea.Quit, "Split right")
	reg.BindWithDesc("q", tea.Quit, "Quit")
	m := NewHelpModal(reg, ModeNormal)

	view := m.View()
	for _, want := range []string{"NORMAL", "SPC s v", "Split right", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}

	for _, k := range []string{"?", "q", "esc"} {
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected dismiss command", k)
		}
		if _, ok := cmd().(DismissModalMsg); !ok {
			t.Errorf("%s: got %T, want DismissModalMsg", k, cmd())
		}
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC x", tea.Quit, "Close pane")
	h := NewKeyHandler(reg)

	if got := RenderKeybindHelp(h, ModeNormal, 80); got != "" {
		t.Errorf("help outside leader mode = %q, want empty", got)
	}

	h.Handle(keyMsg(" "))
	got := RenderKeybindHelp(h, ModeNormal, 80)
	for _, want := range []string{"SPC", "x", "Close pane", "esc"} {
		if !strings.Contains(got, want) {
			t.Errorf("help %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "\n") {
		t.Errorf("help should be a single line, got %q", got)
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "q":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	case "x":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	case "j":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

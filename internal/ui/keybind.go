package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding is one registered key sequence.
type Binding struct {
	Seq   string // normalized, e.g. "SPC s v"
	Desc  string
	Cmd   tea.Cmd
	Modes []AppMode // empty: every mode
}

func (b Binding) appliesTo(mode AppMode) bool {
	if len(b.Modes) == 0 {
		return true
	}
	for _, m := range b.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

func (b Binding) label() string {
	if b.Desc != "" {
		return b.Desc
	}
	return b.Seq
}

// KeybindRegistry maps key sequences to commands.
// Sequences use leader notation: "SPC s v" is space, then s, then v.
// Single keys are written the way Bubble Tea reports them: "q", "tab", "ctrl+c".
type KeybindRegistry struct {
	bindings map[string]Binding
	groups   map[string]string // leader prefix → label, e.g. "SPC s" → "Split"
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings: make(map[string]Binding),
		groups:   make(map[string]string),
	}
}

// Bind registers a key sequence to a command, replacing any previous binding.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers a key sequence with the description shown in help.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode is BindWithDesc limited to modes. Outside them the
// binding still fires but is left out of help.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	n := normalizeSeq(seq)
	r.bindings[n] = Binding{Seq: n, Desc: desc, Cmd: cmd, Modes: modes}
}

// Group labels a leader prefix that opens a submenu, so help shows
// "s Split" rather than one of the actions behind it.
func (r *KeybindRegistry) Group(prefix, label string) {
	r.groups[normalizeSeq(prefix)] = label
}

// Lookup returns the command for a key sequence, or nil if not bound.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].Cmd
}

// HasPrefix reports whether a longer binding starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k, b := range r.bindings {
		if b.Cmd != nil && strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the keys that may follow currentSeq ("SPC" when
// empty) in mode, each with its description or its submenu label.
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	prefix := "SPC"
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq)
	}
	out := make(map[string]string)
	for seq, b := range r.bindings {
		if b.Cmd == nil || !strings.HasPrefix(seq, prefix+" ") || !b.appliesTo(mode) {
			continue
		}
		rest := strings.Fields(strings.TrimPrefix(seq, prefix+" "))
		if len(rest) == 0 {
			continue
		}
		next := rest[0]
		if len(rest) == 1 {
			if _, taken := out[next]; !taken {
				out[next] = b.label()
			}
			continue
		}
		if label, ok := r.groups[prefix+" "+next]; ok {
			out[next] = label
		} else {
			out[next] = next + "…"
		}
	}
	return out
}

// Bindings returns the bindings shown in mode, plain keys first, then
// leader bindings grouped by submenu.
func (r *KeybindRegistry) Bindings(mode AppMode) []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if b.Cmd != nil && b.appliesTo(mode) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := groupOf(out[i].Seq), groupOf(out[j].Seq)
		if gi != gj {
			return gi < gj
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// groupOf is the help column a sequence belongs to: "" for plain keys,
// "SPC" for single leader keys and "SPC s" for the s submenu.
func groupOf(seq string) string {
	parts := strings.Fields(seq)
	switch {
	case len(parts) == 0 || parts[0] != "SPC":
		return ""
	case len(parts) <= 2:
		return "SPC"
	}
	return strings.Join(parts[:len(parts)-1], " ")
}

// normalizeSeq converts tea key strings to registry notation:
// "space" and " " become "SPC", everything else is kept.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" || p == " " {
			parts[i] = "SPC"
		}
	}
	return strings.Join(parts, " ")
}

// KeyHandler tracks leader state and dispatches keys to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string   // tea.KeyMsg.String() of the leader, " " for space
	LeaderSeq     string   // registry notation of the leader
	LeaderWaiting bool     // a leader sequence is in progress
	Buffer        []string // keys of the sequence so far
}

// NewKeyHandler creates a handler with SPC as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{
		Registry:  reg,
		LeaderKey: " ",
		LeaderSeq: "SPC",
	}
}

// Handle processes a KeyMsg. consumed means the key belongs to the keybind
// system and must not reach a pane; cmd is the bound command, if any.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if s == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	if s == h.LeaderKey {
		h.LeaderWaiting = true
		h.Buffer = []string{h.LeaderSeq}
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.Lookup(seq); c != nil {
			h.reset()
			return true, c
		}
		if !h.Registry.HasPrefix(seq) {
			h.reset()
		}
		return true, nil
	}

	if c := h.Registry.Lookup(keyToSeqPart(s)); c != nil {
		return true, c
	}
	return false, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// keyToSeqPart converts a tea key string to a sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyMap adapts the registry to help.KeyMap. ShortHelp lists what may
// follow the handler's current leader sequence; FullHelp lists every
// binding of the mode, one column per group.
type KeyMap struct {
	registry   *KeybindRegistry
	keyHandler *KeyHandler
	mode       AppMode
}

// NewKeyMap creates a KeyMap for the given registry, handler, and mode.
// keyHandler may be nil when only FullHelp is needed.
func NewKeyMap(registry *KeybindRegistry, keyHandler *KeyHandler, mode AppMode) help.KeyMap {
	return &KeyMap{
		registry:   registry,
		keyHandler: keyHandler,
		mode:       mode,
	}
}

// ShortHelp implements help.KeyMap.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	currentSeq := ""
	if km.keyHandler != nil && len(km.keyHandler.Buffer) > 0 {
		currentSeq = strings.Join(km.keyHandler.Buffer, " ")
	}
	hints := km.registry.LeaderHints(currentSeq, km.mode)
	if len(hints) == 0 {
		return nil
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp implements help.KeyMap.
func (km *KeyMap) FullHelp() [][]key.Binding {
	if km.registry == nil {
		return nil
	}
	var cols [][]key.Binding
	last := ""
	for _, b := range km.registry.Bindings(km.mode) {
		if g := groupOf(b.Seq); len(cols) == 0 || g != last {
			cols = append(cols, nil)
			last = g
		}
		i := len(cols) - 1
		cols[i] = append(cols[i], key.NewBinding(key.WithKeys(b.Seq), key.WithHelp(b.Seq, b.label())))
	}
	return cols
}

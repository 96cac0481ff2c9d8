package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"devgrid/internal/grid"
	"devgrid/internal/pane"
	"devgrid/internal/store"
)

// DefaultDoubleClick is the double-click interval used when none is set.
const DefaultDoubleClick = 400 * time.Millisecond

const welcomeText = `devgrid

SPC s v  split right      SPC s h  split below
SPC s t  shell right      SPC s i  inspector
SPC x    close pane       SPC r    resize mode
SPC w    save layout      tab      next pane
q        quit

Drag a border with the mouse to resize.
Double-click a border to even out its neighbours.`

var errNoStore = errors.New("no layout store configured")

// Options configures a Workbench.
type Options struct {
	Orientation   grid.Orientation
	SashThickness int
	DoubleClick   time.Duration
	Factory       *pane.Factory
	// Store is where layouts are saved. Nil disables saving.
	Store *store.Store
	// Layout is the saved layout to open and the default save name.
	Layout string
	Logger *slog.Logger
	Tracer trace.Tracer
	// Now is the clock used for double-click detection.
	Now func() time.Time
}

// Workbench hosts a grid of panes in a Bubble Tea program.
type Workbench struct {
	Mode       AppMode
	Grid       *grid.Grid
	Panes      map[string]pane.Pane
	Focus      *FocusManager
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Factory    *pane.Factory
	Store      *store.Store
	LayoutName string

	width, height int
	status        string
	statusErr     bool
	clicks        clickTracker
	gridOpts      []grid.Option
	unsubscribe   func()
	logger        *slog.Logger
}

// NewWorkbench builds a workbench. When opts names a saved layout that
// exists it is restored; otherwise the grid starts with a single text pane.
func NewWorkbench(opts Options) (*Workbench, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	factory := opts.Factory
	if factory == nil {
		factory = &pane.Factory{}
	}
	if factory.WelcomeText == "" {
		factory.WelcomeText = welcomeText
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = DefaultDoubleClick
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	w := &Workbench{
		Mode:       ModeNormal,
		Panes:      make(map[string]pane.Pane),
		Factory:    factory,
		Store:      opts.Store,
		LayoutName: opts.Layout,
		clicks:     clickTracker{interval: opts.DoubleClick, now: opts.Now},
		logger:     logger,
		gridOpts: []grid.Option{
			grid.WithSashThickness(opts.SashThickness),
			grid.WithLogger(logger.With("component", "grid")),
			grid.WithTracer(opts.Tracer),
		},
	}
	if factory.Inspect == nil {
		factory.Inspect = w.inspect
	}
	w.Focus = &FocusManager{OnChange: w.focusChanged}
	reg := NewKeybindRegistry()
	registerKeybinds(reg)
	w.KeyHandler = NewKeyHandler(reg)

	g, err := w.initialGrid(opts.Orientation)
	if err != nil {
		return nil, err
	}
	w.attach(g)
	return w, nil
}

func (w *Workbench) initialGrid(o grid.Orientation) (*grid.Grid, error) {
	if w.Store != nil && w.LayoutName != "" {
		state, err := w.Store.Load(w.LayoutName)
		switch {
		case err == nil:
			g, err := grid.Deserialize(state, w.Factory.ViewFactory(), w.gridOpts...)
			if err != nil {
				return nil, fmt.Errorf("restore layout %q: %w", w.LayoutName, err)
			}
			w.logger.Info("layout restored", "layout", w.LayoutName, "views", g.ViewCount())
			return g, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
		w.logger.Info("layout not found, starting fresh", "layout", w.LayoutName)
	}
	g := grid.New(o, 0, 0, w.gridOpts...)
	p, err := w.Factory.New(pane.KindText)
	if err != nil {
		return nil, err
	}
	if err := g.AddView(p, 0); err != nil {
		p.Dispose()
		return nil, err
	}
	return g, nil
}

// attach makes g the workbench grid and registers its panes.
func (w *Workbench) attach(g *grid.Grid) {
	w.Grid = g
	w.Panes = make(map[string]pane.Pane, g.ViewCount())
	for _, id := range g.ViewIDs() {
		v, _ := g.View(id)
		if p, ok := v.(pane.Pane); ok {
			w.Panes[id] = p
		}
	}
	w.unsubscribe = g.Subscribe(w.onGridEvent)
	w.syncFocus()
}

// detach stops listening to the current grid without disposing it.
func (w *Workbench) detach() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

// Close disposes the grid and every pane in it.
func (w *Workbench) Close() {
	w.detach()
	if w.Grid != nil {
		w.Grid.Dispose()
	}
	w.Panes = make(map[string]pane.Pane)
}

func (w *Workbench) inspect() grid.State {
	if w.Grid == nil {
		return grid.State{}
	}
	return w.Grid.Serialize()
}

func (w *Workbench) onGridEvent(e grid.Event) {
	switch e.Kind {
	case grid.EventSashReset:
		w.equalizePair(e.Branch, e.SashIndex)
	case grid.EventViewRemoved:
		delete(w.Panes, e.ViewID)
		w.syncFocus()
	case grid.EventViewAdded, grid.EventViewSplit, grid.EventVisibilityChanged:
		w.syncFocus()
	}
	w.refreshInspectors()
}

// equalizePair is the sash reset policy: the two neighbours of the sash
// split their combined size evenly.
func (w *Workbench) equalizePair(b *grid.Branch, idx int) {
	if b == nil || idx < 0 || idx+1 >= b.Len() {
		return
	}
	s1, s2 := b.Child(idx).Size(), b.Child(idx+1).Size()
	w.Grid.ResizeSash(b, idx, (s1+s2)/2-s1)
}

func (w *Workbench) refreshInspectors() {
	for _, p := range w.Panes {
		if in, ok := p.(*pane.Inspector); ok {
			in.Refresh()
		}
	}
}

// syncFocus makes the tab order follow the visible panes in placement order.
func (w *Workbench) syncFocus() {
	var order []string
	for _, id := range w.Grid.ViewIDs() {
		if leaf, ok := w.Grid.Leaf(id); ok && !leaf.Hidden() {
			order = append(order, id)
		}
	}
	w.Focus.SetOrder(order)
}

func (w *Workbench) focusChanged(from, to string) {
	if w.Mode == ModeInsert {
		w.Mode = ModeNormal
	}
	w.logger.Debug("focus changed", "from", from, "to", to)
}

// Focused returns the focused pane.
func (w *Workbench) Focused() (pane.Pane, bool) {
	p, ok := w.Panes[w.Focus.Current]
	return p, ok
}

// Status returns the status bar message and whether it reports an error.
func (w *Workbench) Status() (string, bool) {
	return w.status, w.statusErr
}

func (w *Workbench) setStatus(format string, args ...any) {
	w.status = fmt.Sprintf(format, args...)
	w.statusErr = false
}

func (w *Workbench) fail(op string, err error) tea.Cmd {
	w.logger.Error(op+" failed", "error", err)
	w.status = op + ": " + err.Error()
	w.statusErr = true
	return nil
}

// Init starts every pane.
func (w *Workbench) Init() tea.Cmd {
	return w.initPanes()
}

func (w *Workbench) initPanes() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(w.Panes))
	for _, id := range w.Grid.ViewIDs() {
		if p, ok := w.Panes[id]; ok {
			cmds = append(cmds, p.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update handles one message and returns the follow-up command.
func (w *Workbench) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.resize(msg.Width, msg.Height)
		return nil
	case tea.MouseMsg:
		return w.handleMouse(msg)
	case pane.OutputMsg:
		return w.routeTo(msg.ID, msg)
	case pane.ExitedMsg:
		if msg.ID == w.Focus.Current && w.Mode == ModeInsert {
			w.Mode = ModeNormal
		}
		return w.routeTo(msg.ID, msg)
	case tea.KeyMsg:
		return w.handleKey(msg)
	case DismissModalMsg:
		w.Overlays.Pop()
		return nil
	case SplitMsg:
		return w.split(msg.Kind, msg.Orientation)
	case ClosePaneMsg:
		return w.closePane(msg)
	case SaveLayoutMsg:
		return w.save(msg.Name)
	case SaveLayoutAsMsg:
		return w.promptSave()
	case LoadLayoutMsg:
		return w.load(msg.Name)
	case FocusMsg:
		w.moveFocus(msg.Delta)
		return nil
	case EqualizeMsg:
		w.equalizeFocused()
		return nil
	case SetModeMsg:
		w.setMode(msg.Mode)
		return nil
	case HidePaneMsg:
		return w.hideFocused()
	case ShowAllMsg:
		w.showAll()
		return nil
	case TogglePinMsg:
		return w.togglePin()
	case ShowHelpMsg:
		w.Overlays.Push(Overlay{View: NewHelpModal(w.KeyHandler.Registry, w.Mode), Dismiss: "esc"})
		return nil
	}
	if cmd, ok := w.Overlays.UpdateTop(msg); ok {
		return cmd
	}
	return nil
}

// resize gives the grid the whole terminal except the status line.
func (w *Workbench) resize(width, height int) {
	w.width, w.height = max(width, 0), max(height, 0)
	w.Grid.Resize(w.width, max(w.height-1, 0))
}

func (w *Workbench) routeTo(id string, msg tea.Msg) tea.Cmd {
	p, ok := w.Panes[id]
	if !ok {
		return nil
	}
	return p.Update(msg)
}

func (w *Workbench) handleKey(msg tea.KeyMsg) tea.Cmd {
	if top, ok := w.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			w.Overlays.Pop()
			return nil
		}
		cmd, _ := w.Overlays.UpdateTop(msg)
		return cmd
	}

	switch w.Mode {
	case ModeInsert:
		if msg.String() == "ctrl+g" {
			w.Mode = ModeNormal
			return nil
		}
		return w.routeTo(w.Focus.Current, msg)
	case ModeResize:
		return w.handleResizeKey(msg)
	}

	if consumed, cmd := w.KeyHandler.Handle(msg); consumed {
		return cmd
	}
	p, ok := w.Focused()
	if !ok {
		return nil
	}
	if s, isShell := p.(*pane.Shell); isShell {
		switch msg.String() {
		case "i", "enter":
			if !s.Exited() {
				w.Mode = ModeInsert
			}
		}
		return nil
	}
	return p.Update(msg)
}

func (w *Workbench) setMode(m AppMode) {
	if m == ModeInsert {
		s, ok := w.Panes[w.Focus.Current].(*pane.Shell)
		if !ok || s.Exited() {
			w.setStatus("insert mode needs a running shell")
			return
		}
	}
	w.Mode = m
}

func (w *Workbench) moveFocus(delta int) {
	for ; delta > 0; delta-- {
		w.Focus.Next()
	}
	for ; delta < 0; delta++ {
		w.Focus.Prev()
	}
}

// split opens a pane of kind next to the focused pane.
func (w *Workbench) split(kind pane.Kind, o grid.Orientation) tea.Cmd {
	p, err := w.Factory.New(kind)
	if err != nil {
		return w.fail("open pane", err)
	}
	w.Panes[p.ID()] = p
	if leaf, ok := w.Grid.Leaf(w.Focus.Current); ok {
		err = w.Grid.SplitView(leaf.View().ID(), p, leaf.Size()/2, o, false)
	} else {
		err = w.Grid.AddView(p, 0)
	}
	if err != nil {
		delete(w.Panes, p.ID())
		p.Dispose()
		return w.fail("split", err)
	}
	w.Grid.Layout()
	w.Focus.SetFocus(p.ID())
	w.setStatus("opened %s", p.ID())
	return p.Init()
}

// needsConfirm reports whether closing p would kill a running process.
func needsConfirm(p pane.Pane) bool {
	s, ok := p.(*pane.Shell)
	return ok && !s.Exited()
}

func (w *Workbench) closePane(msg ClosePaneMsg) tea.Cmd {
	id := msg.ID
	if id == "" {
		id = w.Focus.Current
	}
	p, ok := w.Panes[id]
	if !ok {
		return nil
	}
	if !msg.Confirmed && needsConfirm(p) {
		w.Overlays.Push(Overlay{View: NewClosePaneConfirmModal(p), Dismiss: "esc"})
		return nil
	}
	if w.Overlays.Len() > 0 {
		w.Overlays.Pop()
	}
	w.Grid.RemoveView(id)
	w.Grid.Layout()
	w.setStatus("closed %s", id)
	return nil
}

func (w *Workbench) promptSave() tea.Cmd {
	if w.Store == nil {
		return w.fail("save layout", errNoStore)
	}
	m := NewSaveLayoutModal(w.LayoutName)
	w.Overlays.Push(Overlay{View: m, Dismiss: "esc"})
	return m.Init()
}

func (w *Workbench) save(name string) tea.Cmd {
	if name == "" {
		name = w.LayoutName
	}
	if name == "" {
		return w.promptSave()
	}
	if w.Overlays.Len() > 0 {
		w.Overlays.Pop()
	}
	if w.Store == nil {
		return w.fail("save layout", errNoStore)
	}
	if err := w.Store.Save(name, w.Grid.Serialize()); err != nil {
		return w.fail("save layout", err)
	}
	w.LayoutName = name
	w.logger.Info("layout saved", "layout", name, "views", w.Grid.ViewCount())
	w.setStatus("saved layout %s", name)
	return nil
}

// load swaps the grid for a saved layout. The old panes are disposed.
func (w *Workbench) load(name string) tea.Cmd {
	if name == "" {
		name = w.LayoutName
	}
	if w.Store == nil {
		return w.fail("load layout", errNoStore)
	}
	if name == "" {
		return w.fail("load layout", store.ErrInvalidName)
	}
	state, err := w.Store.Load(name)
	if err != nil {
		return w.fail("load layout", err)
	}
	g, err := grid.Deserialize(state, w.Factory.ViewFactory(), w.gridOpts...)
	if err != nil {
		return w.fail("load layout", err)
	}
	w.Close()
	w.Mode = ModeNormal
	w.attach(g)
	w.LayoutName = name
	if w.width > 0 || w.height > 0 {
		w.resize(w.width, w.height)
	}
	w.setStatus("loaded layout %s", name)
	return w.initPanes()
}

// focusedParent returns the branch holding the focused pane, or the root.
func (w *Workbench) focusedParent() *grid.Branch {
	if leaf, ok := w.Grid.Leaf(w.Focus.Current); ok && leaf.Parent() != nil {
		return leaf.Parent()
	}
	return w.Grid.Root()
}

func (w *Workbench) equalizeFocused() {
	w.Grid.DistributeEvenly(w.focusedParent())
}

// resizeFocused grows (delta > 0) or shrinks the focused pane along o by
// moving the nearest sash of an enclosing branch with that orientation.
func (w *Workbench) resizeFocused(o grid.Orientation, delta int) {
	leaf, ok := w.Grid.Leaf(w.Focus.Current)
	if !ok {
		return
	}
	var n grid.Node = leaf
	for b := n.Parent(); b != nil; n, b = b, b.Parent() {
		if b.Orientation() != o || b.Len() < 2 {
			continue
		}
		idx := childIndex(b, n)
		applied := 0
		if idx+1 < b.Len() {
			applied = w.Grid.ResizeSash(b, idx, delta)
		} else {
			applied = -w.Grid.ResizeSash(b, idx-1, -delta)
		}
		if applied == 0 {
			w.setStatus("pane is at its size limit")
		}
		return
	}
	w.setStatus("no %s neighbour to resize against", o)
}

func childIndex(b *grid.Branch, n grid.Node) int {
	for i := range b.Len() {
		if b.Child(i) == n {
			return i
		}
	}
	return -1
}

func (w *Workbench) handleResizeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "l", "right":
		w.resizeFocused(grid.Horizontal, 1)
	case "h", "left":
		w.resizeFocused(grid.Horizontal, -1)
	case "j", "down":
		w.resizeFocused(grid.Vertical, 1)
	case "k", "up":
		w.resizeFocused(grid.Vertical, -1)
	case "L":
		w.resizeFocused(grid.Horizontal, 5)
	case "H":
		w.resizeFocused(grid.Horizontal, -5)
	case "J":
		w.resizeFocused(grid.Vertical, 5)
	case "K":
		w.resizeFocused(grid.Vertical, -5)
	case "=":
		w.equalizeFocused()
	case "tab":
		w.Focus.Next()
	case "shift+tab":
		w.Focus.Prev()
	case "esc", "enter", "q":
		w.Mode = ModeNormal
	}
	return nil
}

func (w *Workbench) hideFocused() tea.Cmd {
	id := w.Focus.Current
	if id == "" {
		return nil
	}
	if len(w.Focus.Order) < 2 {
		w.setStatus("cannot hide the last visible pane")
		return nil
	}
	if err := w.Grid.SetViewVisible(id, false); err != nil {
		return w.fail("hide pane", err)
	}
	w.Grid.Layout()
	w.setStatus("hid %s (SPC u shows it again)", id)
	return nil
}

func (w *Workbench) showAll() {
	shown := 0
	for _, id := range w.Grid.ViewIDs() {
		if leaf, ok := w.Grid.Leaf(id); ok && leaf.Hidden() {
			if err := w.Grid.SetViewVisible(id, true); err == nil {
				shown++
			}
		}
	}
	if shown > 0 {
		w.Grid.Layout()
	}
	w.setStatus("%d hidden pane(s) shown", shown)
}

func (w *Workbench) togglePin() tea.Cmd {
	leaf, ok := w.Grid.Leaf(w.Focus.Current)
	if !ok {
		return nil
	}
	mode := grid.Pixel
	if leaf.SizingMode() == grid.Pixel {
		mode = grid.Proportional
	}
	if err := w.Grid.SetViewSizingMode(w.Focus.Current, mode); err != nil {
		return w.fail("toggle sizing", err)
	}
	w.setStatus("%s sizing: %s", w.Focus.Current, mode)
	return nil
}

func registerKeybinds(reg *KeybindRegistry) {
	msg := func(m tea.Msg) tea.Cmd { return func() tea.Msg { return m } }

	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDescForMode("?", msg(ShowHelpMsg{}), "Key help", []AppMode{ModeNormal})
	reg.BindWithDesc("tab", msg(FocusMsg{Delta: 1}), "Next pane")
	reg.BindWithDesc("shift+tab", msg(FocusMsg{Delta: -1}), "Previous pane")

	reg.Group("SPC s", "Split")
	reg.Group("SPC l", "Layout")
	reg.BindWithDesc("SPC s v", msg(SplitMsg{Kind: pane.KindText, Orientation: grid.Horizontal}), "Split right")
	reg.BindWithDesc("SPC s h", msg(SplitMsg{Kind: pane.KindText, Orientation: grid.Vertical}), "Split below")
	reg.BindWithDesc("SPC s t", msg(SplitMsg{Kind: pane.KindShell, Orientation: grid.Horizontal}), "Shell right")
	reg.BindWithDesc("SPC s j", msg(SplitMsg{Kind: pane.KindShell, Orientation: grid.Vertical}), "Shell below")
	reg.BindWithDesc("SPC s i", msg(SplitMsg{Kind: pane.KindInspector, Orientation: grid.Horizontal}), "Inspector")

	reg.BindWithDesc("SPC x", msg(ClosePaneMsg{}), "Close pane")
	reg.BindWithDesc("SPC z", msg(HidePaneMsg{}), "Hide pane")
	reg.BindWithDesc("SPC u", msg(ShowAllMsg{}), "Show hidden")
	reg.BindWithDesc("SPC p", msg(TogglePinMsg{}), "Pin size")
	reg.BindWithDesc("SPC e", msg(EqualizeMsg{}), "Equalize")
	reg.BindWithDesc("SPC r", msg(SetModeMsg{Mode: ModeResize}), "Resize mode")
	reg.BindWithDesc("SPC i", msg(SetModeMsg{Mode: ModeInsert}), "Insert mode")

	reg.BindWithDesc("SPC w", msg(SaveLayoutMsg{}), "Save layout")
	reg.BindWithDesc("SPC l s", msg(SaveLayoutAsMsg{}), "Save as")
	reg.BindWithDesc("SPC l r", msg(LoadLayoutMsg{}), "Reload")
}

// Ensure Workbench can be used as tea.Model via adapter.
var _ tea.Model = (*workbenchModel)(nil)

// workbenchModel wraps Workbench to implement tea.Model.
type workbenchModel struct {
	*Workbench
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (w *Workbench) AsTeaModel() tea.Model {
	return &workbenchModel{Workbench: w}
}

// Init implements tea.Model.
func (m *workbenchModel) Init() tea.Cmd {
	return m.Workbench.Init()
}

// Update implements tea.Model.
func (m *workbenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, m.Workbench.Update(msg)
}

// View implements tea.Model.
func (m *workbenchModel) View() string {
	return m.Workbench.View()
}

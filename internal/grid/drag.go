package grid

// Sash is the draggable boundary between child Index and Index+1 of Branch.
type Sash struct {
	Branch *Branch
	Index  int
	// Orientation is the branch orientation; a Horizontal branch has
	// vertical sash lines that are dragged along the x axis.
	Orientation Orientation
	Rect        Rect
}

// Sashes returns every sash in the tree, parents before children.
func (g *Grid) Sashes() []Sash {
	var out []Sash
	thickness := max(g.sashThickness, 1)
	walkBranches(g.root, func(b *Branch) {
		for i := 0; i+1 < len(b.children); i++ {
			prev := b.children[i].Rect()
			var r Rect
			if b.orientation == Horizontal {
				r = Rect{X: prev.Right(), Y: b.rect.Y, Width: thickness, Height: b.rect.Height}
			} else {
				r = Rect{X: b.rect.X, Y: prev.Bottom(), Width: b.rect.Width, Height: thickness}
			}
			out = append(out, Sash{Branch: b, Index: i, Orientation: b.orientation, Rect: r})
		}
	})
	return out
}

// SashAt returns the sash under (x, y). Nested sashes win over their
// ancestors where they overlap.
func (g *Grid) SashAt(x, y int) (Sash, bool) {
	sashes := g.Sashes()
	for i := len(sashes) - 1; i >= 0; i-- {
		if sashes[i].Rect.Contains(x, y) {
			return sashes[i], true
		}
	}
	return Sash{}, false
}

// PointerKind is the kind of pointer event fed to HandlePointer.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerDoubleClick
)

// PointerEvent is a host pointer event in grid coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// dragState is either idle (active == false) or dragging one sash.
type dragState struct {
	active    bool
	branch    *Branch
	sashIndex int
	axis      Orientation
	last      int
}

// HandlePointer advances the sash drag state machine and reports whether
// the event was consumed.
func (g *Grid) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		s, ok := g.SashAt(ev.X, ev.Y)
		if !ok {
			return false
		}
		g.BeginDrag(s, axisPosition(s.Orientation, ev.X, ev.Y))
		return true
	case PointerMove:
		if !g.drag.active {
			return false
		}
		g.DragTo(axisPosition(g.drag.axis, ev.X, ev.Y))
		return true
	case PointerUp:
		if !g.drag.active {
			return false
		}
		g.EndDrag()
		return true
	case PointerDoubleClick:
		s, ok := g.SashAt(ev.X, ev.Y)
		if !ok {
			return false
		}
		g.drag = dragState{}
		g.emit(Event{Kind: EventSashReset, Branch: s.Branch, SashIndex: s.Index})
		return true
	}
	return false
}

func axisPosition(o Orientation, x, y int) int {
	if o == Horizontal {
		return x
	}
	return y
}

// BeginDrag starts a drag session on s at pointer position pos (measured
// along the sash's drag axis). A session already in progress is replaced.
func (g *Grid) BeginDrag(s Sash, pos int) {
	g.drag = dragState{
		active:    true,
		branch:    s.Branch,
		sashIndex: s.Index,
		axis:      s.Orientation,
		last:      pos,
	}
	g.logger.Debug("drag started", "sash", s.Index, "axis", s.Orientation.String(), "pos", pos)
}

// DragTo resizes the dragged sash by the movement since the previous
// position and returns the applied delta. Each increment is clamped on its
// own. Without an active session it does nothing.
func (g *Grid) DragTo(pos int) int {
	if !g.drag.active {
		return 0
	}
	delta := pos - g.drag.last
	g.drag.last = pos
	if delta == 0 {
		return 0
	}
	return g.ResizeSash(g.drag.branch, g.drag.sashIndex, delta)
}

// EndDrag ends the drag session, if any.
func (g *Grid) EndDrag() {
	if g.drag.active {
		g.logger.Debug("drag ended", "sash", g.drag.sashIndex)
	}
	g.drag = dragState{}
}

// Dragging returns the branch and sash index of the active drag session.
func (g *Grid) Dragging() (branch *Branch, sashIndex int, ok bool) {
	if !g.drag.active {
		return nil, 0, false
	}
	return g.drag.branch, g.drag.sashIndex, true
}

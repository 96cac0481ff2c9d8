package grid

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "devgrid/internal/grid"

// Grid is the layout controller. It owns the node tree, the id → leaf
// registry, the canvas size and the sash drag session.
type Grid struct {
	root          *Branch
	leaves        map[string]*Leaf
	width, height int
	sashThickness int

	surfaces SurfaceFactory
	logger   *slog.Logger
	tracer   trace.Tracer

	subs     []*subscription
	drag     dragState
	disposed bool
}

// Option configures a Grid.
type Option func(*Grid)

// WithSashThickness reserves n cells between adjacent siblings.
// The default is 0: sashes overlay the edge of the following sibling.
func WithSashThickness(n int) Option {
	return func(g *Grid) {
		if n >= 0 {
			g.sashThickness = n
		}
	}
}

// WithLogger sets the logger used for debug output. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTracer sets the tracer used to record a span per grid operation.
// Defaults to the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(g *Grid) {
		if t != nil {
			g.tracer = t
		}
	}
}

// WithSurfaceFactory attaches a platform surface to every node created.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(g *Grid) { g.surfaces = f }
}

// New creates an empty grid whose root branch lays children along o.
func New(o Orientation, width, height int, opts ...Option) *Grid {
	g := &Grid{
		leaves: make(map[string]*Leaf),
		width:  max(width, 0),
		height: max(height, 0),
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.root = g.newBranch(o, along(o, g.width, g.height))
	g.root.rect = Rect{Width: g.width, Height: g.height}
	return g
}

func (g *Grid) newLeaf(v View, size int) *Leaf {
	l := &Leaf{view: v}
	l.size = max(size, 0)
	if g.surfaces != nil {
		l.surface = g.surfaces(l)
	}
	return l
}

func (g *Grid) newBranch(o Orientation, size int) *Branch {
	b := &Branch{orientation: o}
	b.size = max(size, 0)
	if g.surfaces != nil {
		b.surface = g.surfaces(b)
	}
	return b
}

// startSpan opens a span for a grid operation. Grid calls are synchronous
// and carry no context of their own.
func (g *Grid) startSpan(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := g.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	return span
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Root returns the root branch. It may be empty.
func (g *Grid) Root() *Branch { return g.root }

// Width returns the canvas width.
func (g *Grid) Width() int { return g.width }

// Height returns the canvas height.
func (g *Grid) Height() int { return g.height }

// SashThickness returns the space reserved between siblings.
func (g *Grid) SashThickness() int { return g.sashThickness }

// ViewCount returns the number of registered views.
func (g *Grid) ViewCount() int { return len(g.leaves) }

// HasView reports whether id is registered.
func (g *Grid) HasView(id string) bool {
	_, ok := g.leaves[id]
	return ok
}

// Leaf returns the leaf registered under id.
func (g *Grid) Leaf(id string) (*Leaf, bool) {
	l, ok := g.leaves[id]
	return l, ok
}

// View returns the view registered under id.
func (g *Grid) View(id string) (View, bool) {
	l, ok := g.leaves[id]
	if !ok {
		return nil, false
	}
	return l.view, true
}

// ViewSize returns the view's size along its parent's orientation.
func (g *Grid) ViewSize(id string) (int, bool) {
	l, ok := g.leaves[id]
	if !ok {
		return 0, false
	}
	return l.size, true
}

// ViewRect returns the rectangle assigned to the view by the last layout.
func (g *Grid) ViewRect(id string) (Rect, bool) {
	l, ok := g.leaves[id]
	if !ok {
		return Rect{}, false
	}
	return l.rect, true
}

// ViewIDs returns every view id in placement order (left to right, top to
// bottom, depth first).
func (g *Grid) ViewIDs() []string {
	ids := make([]string, 0, len(g.leaves))
	walkLeaves(g.root, func(l *Leaf) { ids = append(ids, l.view.ID()) })
	return ids
}

// AddView appends view to the root branch with the requested size.
func (g *Grid) AddView(v View, size int) error {
	return g.AddViewAt(v, size, -1)
}

// AddViewAt inserts view as a child of the root at index. An index out of
// range appends.
func (g *Grid) AddViewAt(v View, size, index int) error {
	id := v.ID()
	span := g.startSpan("grid.AddView", attribute.String("view", id), attribute.Int("size", size))
	defer span.End()

	if g.disposed {
		return failSpan(span, fmt.Errorf("add view %q: %w", id, ErrDisposed))
	}
	if _, ok := g.leaves[id]; ok {
		return failSpan(span, fmt.Errorf("add view %q: %w", id, ErrDuplicateView))
	}
	if index < 0 || index > len(g.root.children) {
		index = len(g.root.children)
	}
	leaf := g.newLeaf(v, size)
	g.root.insert(index, leaf)
	g.leaves[id] = leaf
	v.SetVisible(true)

	g.logger.Debug("view added", "view", id, "size", leaf.size, "index", index)
	g.emit(Event{Kind: EventViewAdded, ViewID: id})
	return nil
}

// SplitView places view next to the existing view along o.
//
// When o matches the orientation of the existing view's parent, the new view
// becomes a sibling and its size is carved out of the existing view's size.
// Otherwise the existing view is wrapped together with the new view in a new
// branch of orientation o that takes over the existing view's slot.
func (g *Grid) SplitView(existingID string, v View, size int, o Orientation, insertBefore bool) error {
	id := v.ID()
	span := g.startSpan("grid.SplitView",
		attribute.String("existing", existingID),
		attribute.String("view", id),
		attribute.String("orientation", o.String()),
	)
	defer span.End()

	if g.disposed {
		return failSpan(span, fmt.Errorf("split view %q: %w", existingID, ErrDisposed))
	}
	existing, ok := g.leaves[existingID]
	if !ok {
		return failSpan(span, fmt.Errorf("split view %q: %w", existingID, ErrViewNotFound))
	}
	if _, dup := g.leaves[id]; dup {
		return failSpan(span, fmt.Errorf("split view %q: add %q: %w", existingID, id, ErrDuplicateView))
	}
	parent := existing.parent
	if parent == nil || parent.indexOf(existing) < 0 {
		return failSpan(span, fmt.Errorf("split view %q: %w", existingID, ErrOrphanedView))
	}
	idx := parent.indexOf(existing)
	leaf := g.newLeaf(v, size)

	if parent.orientation == o {
		current := existing.size
		minExisting := existing.MinAlong(o)
		minNew := leaf.MinAlong(o)
		clampedNew := min(size, current-minExisting)
		actualNew := max(clampedNew, minNew)
		actualExisting := max(current-actualNew, minExisting)
		existing.size = actualExisting
		leaf.size = actualNew
		if insertBefore {
			parent.insert(idx, leaf)
		} else {
			parent.insert(idx+1, leaf)
		}
	} else {
		prior := existing.size
		wrapper := g.newBranch(o, prior)
		wrapper.mode = existing.mode
		wrapper.rect = existing.rect
		parent.replace(existing, wrapper)
		half := prior / 2
		existing.size = half
		existing.mode = Proportional
		leaf.size = prior - half
		if insertBefore {
			wrapper.insert(0, leaf)
			wrapper.insert(1, existing)
		} else {
			wrapper.insert(0, existing)
			wrapper.insert(1, leaf)
		}
	}
	g.leaves[id] = leaf
	v.SetVisible(true)

	g.logger.Debug("view split", "existing", existingID, "view", id,
		"orientation", o.String(), "size", leaf.size, "before", insertBefore)
	g.emit(Event{Kind: EventViewSplit, ViewID: id})
	return nil
}

// RemoveView detaches and disposes the view. A non-root branch left with a
// single child is collapsed into its parent. Unknown ids return (nil, false).
func (g *Grid) RemoveView(id string) (View, bool) {
	span := g.startSpan("grid.RemoveView", attribute.String("view", id))
	defer span.End()

	leaf, ok := g.leaves[id]
	if !ok {
		span.SetAttributes(attribute.Bool("found", false))
		return nil, false
	}
	delete(g.leaves, id)
	if g.drag.active && g.drag.branch != nil && leaf.parent == g.drag.branch {
		g.drag = dragState{}
	}
	if parent := leaf.parent; parent != nil {
		if i := parent.indexOf(leaf); i >= 0 {
			parent.removeAt(i)
		}
		if parent != g.root && len(parent.children) == 1 {
			g.collapse(parent)
		}
	}
	leaf.dispose()

	g.logger.Debug("view removed", "view", id)
	g.emit(Event{Kind: EventViewRemoved, ViewID: id})
	return leaf.view, true
}

// collapse splices b's only child into b's parent at b's index.
func (g *Grid) collapse(b *Branch) {
	gp := b.parent
	if gp == nil || len(b.children) != 1 {
		return
	}
	survivor := b.removeAt(0)
	sb := survivor.base()
	if l, ok := survivor.(*Leaf); ok && l.hidden {
		l.restoreSize = b.size
	} else {
		sb.size = b.size
	}
	sb.mode = b.mode
	gp.replace(b, survivor)
	if g.drag.branch == b {
		g.drag = dragState{}
	}
	b.release()
	g.logger.Debug("branch collapsed", "orientation", b.orientation.String())
}

// SetViewVisible hides or shows a view. A hidden view keeps its slot in the
// tree but is laid out at zero size; showing it restores its previous size.
func (g *Grid) SetViewVisible(id string, visible bool) error {
	leaf, ok := g.leaves[id]
	if !ok {
		return fmt.Errorf("set visible %q: %w", id, ErrViewNotFound)
	}
	if leaf.hidden == !visible {
		return nil
	}
	if visible {
		leaf.hidden = false
		leaf.size = leaf.restoreSize
		leaf.restoreSize = 0
	} else {
		leaf.restoreSize = leaf.size
		leaf.hidden = true
		leaf.size = 0
	}
	leaf.view.SetVisible(visible)
	g.emit(Event{Kind: EventVisibilityChanged, ViewID: id})
	return nil
}

// SetViewSizingMode switches a view between proportional and pixel sizing.
// The change takes effect at the next layout pass.
func (g *Grid) SetViewSizingMode(id string, mode SizingMode) error {
	leaf, ok := g.leaves[id]
	if !ok {
		return fmt.Errorf("set sizing mode %q: %w", id, ErrViewNotFound)
	}
	leaf.mode = mode
	return nil
}

// Dispose disposes every view exactly once. Further calls are no-ops.
func (g *Grid) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.drag = dragState{}
	walkLeaves(g.root, func(l *Leaf) { l.dispose() })
	// Anything still registered but detached is disposed too.
	for _, l := range g.leaves {
		l.dispose()
	}
	walkBranches(g.root, func(b *Branch) { b.release() })
	g.leaves = make(map[string]*Leaf)
	g.root.children = nil
	g.subs = nil
	g.logger.Debug("grid disposed")
}

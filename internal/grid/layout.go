package grid

import (
	"math"

	"go.opentelemetry.io/otel/attribute"
)

// Layout distributes the whole canvas from the root down and calls Layout
// on every visible view.
func (g *Grid) Layout() {
	span := g.startSpan("grid.Layout", attribute.Int("width", g.width), attribute.Int("height", g.height))
	defer span.End()

	g.layoutRoot()
	g.emit(Event{Kind: EventLayout})
}

// Resize changes the canvas size. Proportional sizes are rescaled by the
// ratio of new to old extent along each branch's orientation before the
// layout pass, so relative proportions survive container resizes.
func (g *Grid) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	span := g.startSpan("grid.Resize", attribute.Int("width", width), attribute.Int("height", height))
	defer span.End()

	g.rescale(g.root, g.width, g.height, width, height)
	g.width, g.height = width, height
	g.layoutRoot()

	g.logger.Debug("grid resized", "width", width, "height", height)
	g.emit(Event{Kind: EventLayout})
}

func (g *Grid) rescale(b *Branch, oldW, oldH, newW, newH int) {
	o := b.orientation
	oldAlong := along(o, oldW, oldH)
	newAlong := along(o, newW, newH)
	for _, c := range b.children {
		cb := c.base()
		if oldAlong > 0 && cb.mode == Proportional {
			scaled := int(math.Round(float64(cb.size) * float64(newAlong) / float64(oldAlong)))
			cb.size = clamp(scaled, c.MinAlong(o), c.MaxAlong(o))
		}
		if child, ok := c.(*Branch); ok {
			g.rescale(child, oldW, oldH, newW, newH)
		}
	}
}

func (g *Grid) layoutRoot() {
	g.root.size = along(g.root.orientation, g.width, g.height)
	g.layoutNode(g.root, Rect{Width: g.width, Height: g.height})
}

func (g *Grid) layoutNode(n Node, r Rect) {
	switch n := n.(type) {
	case *Leaf:
		n.place(r)
		if !n.hidden {
			o := Horizontal
			if n.parent != nil {
				o = n.parent.orientation
			}
			n.view.Layout(r.Width, r.Height, o)
		}
	case *Branch:
		n.place(r)
		if len(n.children) == 0 {
			return
		}
		available := max(r.Along(n.orientation)-g.sashThickness*(len(n.children)-1), 0)
		g.distributeSizes(n, available)
		g.placeChildren(n)
	}
}

// placeChildren positions b's children inside b's rectangle using their
// current sizes and lays each one out.
func (g *Grid) placeChildren(b *Branch) {
	r := b.rect
	offset := 0
	for i, c := range b.children {
		if i > 0 {
			offset += g.sashThickness
		}
		size := c.Size()
		var cr Rect
		if b.orientation == Horizontal {
			cr = Rect{X: r.X + offset, Y: r.Y, Width: size, Height: r.Height}
		} else {
			cr = Rect{X: r.X, Y: r.Y + offset, Width: r.Width, Height: size}
		}
		g.layoutNode(c, cr)
		offset += size
	}
}

// distributeSizes fits b's children into available along b's orientation.
//
// When the children's total already equals available nothing changes.
// Otherwise every child but the last is scaled and clamped to its own
// [min, max]; the last child takes the remainder, clamped to its range.
// The last child alone absorbs the residue, so when several siblings clamp
// at once the remainder may itself be clamped and the total drift from
// available.
//
// Pixel-mode children keep their (clamped) size and the scale applies to the
// proportional children only; if there are none, every child scales. A zero
// total splits available evenly.
func (g *Grid) distributeSizes(b *Branch, available int) {
	n := len(b.children)
	if n == 0 {
		return
	}
	o := b.orientation
	oldTotal, fixed, flexible := 0, 0, 0
	for _, c := range b.children {
		s := c.Size()
		oldTotal += s
		if c.SizingMode() == Pixel {
			fixed += s
		} else {
			flexible += s
		}
	}
	if oldTotal == available {
		return
	}

	scaleAll := flexible == 0
	var scale float64
	switch {
	case oldTotal == 0:
	case scaleAll:
		scale = float64(available) / float64(oldTotal)
	default:
		scale = float64(max(available-fixed, 0)) / float64(flexible)
	}

	sum := 0
	for _, c := range b.children[:n-1] {
		var target float64
		switch {
		case oldTotal == 0:
			target = float64(available / n)
		case c.SizingMode() == Pixel && !scaleAll:
			target = float64(c.Size())
		default:
			target = float64(c.Size()) * scale
		}
		s := int(math.Round(target))
		s = clamp(s, c.MinAlong(o), c.MaxAlong(o))
		c.base().size = s
		sum += s
	}
	last := b.children[n-1]
	last.base().size = clamp(available-sum, last.MinAlong(o), last.MaxAlong(o))
}

// ResizeSash moves the boundary after child sashIndex of b by delta and
// returns the amount actually applied. The movement is limited so both
// neighbours stay inside their constraints; their combined size never
// changes. Only b's subtree is laid out again.
func (g *Grid) ResizeSash(b *Branch, sashIndex, delta int) int {
	span := g.startSpan("grid.ResizeSash", attribute.Int("sash", sashIndex), attribute.Int("delta", delta))
	defer span.End()

	if b == nil || sashIndex < 0 || sashIndex+1 >= len(b.children) {
		span.SetAttributes(attribute.Int("applied", 0))
		return 0
	}
	first, second := b.children[sashIndex], b.children[sashIndex+1]
	o := b.orientation
	s1, s2 := first.Size(), second.Size()

	applied := 0
	switch {
	case delta > 0:
		room := min(first.MaxAlong(o)-s1, s2-second.MinAlong(o))
		applied = min(delta, max(room, 0))
	case delta < 0:
		room := max(first.MinAlong(o)-s1, s2-second.MaxAlong(o))
		applied = max(delta, min(room, 0))
	}
	span.SetAttributes(attribute.Int("applied", applied))
	if applied == 0 {
		return 0
	}

	first.base().size = s1 + applied
	second.base().size = s2 - applied
	g.placeChildren(b)

	g.logger.Debug("sash resized", "orientation", o.String(), "sash", sashIndex,
		"requested", delta, "applied", applied)
	g.emit(Event{Kind: EventSashResized, Branch: b, SashIndex: sashIndex, Delta: applied})
	return applied
}

// DistributeEvenly gives every child of b the same share of b's extent and
// lays b out again. Constraints still apply.
func (g *Grid) DistributeEvenly(b *Branch) {
	if b == nil || len(b.children) == 0 {
		return
	}
	span := g.startSpan("grid.DistributeEvenly", attribute.Int("children", len(b.children)))
	defer span.End()

	for _, c := range b.children {
		c.base().size = 0
	}
	g.layoutNode(b, b.rect)
	g.emit(Event{Kind: EventLayout})
}

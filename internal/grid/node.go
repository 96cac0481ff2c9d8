package grid

// Node is a position in the grid tree: either a *Leaf or a *Branch.
type Node interface {
	// Size is the node's extent along its parent's orientation.
	Size() int
	SizingMode() SizingMode
	// Rect is the rectangle assigned by the last layout pass.
	Rect() Rect
	// Parent returns the enclosing branch, or nil for the root.
	Parent() *Branch
	// MinAlong and MaxAlong aggregate constraints along o.
	MinAlong(o Orientation) int
	MaxAlong(o Orientation) int

	base() *nodeBase
}

type nodeBase struct {
	size    int
	mode    SizingMode
	rect    Rect
	parent  *Branch
	surface Surface
}

func (n *nodeBase) Size() int              { return n.size }
func (n *nodeBase) SizingMode() SizingMode { return n.mode }
func (n *nodeBase) Rect() Rect             { return n.rect }
func (n *nodeBase) Parent() *Branch        { return n.parent }
func (n *nodeBase) base() *nodeBase        { return n }

func (n *nodeBase) place(r Rect) {
	n.rect = r
	if n.surface != nil {
		n.surface.Place(r)
	}
}

func (n *nodeBase) release() {
	if n.surface != nil {
		n.surface.Release()
		n.surface = nil
	}
}

// Leaf wraps exactly one View.
type Leaf struct {
	nodeBase
	view        View
	hidden      bool
	restoreSize int
	disposed    bool
}

// View returns the wrapped view.
func (l *Leaf) View() View { return l.view }

// Hidden reports whether the leaf has been hidden with SetViewVisible.
func (l *Leaf) Hidden() bool { return l.hidden }

// MinAlong implements Node. Hidden leaves collapse to zero.
func (l *Leaf) MinAlong(o Orientation) int {
	if l.hidden {
		return 0
	}
	return l.view.Constraints().Min(o)
}

// MaxAlong implements Node.
func (l *Leaf) MaxAlong(o Orientation) int {
	if l.hidden {
		return 0
	}
	return l.view.Constraints().Max(o)
}

// dispose releases the view exactly once.
func (l *Leaf) dispose() {
	if l.disposed {
		return
	}
	l.disposed = true
	l.release()
	l.view.Dispose()
}

// Branch arranges an ordered list of children along one orientation.
type Branch struct {
	nodeBase
	orientation Orientation
	children    []Node
}

// Orientation returns the axis the branch lays its children along.
func (b *Branch) Orientation() Orientation { return b.orientation }

// Len returns the number of children.
func (b *Branch) Len() int { return len(b.children) }

// Child returns the i-th child, or nil when i is out of range.
func (b *Branch) Child(i int) Node {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

// Children returns a copy of the child list.
func (b *Branch) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// MinAlong sums children minima along the branch's own orientation and takes
// the largest child minimum across it.
func (b *Branch) MinAlong(o Orientation) int {
	total := 0
	for _, c := range b.children {
		m := c.MinAlong(o)
		if o == b.orientation {
			total = addExtent(total, m)
		} else if m > total {
			total = m
		}
	}
	return total
}

// MaxAlong sums children maxima along the branch's own orientation (Unbounded
// if any child is) and takes the smallest maximum of the visible children
// across it.
func (b *Branch) MaxAlong(o Orientation) int {
	if len(b.children) == 0 {
		return Unbounded
	}
	if o == b.orientation {
		total := 0
		for _, c := range b.children {
			total = addExtent(total, c.MaxAlong(o))
		}
		return total
	}
	least, shown := Unbounded, false
	for _, c := range b.children {
		if collapsed(c) {
			continue
		}
		shown = true
		if m := c.MaxAlong(o); m < least {
			least = m
		}
	}
	if !shown {
		return 0
	}
	return least
}

// collapsed reports whether n takes no space: a hidden leaf, or a branch
// whose children are all collapsed. Collapsed children do not cap their
// siblings across the branch axis.
func collapsed(n Node) bool {
	switch n := n.(type) {
	case *Leaf:
		return n.hidden
	case *Branch:
		if len(n.children) == 0 {
			return false
		}
		for _, c := range n.children {
			if !collapsed(c) {
				return false
			}
		}
		return true
	}
	return false
}

func (b *Branch) indexOf(n Node) int {
	for i, c := range b.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (b *Branch) insert(i int, n Node) {
	b.children = append(b.children, nil)
	copy(b.children[i+1:], b.children[i:])
	b.children[i] = n
	n.base().parent = b
}

func (b *Branch) removeAt(i int) Node {
	n := b.children[i]
	b.children = append(b.children[:i], b.children[i+1:]...)
	n.base().parent = nil
	return n
}

// replace swaps old for n in place, keeping its index.
func (b *Branch) replace(old, n Node) bool {
	i := b.indexOf(old)
	if i < 0 {
		return false
	}
	b.children[i] = n
	n.base().parent = b
	old.base().parent = nil
	return true
}

// walkLeaves visits every leaf under n in placement order.
func walkLeaves(n Node, fn func(*Leaf)) {
	switch n := n.(type) {
	case *Leaf:
		fn(n)
	case *Branch:
		for _, c := range n.children {
			walkLeaves(c, fn)
		}
	}
}

// walkBranches visits n and every branch below it, parents first.
func walkBranches(n Node, fn func(*Branch)) {
	b, ok := n.(*Branch)
	if !ok {
		return
	}
	fn(b)
	for _, c := range b.children {
		walkBranches(c, fn)
	}
}

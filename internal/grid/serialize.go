package grid

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// NodeType tags a serialized node.
type NodeType string

const (
	NodeLeaf   NodeType = "leaf"
	NodeBranch NodeType = "branch"
)

// State is the serialized form of a grid.
type State struct {
	Root        NodeState   `json:"root"`
	Orientation Orientation `json:"orientation"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
}

// NodeState is one serialized node. Leaves carry ViewID; branches carry
// Orientation and Children.
type NodeState struct {
	Type        NodeType     `json:"type"`
	ViewID      string       `json:"viewId,omitempty"`
	Orientation *Orientation `json:"orientation,omitempty"`
	Size        int          `json:"size"`
	SizingMode  SizingMode   `json:"sizingMode"`
	Hidden      bool         `json:"hidden,omitempty"`
	Children    []NodeState  `json:"children,omitempty"`
}

// ViewFactory resolves a serialized view id to a live view.
type ViewFactory func(id string) (View, error)

// Serialize captures the tree shape, node sizes and view ids.
func (g *Grid) Serialize() State {
	return State{
		Root:        serializeNode(g.root),
		Orientation: g.root.orientation,
		Width:       g.width,
		Height:      g.height,
	}
}

func serializeNode(n Node) NodeState {
	switch n := n.(type) {
	case *Leaf:
		size := n.size
		if n.hidden {
			size = n.restoreSize
		}
		return NodeState{
			Type:       NodeLeaf,
			ViewID:     n.view.ID(),
			Size:       size,
			SizingMode: n.mode,
			Hidden:     n.hidden,
		}
	case *Branch:
		o := n.orientation
		s := NodeState{
			Type:        NodeBranch,
			Orientation: &o,
			Size:        n.size,
			SizingMode:  n.mode,
		}
		for _, c := range n.children {
			s.Children = append(s.Children, serializeNode(c))
		}
		return s
	}
	return NodeState{}
}

// Deserialize rebuilds a grid from state, resolving each view id through
// factory, and runs one full layout pass. Views created before a failure
// are disposed.
func Deserialize(state State, factory ViewFactory, opts ...Option) (*Grid, error) {
	if state.Root.Type != NodeBranch {
		return nil, fmt.Errorf("deserialize: root is %q, want %q: %w", state.Root.Type, NodeBranch, ErrInvalidState)
	}
	if o := state.Root.Orientation; o != nil && *o != state.Orientation {
		return nil, fmt.Errorf("deserialize: root orientation %s does not match %s: %w",
			*o, state.Orientation, ErrInvalidState)
	}
	g := New(state.Orientation, state.Width, state.Height, opts...)
	span := g.startSpan("grid.Deserialize", attribute.Int("width", state.Width), attribute.Int("height", state.Height))
	defer span.End()

	g.root.mode = state.Root.SizingMode
	for i, child := range state.Root.Children {
		if err := g.build(child, g.root, factory); err != nil {
			g.Dispose()
			return nil, failSpan(span, fmt.Errorf("deserialize: root child %d: %w", i, err))
		}
	}
	g.layoutRoot()
	g.logger.Debug("grid deserialized", "views", len(g.leaves))
	return g, nil
}

// build appends the node described by s to parent.
func (g *Grid) build(s NodeState, parent *Branch, factory ViewFactory) error {
	switch s.Type {
	case NodeLeaf:
		if s.ViewID == "" {
			return fmt.Errorf("leaf without view id: %w", ErrInvalidState)
		}
		if _, dup := g.leaves[s.ViewID]; dup {
			return fmt.Errorf("view %q: %w", s.ViewID, ErrDuplicateView)
		}
		v, err := factory(s.ViewID)
		if err != nil {
			return fmt.Errorf("view %q: %w", s.ViewID, err)
		}
		if v == nil || v.ID() != s.ViewID {
			if v != nil {
				v.Dispose()
			}
			return fmt.Errorf("view %q: factory returned a different view: %w", s.ViewID, ErrInvalidState)
		}
		leaf := g.newLeaf(v, s.Size)
		leaf.mode = s.SizingMode
		if s.Hidden {
			leaf.hidden = true
			leaf.restoreSize = leaf.size
			leaf.size = 0
		}
		parent.insert(len(parent.children), leaf)
		g.leaves[s.ViewID] = leaf
		v.SetVisible(!s.Hidden)
		return nil

	case NodeBranch:
		if s.Orientation == nil {
			return fmt.Errorf("branch without orientation: %w", ErrInvalidState)
		}
		switch len(s.Children) {
		case 0:
			return nil
		case 1:
			// A lone child takes the branch's place.
			only := s.Children[0]
			only.Size = s.Size
			only.SizingMode = s.SizingMode
			return g.build(only, parent, factory)
		}
		b := g.newBranch(*s.Orientation, s.Size)
		b.mode = s.SizingMode
		parent.insert(len(parent.children), b)
		for i, child := range s.Children {
			if err := g.build(child, b, factory); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
		// Empty nested branches are dropped, which can leave b degenerate.
		switch len(b.children) {
		case 0:
			parent.removeAt(parent.indexOf(b))
			b.release()
		case 1:
			g.collapse(b)
		}
		return nil
	}
	return fmt.Errorf("unknown node type %q: %w", s.Type, ErrInvalidState)
}

package grid

// View is the capability a pane must provide to live in a Grid.
type View interface {
	// ID must be unique within a Grid.
	ID() string
	// Constraints is read on every layout pass, so a view may change its
	// constraints at runtime and request a re-layout from its owner.
	Constraints() Constraints
	// Layout is called whenever the view's allotted rectangle changes.
	// o is the orientation of the branch holding the view.
	Layout(width, height int, o Orientation)
	SetVisible(visible bool)
	Dispose()
	// Descriptor returns an opaque description of the view's content.
	// The grid never persists it; only the view id is serialized.
	Descriptor() any
}

// Surface is the platform handle a node positions after each layout pass.
// The grid treats it as opaque.
type Surface interface {
	Place(r Rect)
	Release()
}

// SurfaceFactory creates the surface for a newly created node.
type SurfaceFactory func(n Node) Surface

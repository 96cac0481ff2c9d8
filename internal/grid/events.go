package grid

// EventKind identifies a grid change notification.
type EventKind int

const (
	EventViewAdded EventKind = iota + 1
	EventViewSplit
	EventViewRemoved
	EventVisibilityChanged
	// EventLayout follows every full layout pass.
	EventLayout
	EventSashResized
	// EventSashReset is a double-click on a sash. The grid changes nothing;
	// what "reset" means is up to the listener.
	EventSashReset
)

func (k EventKind) String() string {
	switch k {
	case EventViewAdded:
		return "view_added"
	case EventViewSplit:
		return "view_split"
	case EventViewRemoved:
		return "view_removed"
	case EventVisibilityChanged:
		return "visibility_changed"
	case EventLayout:
		return "layout"
	case EventSashResized:
		return "sash_resized"
	case EventSashReset:
		return "sash_reset"
	default:
		return "unknown"
	}
}

// Event describes a change that has already been applied to the tree.
type Event struct {
	Kind EventKind
	// ViewID is set for view events.
	ViewID string
	// Branch and SashIndex are set for sash events.
	Branch    *Branch
	SashIndex int
	// Delta is the applied (not requested) sash movement.
	Delta int
}

// Listener receives grid events synchronously.
type Listener func(Event)

type subscription struct {
	fn     Listener
	active bool
}

// Subscribe registers fn for all future events and returns a function that
// removes it. Listeners run in registration order.
func (g *Grid) Subscribe(fn Listener) (unsubscribe func()) {
	s := &subscription{fn: fn, active: true}
	g.subs = append(g.subs, s)
	return func() {
		s.active = false
		for i, other := range g.subs {
			if other == s {
				g.subs = append(g.subs[:i], g.subs[i+1:]...)
				return
			}
		}
	}
}

func (g *Grid) emit(e Event) {
	// Snapshot so listeners can (un)subscribe while being notified.
	subs := append([]*subscription(nil), g.subs...)
	for _, s := range subs {
		if s.active {
			s.fn(e)
		}
	}
}

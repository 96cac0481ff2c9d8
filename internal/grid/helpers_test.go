package grid

import "fmt"

// fakeView records every call the grid makes on it.
type fakeView struct {
	id          string
	constraints Constraints
	width       int
	height      int
	orientation Orientation
	layouts     int
	visible     bool
	disposed    int
}

func newView(id string) *fakeView {
	return &fakeView{id: id}
}

func newConstrainedView(id string, c Constraints) *fakeView {
	return &fakeView{id: id, constraints: c}
}

func (v *fakeView) ID() string               { return v.id }
func (v *fakeView) Constraints() Constraints { return v.constraints }
func (v *fakeView) SetVisible(visible bool)  { v.visible = visible }
func (v *fakeView) Dispose()                 { v.disposed++ }
func (v *fakeView) Descriptor() any          { return map[string]string{"id": v.id} }

func (v *fakeView) Layout(width, height int, o Orientation) {
	v.width, v.height, v.orientation = width, height, o
	v.layouts++
}

// viewFactory hands out views from a fixed set and records what it built.
type viewFactory struct {
	views map[string]*fakeView
}

func (f *viewFactory) build(id string) (View, error) {
	if f.views == nil {
		f.views = make(map[string]*fakeView)
	}
	if id == "broken" {
		return nil, fmt.Errorf("cannot build %s", id)
	}
	v := newView(id)
	f.views[id] = v
	return v, nil
}

// sizes returns the sizes of b's children in order.
func sizes(b *Branch) []int {
	out := make([]int, 0, b.Len())
	for _, c := range b.Children() {
		out = append(out, c.Size())
	}
	return out
}

func mustSize(g *Grid, id string) int {
	s, ok := g.ViewSize(id)
	if !ok {
		panic("no view " + id)
	}
	return s
}

// recordingSurface captures placements for WithSurfaceFactory tests.
type recordingSurface struct {
	placed   []Rect
	released int
}

func (s *recordingSurface) Place(r Rect) { s.placed = append(s.placed, r) }
func (s *recordingSurface) Release()     { s.released++ }

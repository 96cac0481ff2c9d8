package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraints_ZeroValueIsUnbounded(t *testing.T) {
	var c Constraints
	assert.Equal(t, 0, c.Min(Horizontal))
	assert.Equal(t, 0, c.Min(Vertical))
	assert.Equal(t, Unbounded, c.Max(Horizontal))
	assert.Equal(t, Unbounded, c.Max(Vertical))
}

func TestConstraints_PerAxis(t *testing.T) {
	c := Constraints{MinWidth: 10, MaxWidth: 80, MinHeight: 3, MaxHeight: 40}
	assert.Equal(t, 10, c.Min(Horizontal))
	assert.Equal(t, 80, c.Max(Horizontal))
	assert.Equal(t, 3, c.Min(Vertical))
	assert.Equal(t, 40, c.Max(Vertical))
}

func TestAddExtent_Saturates(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{1, 2, 3},
		{Unbounded, 5, Unbounded},
		{5, Unbounded, Unbounded},
		{Unbounded - 1, 10, Unbounded},
	}
	for _, tt := range tests {
		if got := addExtent(tt.a, tt.b); got != tt.want {
			t.Errorf("addExtent(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClamp_MinimumWinsOverMaximum(t *testing.T) {
	assert.Equal(t, 5, clamp(1, 5, 10))
	assert.Equal(t, 10, clamp(20, 5, 10))
	assert.Equal(t, 7, clamp(7, 5, 10))
	assert.Equal(t, 8, clamp(3, 8, 4))
}

func TestBranch_ConstraintAggregation(t *testing.T) {
	g := New(Horizontal, 1000, 500)
	a := newConstrainedView("a", Constraints{MinWidth: 100, MaxWidth: 300, MinHeight: 20, MaxHeight: 200})
	b := newConstrainedView("b", Constraints{MinWidth: 50, MaxWidth: 400, MinHeight: 40, MaxHeight: 100})
	assert.NoError(t, g.AddView(a, 500))
	assert.NoError(t, g.AddView(b, 500))

	root := g.Root()
	// Along the branch orientation: sums.
	assert.Equal(t, 150, root.MinAlong(Horizontal))
	assert.Equal(t, 700, root.MaxAlong(Horizontal))
	// Across: max of minima, min of maxima.
	assert.Equal(t, 40, root.MinAlong(Vertical))
	assert.Equal(t, 100, root.MaxAlong(Vertical))
}

func TestBranch_UnboundedChildPropagates(t *testing.T) {
	g := New(Horizontal, 1000, 500)
	assert.NoError(t, g.AddView(newConstrainedView("a", Constraints{MaxWidth: 300}), 500))
	assert.NoError(t, g.AddView(newView("b"), 500))

	assert.Equal(t, Unbounded, g.Root().MaxAlong(Horizontal))
	assert.Equal(t, Unbounded, g.Root().MaxAlong(Vertical))
}

func TestBranch_EmptyAggregates(t *testing.T) {
	g := New(Vertical, 10, 10)
	assert.Equal(t, 0, g.Root().MinAlong(Vertical))
	assert.Equal(t, Unbounded, g.Root().MaxAlong(Vertical))
}

func TestLeaf_HiddenHasZeroRange(t *testing.T) {
	g := New(Horizontal, 100, 10)
	assert.NoError(t, g.AddView(newConstrainedView("a", Constraints{MinWidth: 30}), 100))
	assert.NoError(t, g.SetViewVisible("a", false))

	l, _ := g.Leaf("a")
	assert.Equal(t, 0, l.MinAlong(Horizontal))
	assert.Equal(t, 0, l.MaxAlong(Horizontal))
}

func TestOrientation_TextRoundTrip(t *testing.T) {
	for _, o := range []Orientation{Horizontal, Vertical} {
		b, err := o.MarshalText()
		assert.NoError(t, err)
		var got Orientation
		assert.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, o, got)
	}
	var o Orientation
	assert.Error(t, o.UnmarshalText([]byte("diagonal")))
	assert.Equal(t, Vertical, Horizontal.Orthogonal())
	assert.Equal(t, Horizontal, Vertical.Orthogonal())
}

func TestParseOrientation_ShortForms(t *testing.T) {
	o, err := ParseOrientation("v")
	assert.NoError(t, err)
	assert.Equal(t, Vertical, o)
	o, err = ParseOrientation("h")
	assert.NoError(t, err)
	assert.Equal(t, Horizontal, o)
}

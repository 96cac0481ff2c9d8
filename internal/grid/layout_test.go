package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoViews(t *testing.T, width int, a, b *fakeView, sizeA, sizeB int) *Grid {
	t.Helper()
	g := New(Horizontal, width, 400)
	require.NoError(t, g.AddView(a, sizeA))
	require.NoError(t, g.AddView(b, sizeB))
	g.Layout()
	return g
}

func TestResize_PreservesProportions(t *testing.T) {
	g := twoViews(t, 1000, newView("a"), newView("b"), 600, 400)
	require.Equal(t, []int{600, 400}, sizes(g.Root()))

	g.Resize(500, 400)
	a, b := mustSize(g, "a"), mustSize(g, "b")
	assert.Equal(t, 500, a+b)
	assert.Equal(t, 300, a)
	assert.Equal(t, 200, b)
}

func TestResize_RatioWithinRounding(t *testing.T) {
	for _, w := range []int{333, 777, 1001, 17, 5, 2500} {
		g := twoViews(t, 1000, newView("a"), newView("b"), 600, 400)
		g.Resize(w, 400)
		a, b := mustSize(g, "a"), mustSize(g, "b")
		assert.Equal(t, w, a+b, "width %d", w)
		assert.InDelta(t, 0.6*float64(w), float64(a), 1.5, "width %d", w)
	}
}

func TestResize_HonoursMinima(t *testing.T) {
	a := newConstrainedView("a", Constraints{MinWidth: 300})
	b := newConstrainedView("b", Constraints{MinWidth: 200})
	g := twoViews(t, 1000, a, b, 600, 400)

	g.Resize(510, 400)
	sa, sb := mustSize(g, "a"), mustSize(g, "b")
	assert.GreaterOrEqual(t, sa, 300)
	assert.GreaterOrEqual(t, sb, 200)
	assert.Equal(t, 510, sa+sb)
	assert.Equal(t, sa, a.width)
	assert.Equal(t, sb, b.width)
}

func TestResize_HonoursMaxima(t *testing.T) {
	a := newConstrainedView("a", Constraints{MaxWidth: 400})
	b := newConstrainedView("b", Constraints{MaxWidth: 400})
	g := twoViews(t, 800, a, b, 400, 400)

	g.Resize(1200, 400)
	assert.LessOrEqual(t, mustSize(g, "a"), 400)
	assert.LessOrEqual(t, mustSize(g, "b"), 400)
	assert.LessOrEqual(t, a.width, 400)
	assert.LessOrEqual(t, b.width, 400)
}

func TestResize_BelowCombinedMinimaDegrades(t *testing.T) {
	a := newConstrainedView("a", Constraints{MinWidth: 300})
	b := newConstrainedView("b", Constraints{MinWidth: 200})
	g := twoViews(t, 1000, a, b, 600, 400)

	g.Resize(450, 400)
	assert.GreaterOrEqual(t, mustSize(g, "a"), 300)
	assert.GreaterOrEqual(t, mustSize(g, "b"), 200)
}

func TestResize_ZeroContainer(t *testing.T) {
	g := twoViews(t, 1000, newView("a"), newView("b"), 600, 400)

	g.Resize(0, 0)
	assert.Equal(t, []int{0, 0}, sizes(g.Root()))

	// Growing from zero has no ratio to keep, so the space is split evenly.
	g.Resize(800, 400)
	assert.Equal(t, []int{400, 400}, sizes(g.Root()))
}

func TestResize_NestedBranchesScaleOnTheirOwnAxis(t *testing.T) {
	g := New(Horizontal, 1000, 600)
	require.NoError(t, g.AddView(newView("left"), 500))
	require.NoError(t, g.AddView(newView("top"), 500))
	require.NoError(t, g.SplitView("top", newView("bottom"), 0, Vertical, false))
	g.Layout()
	wrapper := g.Root().Child(1).(*Branch)
	g.ResizeSash(wrapper, 0, -100)
	require.Equal(t, []int{200, 400}, sizes(wrapper))

	g.Resize(1000, 300)
	assert.Equal(t, []int{500, 500}, sizes(g.Root()), "width unchanged")
	assert.Equal(t, []int{100, 200}, sizes(wrapper), "heights halved")
}

func TestLayout_HiddenLeafDoesNotCapCrossAxis(t *testing.T) {
	g := New(Horizontal, 100, 50)
	b := newView("b")
	require.NoError(t, g.AddView(newView("a"), 50))
	require.NoError(t, g.AddView(b, 50))
	require.NoError(t, g.SplitView("b", newView("c"), 25, Vertical, false))
	require.NoError(t, g.SetViewVisible("c", false))
	g.Layout()

	wrapper := g.Root().Child(1).(*Branch)
	assert.Equal(t, Unbounded, wrapper.MaxAlong(Horizontal))
	assert.Equal(t, 0, wrapper.MinAlong(Horizontal))

	g.Resize(200, 50)
	assert.Equal(t, []int{100, 100}, sizes(g.Root()))
	assert.Equal(t, 100, b.width)
	assert.Equal(t, 50, b.height)

	require.NoError(t, g.SetViewVisible("b", false))
	assert.Equal(t, 0, wrapper.MaxAlong(Horizontal), "a fully hidden branch takes no space")
}

func TestLayout_PixelChildrenKeepTheirSize(t *testing.T) {
	g := New(Horizontal, 1000, 400)
	require.NoError(t, g.AddView(newView("fixed"), 200))
	require.NoError(t, g.AddView(newView("b"), 300))
	require.NoError(t, g.AddView(newView("c"), 500))
	leaf, _ := g.Leaf("fixed")
	leaf.mode = Pixel
	g.Layout()

	g.Resize(2000, 400)
	assert.Equal(t, []int{200, 675, 1125}, sizes(g.Root()))
}

func TestLayout_ZeroSizesSplitEvenly(t *testing.T) {
	g := New(Vertical, 100, 900)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddView(newView(id), 0))
	}
	g.Layout()
	assert.Equal(t, []int{300, 300, 300}, sizes(g.Root()))

	r, _ := g.ViewRect("c")
	assert.Equal(t, Rect{X: 0, Y: 600, Width: 100, Height: 300}, r)
}

func TestLayout_MatchingTotalIsUnchanged(t *testing.T) {
	g := New(Horizontal, 1000, 400)
	require.NoError(t, g.AddView(newView("a"), 123))
	require.NoError(t, g.AddView(newView("b"), 877))
	g.Layout()
	assert.Equal(t, []int{123, 877}, sizes(g.Root()))
}

func TestLayout_SashThicknessIsReserved(t *testing.T) {
	g := New(Horizontal, 101, 10, WithSashThickness(1))
	require.NoError(t, g.AddView(newView("a"), 50))
	require.NoError(t, g.AddView(newView("b"), 50))
	g.Layout()

	ra, _ := g.ViewRect("a")
	rb, _ := g.ViewRect("b")
	assert.Equal(t, Rect{X: 0, Width: 50, Height: 10}, ra)
	assert.Equal(t, Rect{X: 51, Width: 50, Height: 10}, rb)
	assert.Equal(t, 1, g.SashThickness())
}

func TestLayout_SumInvariantAcrossTree(t *testing.T) {
	g := New(Horizontal, 997, 613, WithSashThickness(1))
	require.NoError(t, g.AddView(newView("a"), 300))
	require.NoError(t, g.AddView(newView("b"), 300))
	require.NoError(t, g.AddView(newView("c"), 300))
	require.NoError(t, g.SplitView("b", newView("b2"), 0, Vertical, false))
	require.NoError(t, g.SplitView("b2", newView("b3"), 0, Horizontal, true))
	g.Layout()

	walkBranches(g.Root(), func(b *Branch) {
		if b.Len() == 0 {
			return
		}
		total := 0
		for _, c := range b.Children() {
			total += c.Size()
		}
		total += g.SashThickness() * (b.Len() - 1)
		assert.InDelta(t, b.Rect().Along(b.Orientation()), total, 1, "branch %s", b.Orientation())
	})
}

func TestDistributeSizes_LastChildAbsorbsResidue(t *testing.T) {
	g := New(Horizontal, 300, 100)
	require.NoError(t, g.AddView(newConstrainedView("a", Constraints{MaxWidth: 100}), 100))
	require.NoError(t, g.AddView(newConstrainedView("b", Constraints{MaxWidth: 100}), 100))
	require.NoError(t, g.AddView(newView("c"), 100))
	g.Layout()

	g.Resize(600, 100)
	assert.Equal(t, []int{100, 100, 400}, sizes(g.Root()))
}

func TestDistributeSizes_ClampedLastChildLeavesResidue(t *testing.T) {
	// Residue that the last child cannot take is not handed back to the
	// other siblings; the branch ends up short of its extent.
	g := New(Horizontal, 300, 100)
	require.NoError(t, g.AddView(newConstrainedView("a", Constraints{MaxWidth: 100}), 100))
	require.NoError(t, g.AddView(newConstrainedView("b", Constraints{MaxWidth: 100}), 100))
	require.NoError(t, g.AddView(newConstrainedView("c", Constraints{MaxWidth: 150}), 100))
	g.Layout()

	g.Resize(600, 100)
	assert.Equal(t, []int{100, 100, 150}, sizes(g.Root()))
}

func TestResizeSash_ZeroSum(t *testing.T) {
	a := newConstrainedView("a", Constraints{MinWidth: 100, MaxWidth: 700})
	b := newConstrainedView("b", Constraints{MinWidth: 200, MaxWidth: 800})

	for delta := -1000; delta <= 1000; delta += 37 {
		g := twoViews(t, 1000, a, b, 500, 500)
		applied := g.ResizeSash(g.Root(), 0, delta)
		sa, sb := mustSize(g, "a"), mustSize(g, "b")
		assert.Equal(t, 1000, sa+sb, "delta %d", delta)
		assert.Equal(t, 500+applied, sa, "delta %d", delta)
		assert.GreaterOrEqual(t, sa, 100)
		assert.LessOrEqual(t, sa, 700)
		assert.GreaterOrEqual(t, sb, 200)
		assert.LessOrEqual(t, sb, 800)
		assert.LessOrEqual(t, math.Abs(float64(applied)), math.Abs(float64(delta)))
	}
}

func TestResizeSash_AppliedDeltaIsClamped(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"within range", 50, 50},
		{"first hits maximum", 300, 200},
		{"second hits maximum", -500, -300},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newConstrainedView("a", Constraints{MinWidth: 100, MaxWidth: 700})
			b := newConstrainedView("b", Constraints{MinWidth: 200, MaxWidth: 800})
			g := twoViews(t, 1000, a, b, 500, 500)

			got := g.ResizeSash(g.Root(), 0, tt.delta)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 500+tt.want, a.width, "view should be laid out at its new size")
		})
	}
}

func TestResizeSash_SaturatedPairAppliesNothing(t *testing.T) {
	a := newConstrainedView("a", Constraints{MinWidth: 600, MaxWidth: 600})
	b := newConstrainedView("b", Constraints{MinWidth: 400, MaxWidth: 400})
	g := twoViews(t, 1000, a, b, 600, 400)

	assert.Equal(t, 0, g.ResizeSash(g.Root(), 0, 50))
	assert.Equal(t, 0, g.ResizeSash(g.Root(), 0, -50))
	assert.Equal(t, []int{600, 400}, sizes(g.Root()))
}

func TestResizeSash_OutOfRange(t *testing.T) {
	g := twoViews(t, 1000, newView("a"), newView("b"), 500, 500)
	var events int
	g.Subscribe(func(Event) { events++ })

	assert.Equal(t, 0, g.ResizeSash(g.Root(), 1, 10))
	assert.Equal(t, 0, g.ResizeSash(g.Root(), -1, 10))
	assert.Equal(t, 0, g.ResizeSash(nil, 0, 10))
	assert.Equal(t, 0, events)
}

func TestResizeSash_EmitsAppliedDelta(t *testing.T) {
	a := newConstrainedView("a", Constraints{MaxWidth: 520})
	g := twoViews(t, 1000, a, newView("b"), 500, 500)
	var got []Event
	g.Subscribe(func(e Event) { got = append(got, e) })

	g.ResizeSash(g.Root(), 0, 100)
	require.Len(t, got, 1)
	assert.Equal(t, EventSashResized, got[0].Kind)
	assert.Equal(t, 20, got[0].Delta)
	assert.Same(t, g.Root(), got[0].Branch)
}

func TestResizeSash_RelaysOutSubtree(t *testing.T) {
	g := New(Horizontal, 1000, 600)
	require.NoError(t, g.AddView(newView("a"), 500))
	require.NoError(t, g.AddView(newView("b"), 500))
	c := newView("c")
	require.NoError(t, g.SplitView("b", c, 0, Vertical, false))
	g.Layout()
	require.Equal(t, 500, c.width)

	g.ResizeSash(g.Root(), 0, 100)
	assert.Equal(t, 400, c.width)
	rc, _ := g.ViewRect("c")
	assert.Equal(t, 600, rc.X)
}

func TestDistributeEvenly(t *testing.T) {
	g := New(Horizontal, 900, 100)
	require.NoError(t, g.AddView(newView("a"), 100))
	require.NoError(t, g.AddView(newView("b"), 200))
	require.NoError(t, g.AddView(newView("c"), 600))
	g.Layout()

	g.DistributeEvenly(g.Root())
	assert.Equal(t, []int{300, 300, 300}, sizes(g.Root()))
}

package grid

import "math"

// Unbounded is the maximum extent reported for an axis with no upper limit.
// Sums saturate at Unbounded so aggregation never overflows.
const Unbounded = math.MaxInt32

// Constraints bounds a view's extent along each axis.
// A zero maximum means the axis is unbounded, so the zero value places no
// constraints at all.
type Constraints struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// Min returns the minimum extent along o.
func (c Constraints) Min(o Orientation) int {
	v := c.MinWidth
	if o == Vertical {
		v = c.MinHeight
	}
	if v < 0 {
		return 0
	}
	return v
}

// Max returns the maximum extent along o, or Unbounded.
func (c Constraints) Max(o Orientation) int {
	v := c.MaxWidth
	if o == Vertical {
		v = c.MaxHeight
	}
	if v <= 0 || v > Unbounded {
		return Unbounded
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// addExtent adds two extents, saturating at Unbounded.
func addExtent(a, b int) int {
	if a >= Unbounded || b >= Unbounded {
		return Unbounded
	}
	if s := a + b; s < Unbounded {
		return s
	}
	return Unbounded
}

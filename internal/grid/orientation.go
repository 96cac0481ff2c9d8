package grid

import "fmt"

// Orientation is the axis along which a Branch arranges its children.
type Orientation int

const (
	// Horizontal places children left to right; sizes are widths.
	Horizontal Orientation = iota
	// Vertical places children top to bottom; sizes are heights.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Orthogonal returns the other axis.
func (o Orientation) Orthogonal() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case Horizontal, Vertical:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("marshal orientation: unknown value %d", int(o))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOrientation accepts "horizontal"/"vertical" and the short forms "h"/"v".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, fmt.Errorf("invalid orientation %q: expected horizontal or vertical", s)
}

// along picks the extent of (width, height) that lies along o.
func along(o Orientation, width, height int) int {
	if o == Horizontal {
		return width
	}
	return height
}

// SizingMode records whether a node's size is an absolute extent or a share
// of its parent that scales when the parent is resized.
type SizingMode int

const (
	// Proportional sizes are rescaled with their container.
	Proportional SizingMode = iota
	// Pixel sizes keep their absolute extent across container resizes.
	Pixel
)

func (m SizingMode) String() string {
	switch m {
	case Proportional:
		return "proportional"
	case Pixel:
		return "pixel"
	default:
		return fmt.Sprintf("SizingMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m SizingMode) MarshalText() ([]byte, error) {
	switch m {
	case Proportional, Pixel:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("marshal sizing mode: unknown value %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SizingMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "proportional", "":
		*m = Proportional
	case "pixel":
		*m = Pixel
	default:
		return fmt.Errorf("invalid sizing mode %q: expected pixel or proportional", string(b))
	}
	return nil
}

package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
//
// Loss layers address shapes through the legacy 4-axis view
// (num, channels, height, width): axes past the end of the shape read as 1.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0, at most 4 axes).
func (s Shape) Validate() error {
	if len(s) > 4 {
		return fmt.Errorf("shape %v has %d axes (at most 4 supported)", s, len(s))
	}
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// LegacyDim returns axis i of the 4-axis (num, channels, height, width) view.
// Axes beyond the shape's rank are 1.
func (s Shape) LegacyDim(i int) int {
	if i < 0 || i >= 4 {
		panic(fmt.Sprintf("legacy axis %d out of range [0, 4)", i))
	}
	if i >= len(s) {
		return 1
	}
	return s[i]
}

// Num returns the outer (batch) dimension.
func (s Shape) Num() int { return s.LegacyDim(0) }

// Channels returns the channel dimension.
func (s Shape) Channels() int { return s.LegacyDim(1) }

// Height returns the height dimension.
func (s Shape) Height() int { return s.LegacyDim(2) }

// Width returns the width dimension.
func (s Shape) Width() int { return s.LegacyDim(3) }

// SameCHW reports whether two shapes agree on channels, height and width.
// The batch axis is ignored.
func (s Shape) SameCHW(other Shape) bool {
	return s.Channels() == other.Channels() &&
		s.Height() == other.Height() &&
		s.Width() == other.Width()
}

// String formats the shape as (n, c, h, w).
func (s Shape) String() string {
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(dim)
	}
	return out + ")"
}

package tensor

import "fmt"

// Tensor is a flat, contiguous buffer of T with an associated shape.
// Data is stored row-major, so the Num() outer items are contiguous
// segments of equal length.
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	data := t.Data() // [1 2 3 4]
type Tensor[T Float] struct {
	data  []T
	shape Shape
}

// New allocates a zero-filled tensor with the given shape.
func New[T Float](shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor[T]{
		data:  make([]T, shape.NumElements()),
		shape: shape.Clone(),
	}, nil
}

// Empty returns a tensor with no elements. It is typically handed to a
// layer as an output, which reshapes it before writing.
func Empty[T Float]() *Tensor[T] {
	return &Tensor[T]{}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)
	return t, nil
}

// Full creates a tensor filled with value.
func Full[T Float](shape Shape, value T) (*Tensor[T], error) {
	t, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// NumElements returns the total number of elements (0 for an empty tensor).
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// Num returns the outer (batch) dimension.
func (t *Tensor[T]) Num() int { return t.shape.Num() }

// Channels returns the channel dimension.
func (t *Tensor[T]) Channels() int { return t.shape.Channels() }

// Height returns the height dimension.
func (t *Tensor[T]) Height() int { return t.shape.Height() }

// Width returns the width dimension.
func (t *Tensor[T]) Width() int { return t.shape.Width() }

// Data returns the underlying elements. Writes are visible to the tensor.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// Reshape changes the tensor's shape in place. The backing array is reused
// when it is large enough; every element is zeroed either way, so no value
// from a previous shape survives.
func (t *Tensor[T]) Reshape(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}
	n := shape.NumElements()
	if cap(t.data) >= n {
		t.data = t.data[:n]
		clear(t.data)
	} else {
		t.data = make([]T, n)
	}
	t.shape = shape.Clone()
	return nil
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return &Tensor[T]{
		data:  data,
		shape: t.shape.Clone(),
	}
}

// String returns a short description, e.g. "Tensor[float32](2, 3)".
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%s", t.DType(), t.shape)
}

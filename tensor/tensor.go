// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/smoothl1/internal/tensor"
)

// Float is the constraint for tensor element types (float32, float64).
type Float = tensor.Float

// DataType represents the element type of a tensor at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// Tensor is a flat buffer of T with a shape.
type Tensor[T Float] = tensor.Tensor[T]

// New allocates a zero-filled tensor.
func New[T Float](shape Shape) (*Tensor[T], error) {
	return tensor.New[T](shape)
}

// Empty returns a tensor with no elements, ready to be sized by a layer.
func Empty[T Float]() *Tensor[T] {
	return tensor.Empty[T]()
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	t, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Full creates a tensor filled with value.
func Full[T Float](shape Shape, value T) (*Tensor[T], error) {
	return tensor.Full(shape, value)
}

// ParseDataType converts "float32"/"float64" (or "f32"/"f64") to a DataType.
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// Package nn implements the loss layers of the framework.
//
// This package provides:
//   - Layer interface: the configure/prepare/forward/backward contract
//   - SmoothL1Loss: per-sample smooth L1 loss with optional element weights
//   - Registry: lookup of layer factories by type name
//
// Layers operate on flat tensor buffers and are generic over the element
// precision (float32 or float64).
package nn

import (
	"github.com/born-ml/smoothl1/internal/tensor"
)

// Layer is the contract every loss layer implements.
//
// The lifecycle is:
//
//	layer.Configure(len(bottom))   // once
//	layer.Prepare(bottom, top)     // whenever input shapes change
//	layer.Forward(bottom, top)     // every evaluation
//
// bottom holds the read-only inputs; top holds the outputs the layer writes.
type Layer[T tensor.Float] interface {
	// Type returns the registered type name of the layer.
	Type() string

	// Configure fixes the input arity. It may be called once.
	Configure(numInputs int) error

	// Prepare validates input shapes and sizes outputs and scratch buffers.
	Prepare(bottom, top []*tensor.Tensor[T]) error

	// Forward computes the outputs from the inputs.
	Forward(bottom, top []*tensor.Tensor[T]) error

	// Backward propagates gradients from top to the bottom inputs flagged
	// in propagateDown.
	Backward(top []*tensor.Tensor[T], propagateDown []bool, bottom []*tensor.Tensor[T]) error
}

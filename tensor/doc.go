// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor buffer used by the loss layers.
//
// A Tensor is a flat, row-major slice of float32 or float64 values with a
// shape of at most four axes, read through the (num, channels, height,
// width) view:
//
//	pred, err := tensor.FromSlice([]float32{1.5, -0.5}, tensor.Shape{1, 2})
//	pred.Num()      // 1
//	pred.Channels() // 2
//	pred.Height()   // 1
//
// Outputs are usually created empty and sized by the layer that writes them:
//
//	out := tensor.Empty[float32]()
package tensor

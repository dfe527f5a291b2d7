// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the smooth L1 loss layer.
//
// # Overview
//
// This package contains:
//   - SmoothL1Loss: per-sample smooth L1 loss with optional element weights
//   - Layer: the configure/prepare/forward/backward contract
//   - Registry: layer lookup by type name
//   - SmoothL1: the pointwise loss function
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/smoothl1/nn"
//	    "github.com/born-ml/smoothl1/tensor"
//	)
//
//	func main() {
//	    loss := nn.NewSmoothL1Loss[float32]()
//	    if err := loss.Configure(2); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, _ := tensor.FromSlice([]float32{1.5, -0.5}, tensor.Shape{1, 2})
//	    target, _ := tensor.FromSlice([]float32{0, 0}, tensor.Shape{1, 2})
//	    out := tensor.Empty[float32]()
//
//	    err := loss.Forward(
//	        []*tensor.Tensor[float32]{pred, target},
//	        []*tensor.Tensor[float32]{out},
//	    )
//	    // out.Data() == [1.125]
//	}
//
// # Loss definition
//
// For each batch item n, with d = w·(p - t) over the item's elements:
//
//	loss[n] = Σ 0.5·d²     where |d| < 1
//	        + Σ |d| - 0.5  elsewhere
//
// The result is a sum, not a mean. A weight input (third bottom tensor)
// scales each difference once before the loss is applied.
//
// # Errors
//
// Shape problems return errors matching ErrShapeMismatch; Backward always
// returns ErrNotImplemented. Use errors.Is to test for them.
package nn

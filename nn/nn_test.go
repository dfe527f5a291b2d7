// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/smoothl1/nn"
	"github.com/born-ml/smoothl1/tensor"
)

// TestLayerInterface verifies that the public loss satisfies Layer.
func TestLayerInterface(t *testing.T) {
	var _ nn.Layer[float32] = nn.NewSmoothL1Loss[float32]()
	var _ nn.Layer[float64] = nn.NewSmoothL1Loss[float64]()
}

func TestPublicForward(t *testing.T) {
	loss := nn.NewSmoothL1Loss[float32](nn.WithParallel(nn.SequentialConfig()))
	require.NoError(t, loss.Configure(3))

	pred, err := tensor.FromSlice([]float32{1.5, -0.5}, tensor.Shape{1, 2})
	require.NoError(t, err)
	target, err := tensor.New[float32](tensor.Shape{1, 2})
	require.NoError(t, err)
	weight, err := tensor.FromSlice([]float32{2.0, 0.5}, tensor.Shape{1, 2})
	require.NoError(t, err)
	out := tensor.Empty[float32]()

	require.NoError(t, loss.Forward(
		[]*tensor.Tensor[float32]{pred, target, weight},
		[]*tensor.Tensor[float32]{out},
	))
	assert.Equal(t, []float32{2.53125}, out.Data())

	err = loss.Backward([]*tensor.Tensor[float32]{out}, []bool{true}, []*tensor.Tensor[float32]{pred, target, weight})
	assert.ErrorIs(t, err, nn.ErrNotImplemented)
}

func TestPublicRegistry(t *testing.T) {
	r := nn.DefaultRegistry[float64](nn.WithParallel(nn.DefaultParallelConfig()))
	layer, err := r.Create(nn.SmoothL1Loss3Type, 2)
	require.NoError(t, err)
	assert.Equal(t, nn.SmoothL1LossType, layer.Type())

	_, err = r.Create("Unknown", 2)
	assert.ErrorIs(t, err, nn.ErrUnknownLayer)

	assert.Equal(t, 0.5, nn.SmoothL1(1.0))
	assert.Empty(t, nn.NewRegistry[float32]().Types())
}

func TestPublicLogger(t *testing.T) {
	var buf bytes.Buffer
	log := nn.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	loss := nn.NewSmoothL1Loss[float64](nn.WithLogger(log))
	require.NoError(t, loss.Configure(2))
	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	require.NoError(t, loss.Prepare([]*tensor.Tensor[float64]{x, x}, []*tensor.Tensor[float64]{tensor.Empty[float64]()}))

	assert.Contains(t, buf.String(), "reshaping scratch buffers")
}

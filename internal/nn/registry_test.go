package nn

import (
	"testing"

	"github.com/born-ml/smoothl1/internal/parallel"
	"github.com/born-ml/smoothl1/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Types(t *testing.T) {
	r := DefaultRegistry[float32]()
	assert.Equal(t, []string{SmoothL1LossType, SmoothL1Loss3Type}, r.Types())
}

func TestRegistry_CreateConfigures(t *testing.T) {
	r := DefaultRegistry[float64]()

	for _, name := range []string{SmoothL1LossType, SmoothL1Loss3Type} {
		layer, err := r.Create(name, 3)
		require.NoError(t, err, name)

		s, ok := layer.(*SmoothL1Loss[float64])
		require.True(t, ok)
		assert.True(t, s.HasWeights())
		assert.ErrorIs(t, layer.Configure(2), ErrAlreadyConfigured)
	}
}

func TestRegistry_CreateFreshInstances(t *testing.T) {
	r := DefaultRegistry[float32]()
	a, err := r.Create(SmoothL1LossType, 2)
	require.NoError(t, err)
	b, err := r.Create(SmoothL1LossType, 2)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestRegistry_Errors(t *testing.T) {
	r := DefaultRegistry[float32]()

	_, err := r.Create("EuclideanLoss", 2)
	assert.ErrorIs(t, err, ErrUnknownLayer)

	_, err = r.Create(SmoothL1LossType, 5)
	assert.ErrorIs(t, err, ErrInvalidArity)
}

type stubLayer struct {
	SmoothL1Loss[float32]
}

func (s *stubLayer) Type() string { return "Stub" }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry[float32]()
	assert.Empty(t, r.Types())

	r.Register("Stub", func() Layer[float32] { return &stubLayer{} })
	f, ok := r.Get("Stub")
	require.True(t, ok)
	assert.Equal(t, "Stub", f().Type())

	_, ok = r.Get(SmoothL1LossType)
	assert.False(t, ok)
}

func TestRegistry_OptionsReachLayers(t *testing.T) {
	r := DefaultRegistry[float32](WithParallel(parallel.Sequential()))
	layer, err := r.Create(SmoothL1LossType, 2)
	require.NoError(t, err)

	p, err := tensor.FromSlice([]float32{2, 0}, tensor.Shape{1, 2})
	require.NoError(t, err)
	q, err := tensor.New[float32](tensor.Shape{1, 2})
	require.NoError(t, err)
	out := tensor.Empty[float32]()

	require.NoError(t, layer.Forward([]*tensor.Tensor[float32]{p, q}, []*tensor.Tensor[float32]{out}))
	assert.Equal(t, []float32{1.5}, out.Data())
	assert.False(t, layer.(*SmoothL1Loss[float32]).opts.parallel.Enabled)
}

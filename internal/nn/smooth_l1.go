package nn

import (
	"fmt"
	"sync"

	"github.com/born-ml/smoothl1/internal/logger"
	"github.com/born-ml/smoothl1/internal/parallel"
	"github.com/born-ml/smoothl1/internal/tensor"
)

// Layer type names understood by the registry.
const (
	SmoothL1LossType  = "SmoothL1Loss"
	SmoothL1Loss3Type = "SmoothL1Loss3"
)

// SmoothL1 returns the smooth L1 contribution of a single difference v:
//
//	0.5·v²     if |v| < 1
//	|v| - 0.5  otherwise
//
// Both branches meet at 0.5 for |v| = 1. NaN propagates.
func SmoothL1[T tensor.Float](v T) T {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs < 1 {
		return 0.5 * v * v
	}
	return abs - 0.5
}

// Option configures a layer at construction.
type Option func(*layerOptions)

type layerOptions struct {
	parallel parallel.Config
	log      logger.Logger
}

func defaultLayerOptions() layerOptions {
	return layerOptions{
		parallel: parallel.DefaultConfig(),
		log:      logger.Discard(),
	}
}

// WithParallel sets how the elementwise and per-sample sweeps are split
// across goroutines. Results do not depend on the setting.
func WithParallel(cfg parallel.Config) Option {
	return func(o *layerOptions) {
		o.parallel = cfg
	}
}

// WithLogger sets the logger receiving debug records about buffer reshapes.
func WithLogger(log logger.Logger) Option {
	return func(o *layerOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// SmoothL1Loss computes an unnormalised smooth L1 loss per batch item.
//
// Inputs (bottom):
//   - bottom[0]: predictions, shape (N, C, H, W)
//   - bottom[1]: targets, same shape
//   - bottom[2]: optional element weights, same shape
//
// Output (top[0]) has shape (N, 1, 1, 1):
//
//	loss[n] = Σ_j SmoothL1(w[n,j] · (p[n,j] - t[n,j]))
//
// The sum is not divided by the number of elements or items.
// Only the forward pass is provided; Backward returns ErrNotImplemented.
//
// A SmoothL1Loss owns its scratch buffers. Calls on one instance are
// serialised; use separate instances for concurrent evaluation.
//
// Example:
//
//	loss := nn.NewSmoothL1Loss[float32]()
//	if err := loss.Configure(2); err != nil { ... }
//	out := tensor.Empty[float32]()
//	err := loss.Forward([]*tensor.Tensor[float32]{pred, target}, []*tensor.Tensor[float32]{out})
type SmoothL1Loss[T tensor.Float] struct {
	mu         sync.Mutex
	configured bool
	hasWeights bool

	diff   *tensor.Tensor[T] // p - t, weighted when hasWeights
	errors *tensor.Tensor[T] // SmoothL1(diff) per element

	opts layerOptions
	log  logger.Logger
}

// NewSmoothL1Loss creates an unconfigured smooth L1 loss layer.
func NewSmoothL1Loss[T tensor.Float](opts ...Option) *SmoothL1Loss[T] {
	o := defaultLayerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &SmoothL1Loss[T]{
		diff:   tensor.Empty[T](),
		errors: tensor.Empty[T](),
		opts:   o,
		log:    o.log.With("layer", SmoothL1LossType),
	}
}

// Type returns SmoothL1LossType.
func (l *SmoothL1Loss[T]) Type() string {
	return SmoothL1LossType
}

// Configure fixes the number of inputs: 2 (prediction, target) or
// 3 (prediction, target, weight).
func (l *SmoothL1Loss[T]) Configure(numInputs int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.configured {
		return fmt.Errorf("%s: %w", SmoothL1LossType, ErrAlreadyConfigured)
	}
	if numInputs != 2 && numInputs != 3 {
		return fmt.Errorf("%s: %w: got %d inputs, want 2 or 3", SmoothL1LossType, ErrInvalidArity, numInputs)
	}
	l.hasWeights = numInputs == 3
	l.configured = true
	return nil
}

// HasWeights reports whether the layer was configured with a weight input.
func (l *SmoothL1Loss[T]) HasWeights() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasWeights
}

// Prepare checks that predictions, targets and weights share a shape and
// sizes the scratch buffers and top[0].
func (l *SmoothL1Loss[T]) Prepare(bottom, top []*tensor.Tensor[T]) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.prepare(bottom, top)
}

// Forward computes the per-item loss into top[0]. Shapes are re-checked
// and buffers re-sized first, so calling Prepare beforehand is optional.
func (l *SmoothL1Loss[T]) Forward(bottom, top []*tensor.Tensor[T]) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.prepare(bottom, top); err != nil {
		return err
	}

	pred := bottom[0].Data()
	target := bottom[1].Data()
	var weight []T
	if l.hasWeights {
		weight = bottom[2].Data()
	}
	diff := l.diff.Data()

	count := len(pred)
	outer := bottom[0].Num()
	inner := count / outer

	parallel.ForRange(count, func(start, end int) {
		for i := start; i < end; i++ {
			d := pred[i] - target[i]
			if weight != nil {
				d = weight[i] * d
			}
			diff[i] = d
		}
	}, l.opts.parallel)

	errs := l.errors.Data()
	loss := top[0].Data()

	// Each item is summed serially so the result is independent of the split.
	itemCfg := l.opts.parallel
	itemCfg.MinChunkSize = max(1, itemCfg.MinChunkSize/inner)
	parallel.For(outer, func(n int) {
		base := n * inner
		var sum T
		for j := base; j < base+inner; j++ {
			e := SmoothL1(diff[j])
			errs[j] = e
			sum += e
		}
		loss[n] = sum
	}, itemCfg)

	return nil
}

// Backward is not provided for this layer.
func (l *SmoothL1Loss[T]) Backward(_ []*tensor.Tensor[T], _ []bool, _ []*tensor.Tensor[T]) error {
	return fmt.Errorf("%s backward: %w", SmoothL1LossType, ErrNotImplemented)
}

// Diff returns the scratch buffer holding the (weighted) differences of
// the last Forward call. The caller must not modify it.
func (l *SmoothL1Loss[T]) Diff() *tensor.Tensor[T] {
	return l.diff
}

// Errors returns the per-element smooth L1 values of the last Forward call.
// The caller must not modify it.
func (l *SmoothL1Loss[T]) Errors() *tensor.Tensor[T] {
	return l.errors
}

func (l *SmoothL1Loss[T]) prepare(bottom, top []*tensor.Tensor[T]) error {
	if !l.configured {
		return fmt.Errorf("%s: %w", SmoothL1LossType, ErrNotConfigured)
	}

	want := 2
	if l.hasWeights {
		want = 3
	}
	if len(bottom) != want {
		return fmt.Errorf("%s: %w: got %d inputs, configured for %d", SmoothL1LossType, ErrInvalidArity, len(bottom), want)
	}
	if len(top) != 1 {
		return fmt.Errorf("%s: %w: got %d outputs, want 1", SmoothL1LossType, ErrInvalidArity, len(top))
	}
	for i, b := range bottom {
		if b == nil {
			return fmt.Errorf("%s: %w: input %d is nil", SmoothL1LossType, ErrInvalidArity, i)
		}
	}
	if top[0] == nil {
		return fmt.Errorf("%s: %w: output is nil", SmoothL1LossType, ErrInvalidArity)
	}

	pred := bottom[0]
	if pred.NumElements() == 0 {
		return fmt.Errorf("%s: %w: prediction is empty", SmoothL1LossType, ErrShapeMismatch)
	}
	names := [...]string{"prediction", "target", "weight"}
	for i := 1; i < len(bottom); i++ {
		if err := checkSameShape(pred, bottom[i], names[i]); err != nil {
			return fmt.Errorf("%s: %w", SmoothL1LossType, err)
		}
	}

	shape := pred.Shape()
	if pred.NumElements()%pred.Num() != 0 {
		return fmt.Errorf("%s: %w: %d elements do not split into %d items",
			SmoothL1LossType, ErrShapeMismatch, pred.NumElements(), pred.Num())
	}

	if !l.diff.Shape().Equal(shape) {
		l.log.Debug("reshaping scratch buffers",
			"from", l.diff.Shape().String(), "to", shape.String(), "weighted", l.hasWeights)
	}
	if err := l.diff.Reshape(shape); err != nil {
		return err
	}
	if err := l.errors.Reshape(shape); err != nil {
		return err
	}
	return top[0].Reshape(tensor.Shape{pred.Num(), 1, 1, 1})
}

// checkSameShape compares every axis of the legacy 4-axis view, the batch
// axis included, and the element count.
func checkSameShape[T tensor.Float](pred, other *tensor.Tensor[T], name string) error {
	ps, xs := pred.Shape(), other.Shape()
	if !ps.SameCHW(xs) {
		return fmt.Errorf("%w: prediction %v vs %s %v (channels, height and width must match)",
			ErrShapeMismatch, ps, name, xs)
	}
	if ps.Num() != xs.Num() {
		return fmt.Errorf("%w: prediction %v vs %s %v (batch size must match)",
			ErrShapeMismatch, ps, name, xs)
	}
	if pred.NumElements() != other.NumElements() {
		return fmt.Errorf("%w: prediction has %d elements, %s has %d",
			ErrShapeMismatch, pred.NumElements(), name, other.NumElements())
	}
	return nil
}

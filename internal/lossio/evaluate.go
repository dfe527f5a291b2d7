package lossio

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/born-ml/smoothl1/internal/nn"
	"github.com/born-ml/smoothl1/internal/tensor"
)

// Evaluator runs requests through a fresh smooth L1 layer each time, so
// it is safe for concurrent use.
type Evaluator struct {
	precision tensor.DataType
	opts      []nn.Option
}

// NewEvaluator creates an Evaluator whose default precision is precision.
// opts are passed to every layer it creates.
func NewEvaluator(precision tensor.DataType, opts ...nn.Option) *Evaluator {
	return &Evaluator{
		precision: precision,
		opts:      opts,
	}
}

// Evaluate computes the per-item loss for req. The request's own
// precision, when set, overrides the Evaluator default.
func (e *Evaluator) Evaluate(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	precision := e.precision
	if req.Precision != "" {
		p, err := tensor.ParseDataType(req.Precision)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		precision = p
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch precision {
	case tensor.Float32:
		return evaluate[float32](req, e.opts)
	case tensor.Float64:
		return evaluate[float64](req, e.opts)
	default:
		return nil, fmt.Errorf("%w: unsupported precision %s", ErrInvalidDocument, precision)
	}
}

func evaluate[T tensor.Float](req *Request, opts []nn.Option) (*Result, error) {
	bottom := make([]*tensor.Tensor[T], 0, 3)
	docs := []struct {
		name string
		doc  *TensorDoc
	}{
		{"prediction", req.Prediction},
		{"target", req.Target},
		{"weight", req.Weight},
	}
	for _, d := range docs {
		if d.doc == nil {
			continue
		}
		t, err := toTensor[T](d.doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, d.name, err)
		}
		bottom = append(bottom, t)
	}

	layer, err := nn.DefaultRegistry[T](opts...).Create(nn.SmoothL1LossType, len(bottom))
	if err != nil {
		return nil, err
	}
	out := tensor.Empty[T]()
	if err := layer.Forward(bottom, []*tensor.Tensor[T]{out}); err != nil {
		return nil, err
	}

	res := &Result{
		ID:        uuid.NewString(),
		Layer:     layer.Type(),
		Precision: tensor.DataTypeOf[T]().String(),
		Weighted:  req.Weight != nil,
		Shape:     append([]int(nil), out.Shape()...),
		Loss:      make([]Value, out.NumElements()),
	}
	var total T
	for i, v := range out.Data() {
		res.Loss[i] = Value(v)
		total += v
	}
	res.Total = Value(total)
	return res, nil
}

func toTensor[T tensor.Float](doc *TensorDoc) (*tensor.Tensor[T], error) {
	shape := tensor.Shape(doc.Shape)
	if len(shape) == 0 {
		shape = tensor.Shape{len(doc.Data)}
	}
	data := make([]T, len(doc.Data))
	for i, v := range doc.Data {
		data[i] = T(v)
	}
	return tensor.FromSlice(data, shape)
}

// Package lossio reads loss requests and writes loss results as JSON
// documents. It is shared by the CLI and the HTTP server.
package lossio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrInvalidDocument reports a request that cannot be decoded or is
// missing required tensors.
var ErrInvalidDocument = errors.New("invalid document")

// TensorDoc is a tensor in a request: a shape and its row-major data.
// An empty shape means a 1-D tensor of len(Data) elements.
type TensorDoc struct {
	Shape []int     `json:"shape,omitempty"`
	Data  []float64 `json:"data"`
}

// Request asks for the smooth L1 loss of prediction against target,
// optionally weighted per element.
type Request struct {
	Prediction *TensorDoc `json:"prediction"`
	Target     *TensorDoc `json:"target"`
	Weight     *TensorDoc `json:"weight,omitempty"`
	Precision  string     `json:"precision,omitempty"`
}

// NumInputs returns 3 when a weight tensor is present, else 2.
func (r *Request) NumInputs() int {
	if r.Weight != nil {
		return 3
	}
	return 2
}

// Validate checks that the required tensors are present.
func (r *Request) Validate() error {
	if r.Prediction == nil {
		return fmt.Errorf("%w: missing prediction", ErrInvalidDocument)
	}
	if r.Target == nil {
		return fmt.Errorf("%w: missing target", ErrInvalidDocument)
	}
	return nil
}

// Value is a loss value. Non-finite values, which JSON cannot carry as
// numbers, are written as the strings "NaN", "+Inf" and "-Inf".
type Value float64

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("loss value %q: %w", s, err)
		}
		*v = Value(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// Result holds one loss value per batch item.
type Result struct {
	ID        string  `json:"id"`
	Layer     string  `json:"layer"`
	Precision string  `json:"precision"`
	Weighted  bool    `json:"weighted"`
	Shape     []int   `json:"shape"`
	Loss      []Value `json:"loss"`
	Total     Value   `json:"total"`
}

// DecodeRequest reads one request document from r. Unknown fields are rejected.
func DecodeRequest(r io.Reader) (*Request, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var req Request
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// EncodeResult writes res to w as a single JSON document.
func EncodeResult(w io.Writer, res *Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

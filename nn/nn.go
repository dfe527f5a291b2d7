// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"log/slog"

	"github.com/born-ml/smoothl1/internal/logger"
	"github.com/born-ml/smoothl1/internal/nn"
	"github.com/born-ml/smoothl1/internal/parallel"
	"github.com/born-ml/smoothl1/internal/tensor"
)

// Layer is the contract of every loss layer.
type Layer[T tensor.Float] = nn.Layer[T]

// SmoothL1Loss computes an unnormalised smooth L1 loss per batch item.
type SmoothL1Loss[T tensor.Float] = nn.SmoothL1Loss[T]

// Option configures a layer at construction.
type Option = nn.Option

// Registry maps layer type names to factories.
type Registry[T tensor.Float] = nn.Registry[T]

// Factory creates a new, unconfigured layer.
type Factory[T tensor.Float] = nn.Factory[T]

// ParallelConfig controls how the loss sweeps are split across goroutines.
type ParallelConfig = parallel.Config

// Logger receives layer debug records.
type Logger = logger.Logger

// NewLogger wraps a slog.Handler as a Logger.
func NewLogger(h slog.Handler) Logger {
	return logger.New(h)
}

// Layer type names.
const (
	SmoothL1LossType  = nn.SmoothL1LossType
	SmoothL1Loss3Type = nn.SmoothL1Loss3Type
)

// Errors returned by layers.
var (
	ErrShapeMismatch     = nn.ErrShapeMismatch
	ErrNotImplemented    = nn.ErrNotImplemented
	ErrInvalidArity      = nn.ErrInvalidArity
	ErrAlreadyConfigured = nn.ErrAlreadyConfigured
	ErrNotConfigured     = nn.ErrNotConfigured
	ErrUnknownLayer      = nn.ErrUnknownLayer
)

// NewSmoothL1Loss creates an unconfigured smooth L1 loss layer.
//
// Example:
//
//	loss := nn.NewSmoothL1Loss[float64](nn.WithParallel(nn.SequentialConfig()))
//	err := loss.Configure(3) // prediction, target, weight
func NewSmoothL1Loss[T tensor.Float](opts ...Option) *SmoothL1Loss[T] {
	return nn.NewSmoothL1Loss[T](opts...)
}

// SmoothL1 returns the loss contribution of a single difference v.
func SmoothL1[T tensor.Float](v T) T {
	return nn.SmoothL1(v)
}

// NewRegistry creates an empty layer registry.
func NewRegistry[T tensor.Float]() *Registry[T] {
	return nn.NewRegistry[T]()
}

// DefaultRegistry creates a registry holding SmoothL1Loss under both
// SmoothL1LossType and SmoothL1Loss3Type.
func DefaultRegistry[T tensor.Float](opts ...Option) *Registry[T] {
	return nn.DefaultRegistry[T](opts...)
}

// WithParallel sets the goroutine split of the loss sweeps.
func WithParallel(cfg ParallelConfig) Option {
	return nn.WithParallel(cfg)
}

// WithLogger routes layer debug records to log.
func WithLogger(log Logger) Option {
	return nn.WithLogger(log)
}

// DefaultParallelConfig splits work across all CPUs for large inputs.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig runs every sweep on the calling goroutine.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

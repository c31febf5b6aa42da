// Copyright 2025 The gradtape Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the pure-Go CPU backend.
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
package cpu

import (
	internalcpu "github.com/gradtape/gradtape/internal/backend/cpu"
	"github.com/gradtape/gradtape/internal/parallel"
	"github.com/gradtape/gradtape/tensor"
)

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Device is the CPU backend. All kernels are implemented in Go, with
// gonum's BLAS behind matrix multiplication.
type Device = internalcpu.Device

// Option configures a Device.
type Option = internalcpu.Option

// Compile-time check that Device implements tensor.Backend.
var _ tensor.Backend = (*Device)(nil)

// New creates a CPU backend.
func New(opts ...Option) *Device {
	return internalcpu.New(opts...)
}

// WithAllocLimit caps the size in bytes of any single allocation.
// Allocations over the cap fail with tensor.ErrOutOfMemory.
func WithAllocLimit(bytes int) Option {
	return internalcpu.WithAllocLimit(bytes)
}

// WithParallelism overrides the worker configuration used by the kernels.
func WithParallelism(cfg ParallelConfig) Option {
	return internalcpu.WithParallelism(cfg)
}

// Copyright 2025 The gradtape Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for trainable neural network modules.
//
//	backend := cpu.New()
//	model := nn.NewSequential[*cpu.Device](
//	    nn.NewLinear(784, 128, backend),
//	    nn.ReLU[*cpu.Device]{},
//	    nn.NewLinear(128, 10, backend),
//	)
package nn

import (
	"github.com/gradtape/gradtape/internal/nn"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Module is the base interface for all neural network components.
type Module[B tensor.Backend] = nn.Module[B]

// MutModule is a Module with a forward pass that may mutate internal
// state, such as a cache or an RNG.
type MutModule[B tensor.Backend] = nn.MutModule[B]

// Parameter is a named trainable tensor with a stable identity.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Resetter is implemented by modules whose parameters can be
// re-initialized in place.
type Resetter = nn.Resetter

// Updatable is implemented by modules that route a ParamUpdater over
// their own parameters.
type Updatable[B tensor.Backend] = nn.Updatable[B]

// ParamUpdater applies one optimization step to a single parameter.
type ParamUpdater[B tensor.Backend] = nn.ParamUpdater[B]

// ZeroSized is an embeddable base for modules without parameters.
type ZeroSized[B tensor.Backend] = nn.ZeroSized[B]

// Linear is a fully connected layer: y = x @ W + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// LayerNorm normalizes the last axis and applies a learned affine
// transform.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// Sequential chains modules, feeding each output into the next layer.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// Stateless activation modules.
type (
	ReLU[B tensor.Backend]    = nn.ReLU[B]
	GeLU[B tensor.Backend]    = nn.GeLU[B]
	Tanh[B tensor.Backend]    = nn.Tanh[B]
	Sigmoid[B tensor.Backend] = nn.Sigmoid[B]
	Softmax[B tensor.Backend] = nn.Softmax[B]
	Square[B tensor.Backend]  = nn.Square[B]
	Exp[B tensor.Backend]     = nn.Exp[B]
	Log[B tensor.Backend]     = nn.Log[B]
	Sin[B tensor.Backend]     = nn.Sin[B]
	Cos[B tensor.Backend]     = nn.Cos[B]
	Sqrt[B tensor.Backend]    = nn.Sqrt[B]
	Abs[B tensor.Backend]     = nn.Abs[B]
)

// DefaultLayerNormEps is the variance floor used when no explicit epsilon
// is given.
const DefaultLayerNormEps = nn.DefaultLayerNormEps

// NewParameter wraps an initialized tensor as a trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter[B](name, t)
}

// NewLinear creates a Linear layer, panicking on allocation failure.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear[B](inFeatures, outFeatures, backend)
}

// TryNewLinear creates a Linear layer, reporting allocation failure.
func TryNewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) (*Linear[B], error) {
	return nn.TryNewLinear[B](inFeatures, outFeatures, backend)
}

// NewLayerNorm creates a LayerNorm with the default epsilon.
func NewLayerNorm[B tensor.Backend](dim int, backend B) *LayerNorm[B] {
	return nn.NewLayerNorm[B](dim, backend)
}

// TryNewLayerNorm creates a LayerNorm with an explicit epsilon.
func TryNewLayerNorm[B tensor.Backend](dim int, eps float64, backend B) (*LayerNorm[B], error) {
	return nn.TryNewLayerNorm[B](dim, eps, backend)
}

// NewSequential builds a Sequential container from the given layers.
func NewSequential[B tensor.Backend](layers ...Module[B]) *Sequential[B] {
	return nn.NewSequential[B](layers...)
}

// UpdateAll runs the updater over every parameter of the module.
func UpdateAll[B tensor.Backend](m Module[B], updater ParamUpdater[B]) (*tensor.UnusedTensors, error) {
	return nn.UpdateAll[B](m, updater)
}

// LinearTo copies a Linear layer onto another backend.
func LinearTo[B1 tensor.Backend, B2 tensor.Backend](l *Linear[B1], b B2) (*Linear[B2], error) {
	return nn.LinearTo[B1, B2](l, b)
}

// LayerNormTo copies a LayerNorm layer onto another backend.
func LayerNormTo[B1 tensor.Backend, B2 tensor.Backend](l *LayerNorm[B1], b B2) (*LayerNorm[B2], error) {
	return nn.LayerNormTo[B1, B2](l, b)
}

// Copyright 2025 The gradtape Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Tape records the backward closures of the operations run during a
// forward pass. Drain it once through a tensor's Backward.
type Tape = tensor.Tape

// Gradients maps tensor identities to their accumulated gradients.
type Gradients = tensor.Gradients

// UnusedTensors collects the identities of parameters that received no
// gradient during an update.
type UnusedTensors = tensor.UnusedTensors

// Identified is anything carrying a tensor identity.
type Identified = tensor.Identified

// NewTape creates an empty gradient tape.
func NewTape() *Tape {
	return tensor.NewTape()
}

// MergeTapes unifies the tapes of two operands. Merging two distinct
// recording tapes panics.
func MergeTapes(a, b *Tape) *Tape {
	return tensor.MergeTapes(a, b)
}

// NewGradients creates an empty gradients map bound to a backend.
func NewGradients(b Backend) *Gradients {
	return tensor.NewGradients(b)
}

// Copyright 2025 The gradtape Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for optimizers.
//
//	sgd := optim.NewSGD[*cpu.Device](optim.SGDConfig{LR: 0.01}, backend)
//	grads := loss.Backward()
//	unused, err := sgd.Step(model, grads)
package optim

import (
	"github.com/gradtape/gradtape/internal/optim"
	"github.com/gradtape/gradtape/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
type SGD[B tensor.Backend] = optim.SGD[B]

// SGDConfig holds the SGD hyperparameters.
type SGDConfig = optim.SGDConfig

// Adam implements the Adam optimizer with bias correction.
type Adam[B tensor.Backend] = optim.Adam[B]

// AdamConfig holds the Adam hyperparameters.
type AdamConfig = optim.AdamConfig

// NewSGD creates an SGD optimizer.
func NewSGD[B tensor.Backend](config SGDConfig, backend B) *SGD[B] {
	return optim.NewSGD[B](config, backend)
}

// NewAdam creates an Adam optimizer.
func NewAdam[B tensor.Backend](config AdamConfig, backend B) *Adam[B] {
	return optim.NewAdam[B](config, backend)
}

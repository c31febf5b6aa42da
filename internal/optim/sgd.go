// Package optim implements gradient descent optimizers that consume the
// gradients produced by a backward pass.
package optim

import (
	"github.com/gradtape/gradtape/internal/nn"
	"github.com/gradtape/gradtape/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// With momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// An SGD value is bound to one set of gradients per step: call Step with
// the result of a backward pass, then run the next forward pass on a fresh
// tape.
//
//	grads := loss.Backward()
//	sgd := optim.NewSGD[B](optim.SGDConfig{LR: 0.01}, backend)
//	unused, err := sgd.Step(model, grads)
type SGD[B tensor.Backend] struct {
	lr         float64
	momentum   float64
	velocities map[tensor.TensorID]*tensor.RawTensor
	backend    B

	// set for the duration of one Step
	grads *tensor.Gradients
}

// SGDConfig holds the SGD hyperparameters.
type SGDConfig struct {
	LR       float64 // learning rate (default 0.01)
	Momentum float64 // momentum factor in [0, 1), default 0
}

// NewSGD creates an SGD optimizer.
func NewSGD[B tensor.Backend](config SGDConfig, backend B) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[B]{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[tensor.TensorID]*tensor.RawTensor),
		backend:    backend,
	}
}

// Step applies one update to every parameter of the module using the given
// gradients. Parameters with no gradient entry are left untouched and
// reported in the returned set.
func (s *SGD[B]) Step(m nn.Module[B], grads *tensor.Gradients) (*tensor.UnusedTensors, error) {
	s.grads = grads
	defer func() { s.grads = nil }()
	return nn.UpdateAll[B](m, s)
}

// UpdateParam applies the SGD rule to a single parameter in place. The
// parameter keeps its identity, so the next backward pass finds it under
// the same ID.
func (s *SGD[B]) UpdateParam(p *nn.Parameter[B], unused *tensor.UnusedTensors) error {
	grad, ok := s.grads.TryGet(p)
	if !ok {
		unused.Add(p.ID())
		return nil
	}

	raw := p.Tensor().Raw()
	if s.momentum != 0 {
		v, ok := s.velocities[p.ID()]
		if ok {
			v = s.backend.Add(s.backend.MulScalar(v, s.momentum), grad)
		} else {
			v = grad.DeepClone()
		}
		s.velocities[p.ID()] = v
		grad = v
	}
	s.backend.SubAssign(raw, s.backend.MulScalar(grad, s.lr))
	return nil
}

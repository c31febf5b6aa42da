package nn

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Parameter is a named trainable tensor. Its identity is the tensor's ID:
// the gradients produced by a backward pass are looked up by that ID, and
// in-place updates preserve it across training steps.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter wraps an initialized tensor as a trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name, e.g. "weight".
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the underlying tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// ID returns the tensor identity used to key gradients.
func (p *Parameter[B]) ID() tensor.TensorID {
	return p.tensor.ID()
}

// Shape returns the parameter shape.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}

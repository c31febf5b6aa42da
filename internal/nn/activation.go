package nn

import (
	"github.com/gradtape/gradtape/internal/ops"
	"github.com/gradtape/gradtape/internal/tensor"
)

// The activation modules are stateless wrappers around the ops package, so
// they can be dropped into Sequential next to trainable layers. Zero values
// are ready to use; each one also satisfies MutModule since there is no
// state to mutate.

// ReLU applies max(x, 0) element-wise.
type ReLU[B tensor.Backend] struct{ ZeroSized[B] }

func (ReLU[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.ReLU(x)
}

func (m ReLU[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// GeLU applies the Gaussian error linear unit (tanh approximation).
type GeLU[B tensor.Backend] struct{ ZeroSized[B] }

func (GeLU[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.GeLU(x)
}

func (m GeLU[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh[B tensor.Backend] struct{ ZeroSized[B] }

func (Tanh[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Tanh(x)
}

func (m Tanh[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Sigmoid applies 1/(1+e^-x) element-wise.
type Sigmoid[B tensor.Backend] struct{ ZeroSized[B] }

func (Sigmoid[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Sigmoid(x)
}

func (m Sigmoid[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Softmax normalizes the last axis to a probability distribution.
type Softmax[B tensor.Backend] struct{ ZeroSized[B] }

func (Softmax[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Softmax(x, -1)
}

func (m Softmax[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Square applies x*x element-wise.
type Square[B tensor.Backend] struct{ ZeroSized[B] }

func (Square[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Square(x)
}

func (m Square[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Exp applies e^x element-wise.
type Exp[B tensor.Backend] struct{ ZeroSized[B] }

func (Exp[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Exp(x)
}

func (m Exp[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Log applies the natural logarithm element-wise.
type Log[B tensor.Backend] struct{ ZeroSized[B] }

func (Log[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Log(x)
}

func (m Log[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Sin applies sin(x) element-wise.
type Sin[B tensor.Backend] struct{ ZeroSized[B] }

func (Sin[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Sin(x)
}

func (m Sin[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Cos applies cos(x) element-wise.
type Cos[B tensor.Backend] struct{ ZeroSized[B] }

func (Cos[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Cos(x)
}

func (m Cos[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Sqrt applies the element-wise square root.
type Sqrt[B tensor.Backend] struct{ ZeroSized[B] }

func (Sqrt[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Sqrt(x)
}

func (m Sqrt[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

// Abs applies |x| element-wise.
type Abs[B tensor.Backend] struct{ ZeroSized[B] }

func (Abs[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Abs(x)
}

func (m Abs[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.Forward(x)
}

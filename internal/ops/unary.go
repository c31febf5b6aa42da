package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// unary records a generic element-wise operation whose local derivative is
// computed from the saved input and output by deriv.
func unary[T tensor.Float, B tensor.Backend](
	x *tensor.Tensor[T, B],
	forward func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor,
	deriv func(b tensor.Backend, x, out, gout *tensor.RawTensor) *tensor.RawTensor,
) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	rawOut := forward(bk, x.Raw())
	out := tensor.Upgrade[T](rawOut, bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		xRaw := x.Raw()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, deriv(bk, xRaw, rawOut, gout))
			return nil
		})
	}
	return out
}

// Neg returns -x.
func Neg[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Neg(x) },
		func(b tensor.Backend, _, _, gout *tensor.RawTensor) *tensor.RawTensor {
			return b.Neg(gout)
		})
}

// Exp returns e^x. The derivative reuses the forward output.
func Exp[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Exp(x) },
		func(b tensor.Backend, _, out, gout *tensor.RawTensor) *tensor.RawTensor {
			return b.Mul(gout, out)
		})
}

// Log returns the natural logarithm of x.
func Log[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Log(x) },
		func(b tensor.Backend, x, _, gout *tensor.RawTensor) *tensor.RawTensor {
			return b.Div(gout, x)
		})
}

// Sqrt returns the element-wise square root of x.
func Sqrt[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Sqrt(x) },
		func(b tensor.Backend, _, out, gout *tensor.RawTensor) *tensor.RawTensor {
			// d(sqrt x)/dx = 1 / (2 sqrt x).
			return b.Div(gout, b.MulScalar(out, 2))
		})
}

// Rsqrt returns 1/sqrt(x) element-wise.
func Rsqrt[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Rsqrt(x) },
		func(b tensor.Backend, x, out, gout *tensor.RawTensor) *tensor.RawTensor {
			// d(x^-1/2)/dx = -1/2 x^-3/2 = -out / (2x).
			return b.Div(b.MulScalar(b.Mul(gout, out), -0.5), x)
		})
}

// Abs returns |x|. The gradient at zero is zero, following Sign.
func Abs[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Abs(x) },
		func(b tensor.Backend, x, _, gout *tensor.RawTensor) *tensor.RawTensor {
			return b.Mul(gout, b.Sign(x))
		})
}

// Sin returns sin(x).
func Sin[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Sin(x) },
		func(b tensor.Backend, x, _, gout *tensor.RawTensor) *tensor.RawTensor {
			return b.Mul(gout, b.Cos(x))
		})
}

// Cos returns cos(x).
func Cos[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Cos(x) },
		func(b tensor.Backend, x, _, gout *tensor.RawTensor) *tensor.RawTensor {
			return b.Neg(b.Mul(gout, b.Sin(x)))
		})
}

// Tanh returns tanh(x).
func Tanh[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Tanh(x) },
		func(b tensor.Backend, _, out, gout *tensor.RawTensor) *tensor.RawTensor {
			// d(tanh x)/dx = 1 - tanh^2 x.
			return b.Mul(gout, b.AddScalar(b.Neg(b.Mul(out, out)), 1))
		})
}

// Sigmoid returns 1/(1+e^-x).
func Sigmoid[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return unary(x,
		func(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor { return b.Sigmoid(x) },
		func(b tensor.Backend, _, out, gout *tensor.RawTensor) *tensor.RawTensor {
			// d(sigma x)/dx = sigma(x) (1 - sigma(x)).
			return b.Mul(gout, b.Mul(out, b.AddScalar(b.Neg(out), 1)))
		})
}

// Square returns x*x, composed from Mul so the backward pass comes from the
// product rule.
func Square[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return Mul(x, x)
}

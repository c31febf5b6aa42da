package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// ReLU returns max(x, 0), built from Greater and Choose so the backward
// pass falls out of the selection routing.
func ReLU[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	zeros := tensor.ZerosLike[T](x, x.Backend())
	mask := Greater(x, zeros.Detach())
	return Choose(mask, x, zeros)
}

// GeLU returns the Gaussian error linear unit using the tanh approximation:
//
//	0.5 x (1 + tanh(sqrt(2/pi) (x + 0.044715 x^3)))
func GeLU[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	const (
		sqrt2OverPi = 0.7978845608028654
		coeff       = 0.044715
	)
	cube := Mul(Square(x), x)
	inner := Tanh(MulScalar(Add(x, MulScalar(cube, coeff)), sqrt2OverPi))
	return MulScalar(Mul(x, AddScalar(inner, 1)), 0.5)
}

// Softmax normalizes along the given axis so the values sum to 1. The input
// is shifted by its detached per-slice maximum before exponentiation; the
// shift is constant with respect to differentiation and cancels exactly.
func Softmax[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int) *tensor.Tensor[T, B] {
	d := x.Shape().NormDim(dim)
	shift := Broadcast(MaxDim(x, d, true), x.Shape())
	e := Exp(Sub(x, shift))
	denom := Broadcast(SumDim(e, d, true), x.Shape())
	return Div(e, denom)
}

// Normalize standardizes x along the given axis to zero mean and unit
// variance: (x - mean) / sqrt(var + epsilon). Variance is the biased
// (population) estimate.
func Normalize[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, epsilon float64) *tensor.Tensor[T, B] {
	d := x.Shape().NormDim(dim)
	mean := Broadcast(MeanDim(x, d, true), x.Shape())
	centered := Sub(x, mean)
	variance := Broadcast(MeanDim(Square(centered), d, true), x.Shape())
	return Mul(centered, Rsqrt(AddScalar(variance, epsilon)))
}

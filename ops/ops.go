// Copyright 2025 The gradtape Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides the public differentiable tensor operations. Every
// operation records its backward pass on the tape carried by its inputs;
// detached inputs produce detached outputs.
package ops

import (
	"github.com/gradtape/gradtape/internal/ops"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Add returns a + b with broadcasting.
func Add[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Add(a, b)
}

// Sub returns a - b with broadcasting.
func Sub[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Sub(a, b)
}

// Mul returns the element-wise product with broadcasting.
func Mul[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Mul(a, b)
}

// Div returns the element-wise quotient with broadcasting.
func Div[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Div(a, b)
}

// Greater compares a > b element-wise, producing a detached Bool tensor.
func Greater[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[bool, B] {
	return ops.Greater(a, b)
}

// AddScalar returns x + s element-wise.
func AddScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	return ops.AddScalar(x, s)
}

// SubScalar returns x - s element-wise.
func SubScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	return ops.SubScalar(x, s)
}

// MulScalar returns x * s element-wise.
func MulScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	return ops.MulScalar(x, s)
}

// DivScalar returns x / s element-wise.
func DivScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	return ops.DivScalar(x, s)
}

// Neg returns -x.
func Neg[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Neg(x)
}

// Exp returns e^x element-wise.
func Exp[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Exp(x)
}

// Log returns the natural logarithm element-wise.
func Log[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Log(x)
}

// Sqrt returns the element-wise square root.
func Sqrt[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Sqrt(x)
}

// Rsqrt returns 1/sqrt(x) element-wise.
func Rsqrt[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Rsqrt(x)
}

// Abs returns |x| element-wise.
func Abs[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Abs(x)
}

// Sin returns sin(x) element-wise.
func Sin[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Sin(x)
}

// Cos returns cos(x) element-wise.
func Cos[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Cos(x)
}

// Tanh returns tanh(x) element-wise.
func Tanh[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Tanh(x)
}

// Sigmoid returns 1/(1+e^-x) element-wise.
func Sigmoid[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Sigmoid(x)
}

// Square returns x*x element-wise.
func Square[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Square(x)
}

// ReLU returns max(x, 0) element-wise.
func ReLU[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.ReLU(x)
}

// GeLU returns the Gaussian error linear unit (tanh approximation).
func GeLU[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.GeLU(x)
}

// Sum reduces all elements to a scalar.
func Sum[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Sum(x)
}

// Mean reduces all elements to their scalar average.
func Mean[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Mean(x)
}

// SumDim sums along one axis. dim may be negative.
func SumDim[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keep bool) *tensor.Tensor[T, B] {
	return ops.SumDim(x, dim, keep)
}

// MeanDim averages along one axis.
func MeanDim[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keep bool) *tensor.Tensor[T, B] {
	return ops.MeanDim(x, dim, keep)
}

// MaxDim takes the maximum along one axis. The result is detached.
func MaxDim[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keep bool) *tensor.Tensor[T, B] {
	return ops.MaxDim(x, dim, keep)
}

// Reshape returns a view with a new shape holding the same element count.
func Reshape[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], shape tensor.Shape) *tensor.Tensor[T, B] {
	return ops.Reshape(x, shape)
}

// Broadcast materializes x expanded to the target shape.
func Broadcast[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], shape tensor.Shape) *tensor.Tensor[T, B] {
	return ops.Broadcast(x, shape)
}

// Transpose2D swaps the axes of a rank-2 tensor.
func Transpose2D[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Transpose2D(x)
}

// MatMul multiplies two rank-2 tensors: [m,k] x [k,n] -> [m,n].
func MatMul[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.MatMul(a, b)
}

// Choose selects lhs where cond is true and rhs otherwise. The backward
// pass routes each gradient element to the branch that produced it.
func Choose[T tensor.Float, B tensor.Backend](cond *tensor.Tensor[bool, B], lhs, rhs *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return ops.Choose(cond, lhs, rhs)
}

// Gather selects rows of x along axis 0; repeated rows accumulate
// gradients.
func Gather[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], rows []int) *tensor.Tensor[T, B] {
	return ops.Gather(x, rows)
}

// Softmax normalizes the given axis to a probability distribution.
func Softmax[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int) *tensor.Tensor[T, B] {
	return ops.Softmax(x, dim)
}

// Normalize standardizes the given axis to zero mean and unit variance.
func Normalize[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, epsilon float64) *tensor.Tensor[T, B] {
	return ops.Normalize(x, dim, epsilon)
}

// Package ops implements the differentiable tensor operations. Each
// operation computes its result through backend kernels and, when any input
// carries a gradient tape, appends a backward closure to it. Closures read
// the output gradient lazily: an output that never received a gradient
// contributes nothing to its inputs.
package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// reduceToShape reduces a gradient to the given input shape, summing over
// the axes the forward pass broadcast. When the shapes already match it
// returns an independent copy so later in-place accumulation can never
// alias the output gradient.
func reduceToShape(b tensor.Backend, grad *tensor.RawTensor, target tensor.Shape) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad.DeepClone()
	}
	if target.Rank() == 0 {
		return b.Sum(grad)
	}

	// Broadcasting aligns from the right, so extra leading axes are summed
	// away first, then any axis the input held at size 1.
	res := grad
	for res.Shape().Rank() > target.Rank() {
		res = b.SumDim(res, 0, false)
	}
	for i, dim := range target {
		if dim == 1 && res.Shape()[i] > 1 {
			res = b.SumDim(res, i, true)
		}
	}
	if !res.Shape().Equal(target) {
		res = b.Reshape(res, target)
	}
	return res
}

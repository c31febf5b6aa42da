package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Sum reduces all elements to a scalar. The backward pass broadcasts the
// output gradient back over the input shape.
func Sum[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	out := tensor.Upgrade[T](bk.Sum(x.Raw()), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		xShape := x.Shape()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, bk.Expand(gout, xShape))
			return nil
		})
	}
	return out
}

// Mean reduces all elements to their scalar average.
func Mean[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	n := x.NumElements()
	return MulScalar(Sum(x), 1/float64(n))
}

// SumDim sums along one axis. dim may be negative. With keep the reduced
// axis stays as size 1, otherwise it is removed.
func SumDim[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keep bool) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	d := x.Shape().NormDim(dim)
	out := tensor.Upgrade[T](bk.SumDim(x.Raw(), d, keep), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		xShape := x.Shape()
		keptShape := keptShape(xShape, d)
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			if !keep {
				gout = bk.Reshape(gout, keptShape)
			}
			g.Accumulate(xID, bk.Expand(gout, xShape))
			return nil
		})
	}
	return out
}

// MeanDim averages along one axis.
func MeanDim[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keep bool) *tensor.Tensor[T, B] {
	d := x.Shape().NormDim(dim)
	return MulScalar(SumDim(x, d, keep), 1/float64(x.Shape()[d]))
}

// MaxDim takes the maximum along one axis. The result is detached: it acts
// as a constant during differentiation, which is the role it plays in
// numerically stable shifts like the one inside Softmax.
func MaxDim[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keep bool) *tensor.Tensor[T, B] {
	bk := x.Backend()
	return tensor.Upgrade[T](bk.MaxDim(x.Raw(), x.Shape().NormDim(dim), keep), bk, nil)
}

// keptShape is a shape with axis d collapsed to 1.
func keptShape(s tensor.Shape, d int) tensor.Shape {
	out := s.Clone()
	out[d] = 1
	return out
}

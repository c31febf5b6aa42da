package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Reshape returns a view of x with a new shape holding the same element
// count. The backward pass reshapes the gradient back.
func Reshape[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], shape tensor.Shape) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	out := tensor.Upgrade[T](bk.Reshape(x.Raw(), shape), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		xShape := x.Shape()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, bk.Reshape(gout.DeepClone(), xShape))
			return nil
		})
	}
	return out
}

// Broadcast materializes x expanded to the target shape. The backward pass
// sums the gradient over the broadcast axes.
func Broadcast[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], shape tensor.Shape) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	out := tensor.Upgrade[T](bk.Expand(x.Raw(), shape), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		xShape := x.Shape()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, reduceToShape(bk, gout, xShape))
			return nil
		})
	}
	return out
}

// Transpose2D swaps the axes of a rank-2 tensor.
func Transpose2D[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	out := tensor.Upgrade[T](bk.Transpose2D(x.Raw()), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, bk.Transpose2D(gout))
			return nil
		})
	}
	return out
}

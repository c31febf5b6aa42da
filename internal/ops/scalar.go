package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// AddScalar returns x + s element-wise.
func AddScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	out := tensor.Upgrade[T](bk.AddScalar(x.Raw(), s), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, gout.DeepClone())
			return nil
		})
	}
	return out
}

// SubScalar returns x - s element-wise.
func SubScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	return AddScalar(x, -s)
}

// MulScalar returns x * s element-wise.
func MulScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	out := tensor.Upgrade[T](bk.MulScalar(x.Raw(), s), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(xID, bk.MulScalar(gout, s))
			return nil
		})
	}
	return out
}

// DivScalar returns x / s element-wise.
func DivScalar[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], s float64) *tensor.Tensor[T, B] {
	return MulScalar(x, 1/s)
}

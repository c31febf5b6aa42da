package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// MatMul multiplies two rank-2 tensors: [m,k] x [k,n] -> [m,n].
//
// Backward:
//
//	grad_a = grad_out x b^T
//	grad_b = a^T x grad_out
func MatMul[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := a.Backend()
	tape := tensor.MergeTapes(a.Tape(), b.Tape())
	out := tensor.Upgrade[T](bk.MatMul(a.Raw(), b.Raw()), bk, tape)
	if tape != nil {
		aID, bID, outID := a.ID(), b.ID(), out.ID()
		aRaw, bRaw := a.Raw(), b.Raw()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(aID, bk.MatMul(gout, bk.Transpose2D(bRaw)))
			g.Accumulate(bID, bk.MatMul(bk.Transpose2D(aRaw), gout))
			return nil
		})
	}
	return out
}

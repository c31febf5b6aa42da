package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Gather selects rows of x along axis 0 in the given order. Rows may
// repeat. The backward pass scatter-adds the gradient rows back, so
// repeated rows accumulate.
func Gather[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], rows []int) *tensor.Tensor[T, B] {
	bk := x.Backend()
	tape := x.Tape()
	rowsCopy := append([]int(nil), rows...)
	out := tensor.Upgrade[T](bk.Gather(x.Raw(), rowsCopy), bk, tape)
	if tape != nil {
		xID, outID := x.ID(), out.ID()
		xRaw := x.Raw()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			gx, err := g.OrAlloc(xID, xRaw)
			if err != nil {
				return err
			}
			bk.ScatterAddRows(gx, rowsCopy, gout)
			return nil
		})
	}
	return out
}

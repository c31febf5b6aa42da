package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Choose selects lhs[i] where cond[i] is true and rhs[i] otherwise. All
// three shapes must be identical.
//
// The backward pass routes each output gradient element to exactly one
// input: the branch that produced it. The other branch receives a zero
// contribution, not an absent one, so both inputs always end up with an
// entry in the gradients map.
func Choose[T tensor.Float, B tensor.Backend](cond *tensor.Tensor[bool, B], lhs, rhs *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := lhs.Backend()
	tape := tensor.MergeTapes(lhs.Tape(), rhs.Tape())
	condRaw := cond.Raw()
	out := tensor.Upgrade[T](bk.Choose(condRaw, lhs.Raw(), rhs.Raw()), bk, tape)
	if tape != nil {
		lhsID, rhsID, outID := lhs.ID(), rhs.ID(), out.ID()
		lhsRaw, rhsRaw := lhs.Raw(), rhs.Raw()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			gl, err := g.OrAlloc(lhsID, lhsRaw)
			if err != nil {
				return err
			}
			gr, err := g.OrAlloc(rhsID, rhsRaw)
			if err != nil {
				return err
			}
			bk.ChooseBackward(condRaw, gl, gr, gout)
			return nil
		})
	}
	return out
}

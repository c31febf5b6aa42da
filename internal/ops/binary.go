package ops

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Add returns a + b with NumPy-style broadcasting. The gradient flows
// unchanged to both inputs, reduced over any broadcast axes.
func Add[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := a.Backend()
	tape := tensor.MergeTapes(a.Tape(), b.Tape())
	out := tensor.Upgrade[T](bk.Add(a.Raw(), b.Raw()), bk, tape)
	if tape != nil {
		aID, bID, outID := a.ID(), b.ID(), out.ID()
		aShape, bShape := a.Shape(), b.Shape()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(aID, reduceToShape(bk, gout, aShape))
			g.Accumulate(bID, reduceToShape(bk, gout, bShape))
			return nil
		})
	}
	return out
}

// Sub returns a - b with broadcasting.
func Sub[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := a.Backend()
	tape := tensor.MergeTapes(a.Tape(), b.Tape())
	out := tensor.Upgrade[T](bk.Sub(a.Raw(), b.Raw()), bk, tape)
	if tape != nil {
		aID, bID, outID := a.ID(), b.ID(), out.ID()
		aShape, bShape := a.Shape(), b.Shape()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(aID, reduceToShape(bk, gout, aShape))
			g.Accumulate(bID, reduceToShape(bk, bk.Neg(gout), bShape))
			return nil
		})
	}
	return out
}

// Mul returns the element-wise product a * b with broadcasting.
func Mul[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := a.Backend()
	tape := tensor.MergeTapes(a.Tape(), b.Tape())
	out := tensor.Upgrade[T](bk.Mul(a.Raw(), b.Raw()), bk, tape)
	if tape != nil {
		aID, bID, outID := a.ID(), b.ID(), out.ID()
		aRaw, bRaw := a.Raw(), b.Raw()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			g.Accumulate(aID, reduceToShape(bk, bk.Mul(gout, bRaw), aRaw.Shape()))
			g.Accumulate(bID, reduceToShape(bk, bk.Mul(gout, aRaw), bRaw.Shape()))
			return nil
		})
	}
	return out
}

// Div returns the element-wise quotient a / b with broadcasting.
func Div[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bk := a.Backend()
	tape := tensor.MergeTapes(a.Tape(), b.Tape())
	rawOut := bk.Div(a.Raw(), b.Raw())
	out := tensor.Upgrade[T](rawOut, bk, tape)
	if tape != nil {
		aID, bID, outID := a.ID(), b.ID(), out.ID()
		aRaw, bRaw := a.Raw(), b.Raw()
		tape.Append(func(g *tensor.Gradients) error {
			gout, ok := g.ByID(outID)
			if !ok {
				return nil
			}
			// d(a/b)/da = 1/b, d(a/b)/db = -a/b^2 = -(a/b)/b.
			g.Accumulate(aID, reduceToShape(bk, bk.Div(gout, bRaw), aRaw.Shape()))
			gb := bk.Neg(bk.Div(bk.Mul(gout, rawOut), bRaw))
			g.Accumulate(bID, reduceToShape(bk, gb, bRaw.Shape()))
			return nil
		})
	}
	return out
}

// Greater compares a > b element-wise with broadcasting, producing a Bool
// tensor. Comparison is not differentiable; the result carries no tape.
func Greater[T tensor.Float, B tensor.Backend](a, b *tensor.Tensor[T, B]) *tensor.Tensor[bool, B] {
	bk := a.Backend()
	return tensor.Upgrade[bool](bk.Greater(a.Raw(), b.Raw()), bk, nil)
}

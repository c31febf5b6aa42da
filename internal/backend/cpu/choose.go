package cpu

import (
	"fmt"

	"github.com/gradtape/gradtape/internal/parallel"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Choose selects elementwise between lhs and rhs based on cond. All three
// tensors must share the same shape and cond must be Bool.
func (d *Device) Choose(cond, lhs, rhs *tensor.RawTensor) *tensor.RawTensor {
	if cond.DType() != tensor.Bool {
		panic(fmt.Sprintf("choose: condition must be Bool, got %s", cond.DType()))
	}
	mustSameDType("choose", lhs, rhs)
	mustSameShape("choose", cond, lhs)
	mustSameShape("choose", lhs, rhs)

	out := d.newRaw(lhs.Shape(), lhs.DType())
	cd := cond.AsBool()

	switch lhs.DType() {
	case tensor.Float32:
		ld, rd, od := lhs.AsFloat32(), rhs.AsFloat32(), out.AsFloat32()
		parallel.Ranges(len(od), d.par, func(start, end int) {
			for i := start; i < end; i++ {
				if cd[i] {
					od[i] = ld[i]
				} else {
					od[i] = rd[i]
				}
			}
		})
	case tensor.Float64:
		ld, rd, od := lhs.AsFloat64(), rhs.AsFloat64(), out.AsFloat64()
		parallel.Ranges(len(od), d.par, func(start, end int) {
			for i := start; i < end; i++ {
				if cd[i] {
					od[i] = ld[i]
				} else {
					od[i] = rd[i]
				}
			}
		})
	case tensor.Bool:
		ld, rd, od := lhs.AsBool(), rhs.AsBool(), out.AsBool()
		for i := range od {
			if cd[i] {
				od[i] = ld[i]
			} else {
				od[i] = rd[i]
			}
		}
	}
	return out
}

// ChooseBackward routes the output gradient additively into gradLhs where cond
// is true and into gradRhs where it is false. The gradient buffers are
// mutated in place.
func (d *Device) ChooseBackward(cond, gradLhs, gradRhs, gradOut *tensor.RawTensor) {
	if cond.DType() != tensor.Bool {
		panic(fmt.Sprintf("choose backward: condition must be Bool, got %s", cond.DType()))
	}
	mustSameDType("choose backward", gradLhs, gradOut)
	mustSameDType("choose backward", gradRhs, gradOut)
	mustSameShape("choose backward", cond, gradOut)
	mustSameShape("choose backward", gradLhs, gradOut)
	mustSameShape("choose backward", gradRhs, gradOut)
	mustFloat("choose backward", gradOut)

	cd := cond.AsBool()
	switch gradOut.DType() {
	case tensor.Float32:
		gl, gr, gd := gradLhs.AsFloat32(), gradRhs.AsFloat32(), gradOut.AsFloat32()
		parallel.Ranges(len(gd), d.par, func(start, end int) {
			for i := start; i < end; i++ {
				if cd[i] {
					gl[i] += gd[i]
				} else {
					gr[i] += gd[i]
				}
			}
		})
	case tensor.Float64:
		gl, gr, gd := gradLhs.AsFloat64(), gradRhs.AsFloat64(), gradOut.AsFloat64()
		parallel.Ranges(len(gd), d.par, func(start, end int) {
			for i := start; i < end; i++ {
				if cd[i] {
					gl[i] += gd[i]
				} else {
					gr[i] += gd[i]
				}
			}
		})
	}
}

package cpu

import (
	"fmt"

	"github.com/gradtape/gradtape/internal/tensor"
)

// Gather selects rows along axis 0. The result shape replaces the leading
// dimension of x with len(rows).
func (d *Device) Gather(x *tensor.RawTensor, rows []int) *tensor.RawTensor {
	if x.Shape().Rank() == 0 {
		panic("gather: cannot gather from a scalar")
	}
	numRows := x.Shape()[0]
	rowLen := x.Shape().NumElements() / max(numRows, 1)
	for _, r := range rows {
		if r < 0 || r >= numRows {
			panic(fmt.Sprintf("gather: row index %d out of range [0, %d)", r, numRows))
		}
	}

	outShape := append(tensor.Shape{len(rows)}, x.Shape()[1:]...)
	out := d.newRaw(outShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		xd, od := x.AsFloat32(), out.AsFloat32()
		for i, r := range rows {
			copy(od[i*rowLen:(i+1)*rowLen], xd[r*rowLen:(r+1)*rowLen])
		}
	case tensor.Float64:
		xd, od := x.AsFloat64(), out.AsFloat64()
		for i, r := range rows {
			copy(od[i*rowLen:(i+1)*rowLen], xd[r*rowLen:(r+1)*rowLen])
		}
	case tensor.Bool:
		xd, od := x.AsBool(), out.AsBool()
		for i, r := range rows {
			copy(od[i*rowLen:(i+1)*rowLen], xd[r*rowLen:(r+1)*rowLen])
		}
	}
	return out
}

// ScatterAddRows adds each row of src into dst at the row index given by
// rows. dst is mutated in place. Duplicate indices accumulate.
func (d *Device) ScatterAddRows(dst *tensor.RawTensor, rows []int, src *tensor.RawTensor) {
	mustSameDType("scatter add", dst, src)
	mustFloat("scatter add", dst)
	if src.Shape().Rank() == 0 || src.Shape()[0] != len(rows) {
		panic(fmt.Sprintf("scatter add: source shape %v does not match %d rows", src.Shape(), len(rows)))
	}
	numRows := dst.Shape()[0]
	rowLen := dst.Shape().NumElements() / max(numRows, 1)
	if src.Shape().NumElements() != len(rows)*rowLen {
		panic(fmt.Sprintf("scatter add: source shape %v incompatible with destination %v", src.Shape(), dst.Shape()))
	}

	switch dst.DType() {
	case tensor.Float32:
		dd, sd := dst.AsFloat32(), src.AsFloat32()
		for i, r := range rows {
			if r < 0 || r >= numRows {
				panic(fmt.Sprintf("scatter add: row index %d out of range [0, %d)", r, numRows))
			}
			drow, srow := dd[r*rowLen:(r+1)*rowLen], sd[i*rowLen:(i+1)*rowLen]
			for j := range srow {
				drow[j] += srow[j]
			}
		}
	case tensor.Float64:
		dd, sd := dst.AsFloat64(), src.AsFloat64()
		for i, r := range rows {
			if r < 0 || r >= numRows {
				panic(fmt.Sprintf("scatter add: row index %d out of range [0, %d)", r, numRows))
			}
			drow, srow := dd[r*rowLen:(r+1)*rowLen], sd[i*rowLen:(i+1)*rowLen]
			for j := range srow {
				drow[j] += srow[j]
			}
		}
	}
}

package cpu

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gradtape/gradtape/internal/tensor"
)

// Sum reduces the whole tensor to a scalar (shape {}).
func (d *Device) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	mustFloat("sum", x)
	out := d.newRaw(tensor.Shape{}, x.DType())
	switch x.DType() {
	case tensor.Float32:
		var acc float32
		for _, v := range x.AsFloat32() {
			acc += v
		}
		out.AsFloat32()[0] = acc
	case tensor.Float64:
		var acc float64
		for _, v := range x.AsFloat64() {
			acc += v
		}
		out.AsFloat64()[0] = acc
	}
	return out
}

// SumDim sums along one axis.
func (d *Device) SumDim(x *tensor.RawTensor, dim int, keep bool) *tensor.RawTensor {
	mustFloat("sum-dim", x)
	dd := x.Shape().NormDim(dim)
	outer, n, inner := reduceGeometry(x.Shape(), dd)
	out := d.newRaw(reducedShape(x.Shape(), dd, keep), x.DType())

	switch x.DType() {
	case tensor.Float32:
		xd, od := x.AsFloat32(), out.AsFloat32()
		for o := 0; o < outer; o++ {
			for in := 0; in < inner; in++ {
				var acc float32
				for k := 0; k < n; k++ {
					acc += xd[(o*n+k)*inner+in]
				}
				od[o*inner+in] = acc
			}
		}
	case tensor.Float64:
		xd, od := x.AsFloat64(), out.AsFloat64()
		for o := 0; o < outer; o++ {
			for in := 0; in < inner; in++ {
				var acc float64
				for k := 0; k < n; k++ {
					acc += xd[(o*n+k)*inner+in]
				}
				od[o*inner+in] = acc
			}
		}
	}
	return out
}

// MeanDim averages along one axis.
func (d *Device) MeanDim(x *tensor.RawTensor, dim int, keep bool) *tensor.RawTensor {
	dd := x.Shape().NormDim(dim)
	return d.MulScalar(d.SumDim(x, dim, keep), 1/float64(x.Shape()[dd]))
}

// MaxDim takes the maximum along one axis.
func (d *Device) MaxDim(x *tensor.RawTensor, dim int, keep bool) *tensor.RawTensor {
	mustFloat("max-dim", x)
	dd := x.Shape().NormDim(dim)
	outer, n, inner := reduceGeometry(x.Shape(), dd)
	out := d.newRaw(reducedShape(x.Shape(), dd, keep), x.DType())

	switch x.DType() {
	case tensor.Float32:
		xd, od := x.AsFloat32(), out.AsFloat32()
		for o := 0; o < outer; o++ {
			for in := 0; in < inner; in++ {
				best := float32(math32.Inf(-1))
				for k := 0; k < n; k++ {
					if v := xd[(o*n+k)*inner+in]; v > best {
						best = v
					}
				}
				od[o*inner+in] = best
			}
		}
	case tensor.Float64:
		xd, od := x.AsFloat64(), out.AsFloat64()
		for o := 0; o < outer; o++ {
			for in := 0; in < inner; in++ {
				best := math.Inf(-1)
				for k := 0; k < n; k++ {
					if v := xd[(o*n+k)*inner+in]; v > best {
						best = v
					}
				}
				od[o*inner+in] = best
			}
		}
	}
	return out
}

package cpu

import (
	"fmt"

	"gorgonia.org/vecf32"
	"gorgonia.org/vecf64"

	"github.com/gradtape/gradtape/internal/parallel"
	"github.com/gradtape/gradtape/internal/tensor"
)

// binaryOp runs an element-wise binary kernel with broadcasting. Same-shape
// operands take the vectorized path; broadcast operands fall back to a
// strided loop split across workers.
func (d *Device) binaryOp(
	name string,
	a, b *tensor.RawTensor,
	vec32 func(dst, src []float32),
	vec64 func(dst, src []float64),
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	mustSameDType(name, a, b)
	mustFloat(name, a)

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if a.Shape().Equal(b.Shape()) {
		out := d.copyOf(a)
		switch a.DType() {
		case tensor.Float32:
			vec32(out.AsFloat32(), b.AsFloat32())
		case tensor.Float64:
			vec64(out.AsFloat64(), b.AsFloat64())
		}
		return out
	}

	out := d.newRaw(outShape, a.DType())
	n := outShape.NumElements()
	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := aShape.ComputeStrides(), bShape.ComputeStrides()

	switch a.DType() {
	case tensor.Float32:
		ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
		parallel.Ranges(n, d.par, func(start, end int) {
			for i := start; i < end; i++ {
				od[i] = f32(ad[srcIndex(i, outShape, aShape, aStrides)], bd[srcIndex(i, outShape, bShape, bStrides)])
			}
		})
	case tensor.Float64:
		ad, bd, od := a.AsFloat64(), b.AsFloat64(), out.AsFloat64()
		parallel.Ranges(n, d.par, func(start, end int) {
			for i := start; i < end; i++ {
				od[i] = f64(ad[srcIndex(i, outShape, aShape, aStrides)], bd[srcIndex(i, outShape, bShape, bStrides)])
			}
		})
	}
	return out
}

// Add performs element-wise addition with broadcasting.
func (d *Device) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return d.binaryOp("add", a, b, vecf32.Add, vecf64.Add,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (d *Device) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return d.binaryOp("sub", a, b, vecf32.Sub, vecf64.Sub,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (d *Device) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return d.binaryOp("mul", a, b, vecf32.Mul, vecf64.Mul,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (d *Device) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return d.binaryOp("div", a, b, vecf32.Div, vecf64.Div,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// SubAssign subtracts delta from dst in place. Used by parameter updates,
// where the buffer's identity must survive the write.
func (d *Device) SubAssign(dst, delta *tensor.RawTensor) {
	mustSameDType("sub-assign", dst, delta)
	mustSameShape("sub-assign", dst, delta)
	mustFloat("sub-assign", dst)
	switch dst.DType() {
	case tensor.Float32:
		vecf32.Sub(dst.AsFloat32(), delta.AsFloat32())
	case tensor.Float64:
		vecf64.Sub(dst.AsFloat64(), delta.AsFloat64())
	}
}

// AddScalar adds a scalar to every element.
func (d *Device) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	mustFloat("add-scalar", x)
	out := d.copyOf(x)
	switch x.DType() {
	case tensor.Float32:
		vecf32.Trans(out.AsFloat32(), float32(s))
	case tensor.Float64:
		vecf64.Trans(out.AsFloat64(), s)
	}
	return out
}

// MulScalar multiplies every element by a scalar.
func (d *Device) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	mustFloat("mul-scalar", x)
	out := d.copyOf(x)
	switch x.DType() {
	case tensor.Float32:
		vecf32.Scale(out.AsFloat32(), float32(s))
	case tensor.Float64:
		vecf64.Scale(out.AsFloat64(), s)
	}
	return out
}

// Greater compares element-wise with broadcasting, producing a Bool tensor.
func (d *Device) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	mustSameDType("greater", a, b)
	mustFloat("greater", a)

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("greater: %v", err))
	}
	out := d.newRaw(outShape, tensor.Bool)
	od := out.AsBool()
	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := aShape.ComputeStrides(), bShape.ComputeStrides()

	switch a.DType() {
	case tensor.Float32:
		ad, bd := a.AsFloat32(), b.AsFloat32()
		for i := range od {
			od[i] = ad[srcIndex(i, outShape, aShape, aStrides)] > bd[srcIndex(i, outShape, bShape, bStrides)]
		}
	case tensor.Float64:
		ad, bd := a.AsFloat64(), b.AsFloat64()
		for i := range od {
			od[i] = ad[srcIndex(i, outShape, aShape, aStrides)] > bd[srcIndex(i, outShape, bShape, bStrides)]
		}
	}
	return out
}

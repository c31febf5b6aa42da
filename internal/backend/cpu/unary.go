package cpu

import (
	"math"

	"github.com/chewxy/math32"
	"gorgonia.org/vecf32"
	"gorgonia.org/vecf64"

	"github.com/gradtape/gradtape/internal/parallel"
	"github.com/gradtape/gradtape/internal/tensor"
)

// unaryOp applies f element-wise into a fresh buffer.
func (d *Device) unaryOp(
	name string,
	x *tensor.RawTensor,
	f32 func(float32) float32,
	f64 func(float64) float64,
) *tensor.RawTensor {
	mustFloat(name, x)
	out := d.newRaw(x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		xd, od := x.AsFloat32(), out.AsFloat32()
		parallel.Ranges(len(xd), d.par, func(start, end int) {
			for i := start; i < end; i++ {
				od[i] = f32(xd[i])
			}
		})
	case tensor.Float64:
		xd, od := x.AsFloat64(), out.AsFloat64()
		parallel.Ranges(len(xd), d.par, func(start, end int) {
			for i := start; i < end; i++ {
				od[i] = f64(xd[i])
			}
		})
	}
	return out
}

// Neg negates every element.
func (d *Device) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("neg", x,
		func(v float32) float32 { return -v },
		func(v float64) float64 { return -v })
}

// Exp computes the element-wise exponential.
func (d *Device) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("exp", x, math32.Exp, math.Exp)
}

// Log computes the element-wise natural logarithm.
func (d *Device) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("log", x, math32.Log, math.Log)
}

// Sqrt computes the element-wise square root.
func (d *Device) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	mustFloat("sqrt", x)
	out := d.copyOf(x)
	switch x.DType() {
	case tensor.Float32:
		vecf32.Sqrt(out.AsFloat32())
	case tensor.Float64:
		vecf64.Sqrt(out.AsFloat64())
	}
	return out
}

// Rsqrt computes the element-wise reciprocal square root.
func (d *Device) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	mustFloat("rsqrt", x)
	out := d.copyOf(x)
	switch x.DType() {
	case tensor.Float32:
		vecf32.InvSqrt(out.AsFloat32())
	case tensor.Float64:
		vecf64.InvSqrt(out.AsFloat64())
	}
	return out
}

// Abs computes the element-wise absolute value.
func (d *Device) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("abs", x, math32.Abs, math.Abs)
}

// Sign computes the element-wise sign: -1, 0 or 1.
func (d *Device) Sign(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("sign", x,
		func(v float32) float32 {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			default:
				return 0
			}
		},
		func(v float64) float64 {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			default:
				return 0
			}
		})
}

// Sin computes the element-wise sine.
func (d *Device) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("sin", x, math32.Sin, math.Sin)
}

// Cos computes the element-wise cosine.
func (d *Device) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("cos", x, math32.Cos, math.Cos)
}

// Tanh computes the element-wise hyperbolic tangent.
func (d *Device) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("tanh", x, math32.Tanh, math.Tanh)
}

// Sigmoid computes the element-wise logistic function.
func (d *Device) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return d.unaryOp("sigmoid", x,
		func(v float32) float32 { return 1 / (1 + math32.Exp(-v)) },
		func(v float64) float64 { return 1 / (1 + math.Exp(-v)) })
}

package cpu

import (
	"fmt"

	"github.com/gradtape/gradtape/internal/parallel"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Reshape returns a view sharing the buffer with a new shape. Panics if the
// element count changes.
func (d *Device) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return x.Reshaped(shape)
}

// Transpose2D swaps the two axes of a rank-2 tensor.
func (d *Device) Transpose2D(x *tensor.RawTensor) *tensor.RawTensor {
	if x.Shape().Rank() != 2 {
		panic(fmt.Sprintf("transpose: requires a rank-2 tensor, got shape %v", x.Shape()))
	}
	m, n := x.Shape()[0], x.Shape()[1]
	out := d.newRaw(tensor.Shape{n, m}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		xd, od := x.AsFloat32(), out.AsFloat32()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				od[j*m+i] = xd[i*n+j]
			}
		}
	case tensor.Float64:
		xd, od := x.AsFloat64(), out.AsFloat64()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				od[j*m+i] = xd[i*n+j]
			}
		}
	case tensor.Bool:
		xd, od := x.AsBool(), out.AsBool()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				od[j*m+i] = xd[i*n+j]
			}
		}
	}
	return out
}

// Expand materializes x broadcast to the target shape. Each axis of x,
// right-aligned against target, must either match or be 1.
func (d *Device) Expand(x *tensor.RawTensor, target tensor.Shape) *tensor.RawTensor {
	src := x.Shape()
	if len(src) > len(target) {
		panic(fmt.Sprintf("expand: shape %v has higher rank than target %v", src, target))
	}
	offset := len(target) - len(src)
	for i, dim := range src {
		if dim != target[offset+i] && dim != 1 {
			panic(fmt.Sprintf("expand: shape %v is not expandable to %v (axis %d)", src, target, offset+i))
		}
	}

	out := d.newRaw(target, x.DType())
	n := target.NumElements()
	strides := src.ComputeStrides()

	switch x.DType() {
	case tensor.Float32:
		xd, od := x.AsFloat32(), out.AsFloat32()
		parallel.Ranges(n, d.par, func(start, end int) {
			for i := start; i < end; i++ {
				od[i] = xd[srcIndex(i, target, src, strides)]
			}
		})
	case tensor.Float64:
		xd, od := x.AsFloat64(), out.AsFloat64()
		parallel.Ranges(n, d.par, func(start, end int) {
			for i := start; i < end; i++ {
				od[i] = xd[srcIndex(i, target, src, strides)]
			}
		})
	case tensor.Bool:
		xd, od := x.AsBool(), out.AsBool()
		for i := range od {
			od[i] = xd[srcIndex(i, target, src, strides)]
		}
	}
	return out
}

package cpu

import (
	"fmt"

	"github.com/gradtape/gradtape/internal/tensor"
)

// srcIndex maps a flat index in the broadcast output to the flat index of
// the corresponding element in src. Axes of size 1 (or missing leading
// axes) contribute nothing.
func srcIndex(flat int, outShape, src tensor.Shape, srcStrides []int) int {
	idx := 0
	rem := flat
	offset := len(outShape) - len(src)
	for d := len(outShape) - 1; d >= 0; d-- {
		coord := rem % outShape[d]
		rem /= outShape[d]
		if sd := d - offset; sd >= 0 && src[sd] != 1 {
			idx += coord * srcStrides[sd]
		}
	}
	return idx
}

// mustSameDType panics unless both operands share an element type.
func mustSameDType(name string, a, b *tensor.RawTensor) {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: mixed element types %s and %s", name, a.DType(), b.DType()))
	}
}

// mustFloat panics unless the operand has a float element type.
func mustFloat(name string, x *tensor.RawTensor) {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("%s: requires a float tensor, got %s", name, x.DType()))
	}
}

// mustSameShape panics unless both operands share a shape.
func mustSameShape(name string, a, b *tensor.RawTensor) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", name, a.Shape(), b.Shape()))
	}
}

// copyOf allocates a new buffer holding the same elements as x.
func (d *Device) copyOf(x *tensor.RawTensor) *tensor.RawTensor {
	out := d.newRaw(x.Shape(), x.DType())
	copy(out.Bytes(), x.Bytes())
	return out
}

// reduceGeometry splits a shape around axis d into the product of the
// leading axes, the reduced extent, and the product of the trailing axes.
func reduceGeometry(shape tensor.Shape, d int) (outer, n, inner int) {
	outer, n, inner = 1, shape[d], 1
	for i := 0; i < d; i++ {
		outer *= shape[i]
	}
	for i := d + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, n, inner
}

// reducedShape drops or keeps axis d of shape as size 1.
func reducedShape(shape tensor.Shape, d int, keep bool) tensor.Shape {
	if keep {
		out := shape.Clone()
		out[d] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:d]...)
	out = append(out, shape[d+1:]...)
	return out
}

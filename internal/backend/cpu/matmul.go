package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/gradtape/gradtape/internal/tensor"
)

// MatMul multiplies two rank-2 tensors [m,k] x [k,n] -> [m,n] using gonum's
// BLAS routines.
func (d *Device) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	mustSameDType("matmul", a, b)
	mustFloat("matmul", a)
	if a.Shape().Rank() != 2 || b.Shape().Rank() != 2 {
		panic(fmt.Sprintf("matmul: requires rank-2 tensors, got %v and %v", a.Shape(), b.Shape()))
	}
	m, k := a.Shape()[0], a.Shape()[1]
	k2, n := b.Shape()[0], b.Shape()[1]
	if k != k2 {
		panic(fmt.Sprintf("matmul: inner dimensions mismatch, %v x %v", a.Shape(), b.Shape()))
	}

	out := d.newRaw(tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		ga := blas32.General{Rows: m, Cols: k, Stride: max(k, 1), Data: a.AsFloat32()}
		gb := blas32.General{Rows: k, Cols: n, Stride: max(n, 1), Data: b.AsFloat32()}
		gc := blas32.General{Rows: m, Cols: n, Stride: max(n, 1), Data: out.AsFloat32()}
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
	case tensor.Float64:
		ga := blas64.General{Rows: m, Cols: k, Stride: max(k, 1), Data: a.AsFloat64()}
		gb := blas64.General{Rows: k, Cols: n, Stride: max(n, 1), Data: b.AsFloat64()}
		gc := blas64.General{Rows: m, Cols: n, Stride: max(n, 1), Data: out.AsFloat64()}
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
	}
	return out
}

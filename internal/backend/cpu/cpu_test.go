package cpu_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gradtape/gradtape/internal/backend/cpu"
	"github.com/gradtape/gradtape/internal/tensor"
)

func raw32(t *testing.T, d *cpu.Device, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := d.TryNewRaw(shape, tensor.Float32)
	if err != nil {
		t.Fatal(err)
	}
	copy(r.AsFloat32(), data)
	return r
}

func rawBool(t *testing.T, d *cpu.Device, data []bool, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := d.TryNewRaw(shape, tensor.Bool)
	if err != nil {
		t.Fatal(err)
	}
	copy(r.AsBool(), data)
	return r
}

func TestAllocLimit(t *testing.T) {
	d := cpu.New(cpu.WithAllocLimit(64))

	if _, err := d.TryNewRaw(tensor.Shape{4, 4}, tensor.Float32); err != nil {
		t.Errorf("64-byte allocation under a 64-byte limit failed: %v", err)
	}

	_, err := d.TryNewRaw(tensor.Shape{4, 5}, tensor.Float32)
	if !errors.Is(err, tensor.ErrOutOfMemory) {
		t.Errorf("error = %v, want ErrOutOfMemory", err)
	}
}

func TestFills(t *testing.T) {
	d := cpu.New()
	r, _ := d.TryNewRaw(tensor.Shape{5}, tensor.Float32)

	d.FillOnes(r)
	for _, v := range r.AsFloat32() {
		if v != 1 {
			t.Fatalf("FillOnes: got %v", v)
		}
	}
	d.FillZeros(r)
	for _, v := range r.AsFloat32() {
		if v != 0 {
			t.Fatalf("FillZeros: got %v", v)
		}
	}

	b, _ := d.TryNewRaw(tensor.Shape{3}, tensor.Bool)
	d.FillOnes(b)
	for _, v := range b.AsBool() {
		if !v {
			t.Fatal("FillOnes on Bool: got false")
		}
	}
}

func TestRandomU64Unique(t *testing.T) {
	d := cpu.New()
	a, b := d.RandomU64(), d.RandomU64()
	if a == b {
		t.Error("two draws returned the same value")
	}
}

func TestBinaryOpsSameShape(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3, 4}, tensor.Shape{4})
	b := raw32(t, d, []float32{10, 20, 30, 40}, tensor.Shape{4})

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float32
	}{
		{"add", d.Add(a, b), []float32{11, 22, 33, 44}},
		{"sub", d.Sub(b, a), []float32{9, 18, 27, 36}},
		{"mul", d.Mul(a, b), []float32{10, 40, 90, 160}},
		{"div", d.Div(b, a), []float32{10, 10, 10, 10}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.got.AsFloat32()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestBinaryBroadcast(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	row := raw32(t, d, []float32{10, 20, 30}, tensor.Shape{3})
	col := raw32(t, d, []float32{100, 200}, tensor.Shape{2, 1})

	got := d.Add(a, row)
	want := []float32{11, 22, 33, 14, 25, 36}
	if diff := cmp.Diff(want, got.AsFloat32()); diff != "" {
		t.Errorf("row broadcast mismatch (-want +got):\n%s", diff)
	}

	got = d.Add(a, col)
	want = []float32{101, 102, 103, 204, 205, 206}
	if diff := cmp.Diff(want, got.AsFloat32()); diff != "" {
		t.Errorf("column broadcast mismatch (-want +got):\n%s", diff)
	}
}

func TestSubAssign(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{5, 5, 5}, tensor.Shape{3})
	b := raw32(t, d, []float32{1, 2, 3}, tensor.Shape{3})
	d.SubAssign(a, b)
	if diff := cmp.Diff([]float32{4, 3, 2}, a.AsFloat32()); diff != "" {
		t.Errorf("SubAssign mismatch (-want +got):\n%s", diff)
	}
}

func TestScalarOps(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3}, tensor.Shape{3})

	if diff := cmp.Diff([]float32{3, 4, 5}, d.AddScalar(a, 2).AsFloat32()); diff != "" {
		t.Errorf("AddScalar mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{2, 4, 6}, d.MulScalar(a, 2).AsFloat32()); diff != "" {
		t.Errorf("MulScalar mismatch (-want +got):\n%s", diff)
	}
	// Input untouched.
	if diff := cmp.Diff([]float32{1, 2, 3}, a.AsFloat32()); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestUnaryOps(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{4, 9, 16}, tensor.Shape{3})

	if diff := cmp.Diff([]float32{2, 3, 4}, d.Sqrt(a).AsFloat32()); diff != "" {
		t.Errorf("Sqrt mismatch (-want +got):\n%s", diff)
	}

	rs := d.Rsqrt(a).AsFloat32()
	for i, want := range []float32{0.5, 1.0 / 3, 0.25} {
		if math.Abs(float64(rs[i]-want)) > 1e-6 {
			t.Errorf("Rsqrt[%d] = %v, want %v", i, rs[i], want)
		}
	}

	s := raw32(t, d, []float32{-2, 0, 3}, tensor.Shape{3})
	if diff := cmp.Diff([]float32{-1, 0, 1}, d.Sign(s).AsFloat32()); diff != "" {
		t.Errorf("Sign mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{2, 0, 3}, d.Abs(s).AsFloat32()); diff != "" {
		t.Errorf("Abs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{2, 0, -3}, d.Neg(s).AsFloat32()); diff != "" {
		t.Errorf("Neg mismatch (-want +got):\n%s", diff)
	}

	sig := d.Sigmoid(raw32(t, d, []float32{0}, tensor.Shape{1})).AsFloat32()
	if math.Abs(float64(sig[0]-0.5)) > 1e-6 {
		t.Errorf("Sigmoid(0) = %v, want 0.5", sig[0])
	}
}

func TestGreater(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 5, 3}, tensor.Shape{3})
	b := raw32(t, d, []float32{2, 2, 3}, tensor.Shape{3})

	got := d.Greater(a, b)
	if got.DType() != tensor.Bool {
		t.Fatalf("Greater dtype = %s, want Bool", got.DType())
	}
	want := []bool{false, true, false}
	if diff := cmp.Diff(want, got.AsBool()); diff != "" {
		t.Errorf("Greater mismatch (-want +got):\n%s", diff)
	}
}

func TestReductions(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	sum := d.Sum(a)
	if sum.Shape().Rank() != 0 || sum.AsFloat32()[0] != 21 {
		t.Errorf("Sum = %v %v, want scalar 21", sum.Shape(), sum.AsFloat32())
	}

	got := d.SumDim(a, 0, false)
	if !got.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("SumDim(0) shape = %v", got.Shape())
	}
	if diff := cmp.Diff([]float32{5, 7, 9}, got.AsFloat32()); diff != "" {
		t.Errorf("SumDim(0) mismatch (-want +got):\n%s", diff)
	}

	got = d.SumDim(a, 1, true)
	if !got.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("SumDim(1, keep) shape = %v", got.Shape())
	}
	if diff := cmp.Diff([]float32{6, 15}, got.AsFloat32()); diff != "" {
		t.Errorf("SumDim(1, keep) mismatch (-want +got):\n%s", diff)
	}

	got = d.MeanDim(a, 1, false)
	if diff := cmp.Diff([]float32{2, 5}, got.AsFloat32()); diff != "" {
		t.Errorf("MeanDim(1) mismatch (-want +got):\n%s", diff)
	}

	m := raw32(t, d, []float32{3, -1, 2, 7, 0, -5}, tensor.Shape{2, 3})
	got = d.MaxDim(m, 1, false)
	if diff := cmp.Diff([]float32{3, 7}, got.AsFloat32()); diff != "" {
		t.Errorf("MaxDim(1) mismatch (-want +got):\n%s", diff)
	}

	// Negative axis counts from the end.
	got = d.SumDim(a, -1, false)
	if diff := cmp.Diff([]float32{6, 15}, got.AsFloat32()); diff != "" {
		t.Errorf("SumDim(-1) mismatch (-want +got):\n%s", diff)
	}
}

func TestTranspose2D(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	got := d.Transpose2D(a)
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	if diff := cmp.Diff(want, got.AsFloat32()); diff != "" {
		t.Errorf("transpose mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3}, tensor.Shape{1, 3})
	got := d.Expand(a, tensor.Shape{2, 3})
	want := []float32{1, 2, 3, 1, 2, 3}
	if diff := cmp.Diff(want, got.AsFloat32()); diff != "" {
		t.Errorf("expand mismatch (-want +got):\n%s", diff)
	}

	scalar := raw32(t, d, []float32{7}, tensor.Shape{})
	got = d.Expand(scalar, tensor.Shape{2, 2})
	if diff := cmp.Diff([]float32{7, 7, 7, 7}, got.AsFloat32()); diff != "" {
		t.Errorf("scalar expand mismatch (-want +got):\n%s", diff)
	}
}

func TestMatMul(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := raw32(t, d, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	got := d.MatMul(a, b)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", got.Shape())
	}
	want := []float32{58, 64, 139, 154}
	if diff := cmp.Diff(want, got.AsFloat32()); diff != "" {
		t.Errorf("matmul mismatch (-want +got):\n%s", diff)
	}
}

func TestMatMulShapeMismatchPanics(t *testing.T) {
	d := cpu.New()
	a := raw32(t, d, make([]float32, 6), tensor.Shape{2, 3})
	b := raw32(t, d, make([]float32, 4), tensor.Shape{2, 2})
	defer func() {
		if recover() == nil {
			t.Error("mismatched inner dimensions did not panic")
		}
	}()
	d.MatMul(a, b)
}

func TestChoose(t *testing.T) {
	d := cpu.New()
	cond := rawBool(t, d, []bool{true, false, true}, tensor.Shape{3})
	lhs := raw32(t, d, []float32{1, 2, 3}, tensor.Shape{3})
	rhs := raw32(t, d, []float32{10, 20, 30}, tensor.Shape{3})

	got := d.Choose(cond, lhs, rhs)
	if diff := cmp.Diff([]float32{1, 20, 3}, got.AsFloat32()); diff != "" {
		t.Errorf("choose mismatch (-want +got):\n%s", diff)
	}
}

func TestChooseBackwardRouting(t *testing.T) {
	d := cpu.New()
	cond := rawBool(t, d, []bool{true, false, true}, tensor.Shape{3})
	gradLhs := raw32(t, d, []float32{0, 0, 0}, tensor.Shape{3})
	gradRhs := raw32(t, d, []float32{0, 0, 0}, tensor.Shape{3})
	gradOut := raw32(t, d, []float32{1, 1, 1}, tensor.Shape{3})

	d.ChooseBackward(cond, gradLhs, gradRhs, gradOut)

	if diff := cmp.Diff([]float32{1, 0, 1}, gradLhs.AsFloat32()); diff != "" {
		t.Errorf("gradLhs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{0, 1, 0}, gradRhs.AsFloat32()); diff != "" {
		t.Errorf("gradRhs mismatch (-want +got):\n%s", diff)
	}

	// A second pass accumulates instead of overwriting.
	d.ChooseBackward(cond, gradLhs, gradRhs, gradOut)
	if diff := cmp.Diff([]float32{2, 0, 2}, gradLhs.AsFloat32()); diff != "" {
		t.Errorf("second pass gradLhs mismatch (-want +got):\n%s", diff)
	}
}

func TestChooseShapeMismatchPanics(t *testing.T) {
	d := cpu.New()
	cond := rawBool(t, d, []bool{true, false}, tensor.Shape{2})
	lhs := raw32(t, d, []float32{1, 2, 3}, tensor.Shape{3})
	rhs := raw32(t, d, []float32{4, 5, 6}, tensor.Shape{3})
	defer func() {
		if recover() == nil {
			t.Error("shape mismatch did not panic")
		}
	}()
	d.Choose(cond, lhs, rhs)
}

func TestGatherScatter(t *testing.T) {
	d := cpu.New()
	x := raw32(t, d, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	got := d.Gather(x, []int{2, 0, 2})
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("gather shape = %v", got.Shape())
	}
	want := []float32{5, 6, 1, 2, 5, 6}
	if diff := cmp.Diff(want, got.AsFloat32()); diff != "" {
		t.Errorf("gather mismatch (-want +got):\n%s", diff)
	}

	dst := raw32(t, d, make([]float32, 6), tensor.Shape{3, 2})
	src := raw32(t, d, []float32{1, 1, 2, 2, 3, 3}, tensor.Shape{3, 2})
	d.ScatterAddRows(dst, []int{2, 0, 2}, src)
	// Rows 0 and 2 of src both land on row 2 of dst.
	want = []float32{2, 2, 0, 0, 4, 4}
	if diff := cmp.Diff(want, dst.AsFloat32()); diff != "" {
		t.Errorf("scatter mismatch (-want +got):\n%s", diff)
	}
}

func TestFillRandomSeededIsReproducible(t *testing.T) {
	d := cpu.New()
	a, _ := d.TryNewRaw(tensor.Shape{16}, tensor.Float64)
	b, _ := d.TryNewRaw(tensor.Shape{16}, tensor.Float64)

	d.FillRandom(a, fixedSampler{})
	d.FillRandom(b, fixedSampler{})
	if diff := cmp.Diff(a.AsFloat64(), b.AsFloat64()); diff != "" {
		t.Errorf("same sampler produced different buffers (-a +b):\n%s", diff)
	}
}

type fixedSampler struct{}

func (fixedSampler) Rand() float64 { return 0.25 }

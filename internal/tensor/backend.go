package tensor

import "errors"

// ErrOutOfMemory is the error kind devices wrap when a buffer cannot be
// allocated. It propagates unchanged through every Try* entry point.
var ErrOutOfMemory = errors.New("out of memory")

// Sampler is a pluggable source of random values for tensor filling.
// The distribution types in gonum's stat/distuv satisfy it directly.
type Sampler interface {
	Rand() float64
}

// Backend is the capability object owning raw nd-array buffers: it
// allocates storage for a (shape, element type) pair, fills it, and
// supplies the kernels the differentiable operations are built from.
//
// Backend values must be cheap to copy and safe to share between
// goroutines. A single tape or graph is still never mutated concurrently;
// parallelism lives inside individual kernels where element writes are
// disjoint.
//
// Kernels panic on shape or dtype mismatches: those are contract
// violations, not recoverable conditions. Only allocation is fallible.
type Backend interface {
	// Storage.
	TryNewRaw(shape Shape, dtype DataType) (*RawTensor, error)
	FillZeros(r *RawTensor)
	FillOnes(r *RawTensor)
	FillRandom(r *RawTensor, dist Sampler)
	// RandomU64 returns a process-unique random value, used to seed
	// non-deterministic sampling.
	RandomU64() uint64
	Name() string
	Device() Device

	// Element-wise binary kernels with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	// SubAssign subtracts delta from dst in place. Shapes must match.
	SubAssign(dst, delta *RawTensor)

	// Scalar kernels.
	AddScalar(x *RawTensor, s float64) *RawTensor
	MulScalar(x *RawTensor, s float64) *RawTensor

	// Unary kernels.
	Neg(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Rsqrt(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor
	Sign(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor

	// Comparison; result is a Bool tensor of the broadcast shape.
	Greater(a, b *RawTensor) *RawTensor

	// Reductions. dim may be negative (counted from the last axis).
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keep bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keep bool) *RawTensor
	MaxDim(x *RawTensor, dim int, keep bool) *RawTensor

	// Shape kernels.
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Transpose2D(x *RawTensor) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// MatMul multiplies two rank-2 tensors: [m,k] x [k,n] -> [m,n].
	MatMul(a, b *RawTensor) *RawTensor

	// Indexing kernels. Gather selects rows along axis 0; ScatterAddRows
	// is its additive inverse, accumulating src rows into dst.
	Gather(x *RawTensor, rows []int) *RawTensor
	ScatterAddRows(dst *RawTensor, rows []int, src *RawTensor)

	// Choose selects elements from lhs where cond is true, from rhs
	// otherwise. All three shapes must be identical.
	Choose(cond, lhs, rhs *RawTensor) *RawTensor
	// ChooseBackward routes gradOut additively into gradLhs or gradRhs
	// per element, depending on cond. The other side is left untouched.
	ChooseBackward(cond, gradLhs, gradRhs, gradOut *RawTensor)
}

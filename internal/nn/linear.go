package nn

import (
	"math"

	"github.com/gradtape/gradtape/internal/ops"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Linear is a fully connected layer: y = x @ W + b, where x has shape
// [batch, in], W has shape [in, out] and b has shape [out].
//
// Weights are initialized uniformly on [-1/sqrt(in), 1/sqrt(in)]; the bias
// starts at zero.
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B]
	bias        *Parameter[B]
	backend     B
}

// TryNewLinear creates a Linear layer, reporting allocation failure instead
// of panicking.
func TryNewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) (*Linear[B], error) {
	bound := 1 / math.Sqrt(float64(inFeatures))
	weight, err := tensor.TrySample[float32](tensor.Shape{inFeatures, outFeatures}, uniformDist(bound, backend), backend)
	if err != nil {
		return nil, err
	}
	bias, err := tensor.TryZeros[float32](tensor.Shape{outFeatures}, backend)
	if err != nil {
		return nil, err
	}
	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		backend:     backend,
	}, nil
}

// NewLinear creates a Linear layer, panicking on allocation failure.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	l, err := TryNewLinear(inFeatures, outFeatures, backend)
	if err != nil {
		panic(err)
	}
	return l
}

// Forward computes x @ W + b. The matrix product and the bias addition are
// recorded on the input's tape, so both parameters receive gradients.
func (l *Linear[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Add(ops.MatMul(x, l.weight.Tensor()), l.bias.Tensor())
}

// ForwardMut is Forward; the layer holds no mutable forward state.
func (l *Linear[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return l.Forward(x)
}

// Parameters returns the weight and bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Update routes the updater over the weight and bias.
func (l *Linear[B]) Update(u ParamUpdater[B], unused *tensor.UnusedTensors) error {
	return updateParams(l.Parameters(), u, unused)
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] { return l.bias }

// ResetParams re-initializes both parameters in place. Tensor identities
// are preserved, so gradient bookkeeping keyed by ID stays valid.
func (l *Linear[B]) ResetParams() error {
	bound := 1 / math.Sqrt(float64(l.inFeatures))
	fillUniform(l.weight.Tensor().Raw(), bound, l.backend)
	l.backend.FillZeros(l.bias.Tensor().Raw())
	return nil
}

// LinearTo copies a Linear layer onto another backend. The copy receives
// fresh parameter identities.
func LinearTo[B1 tensor.Backend, B2 tensor.Backend](l *Linear[B1], b B2) (*Linear[B2], error) {
	weight, err := tensor.To(l.weight.Tensor(), b)
	if err != nil {
		return nil, err
	}
	bias, err := tensor.To(l.bias.Tensor(), b)
	if err != nil {
		return nil, err
	}
	return &Linear[B2]{
		inFeatures:  l.inFeatures,
		outFeatures: l.outFeatures,
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		backend:     b,
	}, nil
}

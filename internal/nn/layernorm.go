package nn

import (
	"github.com/gradtape/gradtape/internal/ops"
	"github.com/gradtape/gradtape/internal/tensor"
)

// DefaultLayerNormEps is the variance floor used when no explicit epsilon
// is given.
const DefaultLayerNormEps = 1e-5

// LayerNorm normalizes the last axis of its input to zero mean and unit
// variance, then applies a learned element-wise affine transform:
//
//	y = gamma * (x - mean) / sqrt(var + eps) + beta
//
// gamma starts at ones and beta at zeros, making the layer an identity-mean
// transform at initialization.
type LayerNorm[B tensor.Backend] struct {
	dim     int
	eps     float64
	gamma   *Parameter[B]
	beta    *Parameter[B]
	backend B
}

// TryNewLayerNorm creates a LayerNorm over the trailing axis of size dim,
// reporting allocation failure instead of panicking.
func TryNewLayerNorm[B tensor.Backend](dim int, eps float64, backend B) (*LayerNorm[B], error) {
	gamma, err := tensor.TryOnes[float32](tensor.Shape{dim}, backend)
	if err != nil {
		return nil, err
	}
	beta, err := tensor.TryZeros[float32](tensor.Shape{dim}, backend)
	if err != nil {
		return nil, err
	}
	return &LayerNorm[B]{
		dim:     dim,
		eps:     eps,
		gamma:   NewParameter("gamma", gamma),
		beta:    NewParameter("beta", beta),
		backend: backend,
	}, nil
}

// NewLayerNorm creates a LayerNorm with the default epsilon, panicking on
// allocation failure.
func NewLayerNorm[B tensor.Backend](dim int, backend B) *LayerNorm[B] {
	l, err := TryNewLayerNorm(dim, DefaultLayerNormEps, backend)
	if err != nil {
		panic(err)
	}
	return l
}

// Forward standardizes the last axis and applies the affine transform. The
// normalization statistics are differentiated through, matching the usual
// layer norm backward pass.
func (l *LayerNorm[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	normed := ops.Normalize(x, -1, l.eps)
	return ops.Add(ops.Mul(normed, l.gamma.Tensor()), l.beta.Tensor())
}

// ForwardMut is Forward; the layer holds no mutable forward state.
func (l *LayerNorm[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return l.Forward(x)
}

// Parameters returns gamma and beta.
func (l *LayerNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.gamma, l.beta}
}

// Gamma returns the scale parameter.
func (l *LayerNorm[B]) Gamma() *Parameter[B] { return l.gamma }

// Beta returns the shift parameter.
func (l *LayerNorm[B]) Beta() *Parameter[B] { return l.beta }

// Update routes the updater over gamma and beta.
func (l *LayerNorm[B]) Update(u ParamUpdater[B], unused *tensor.UnusedTensors) error {
	return updateParams(l.Parameters(), u, unused)
}

// ResetParams restores gamma to ones and beta to zeros in place.
func (l *LayerNorm[B]) ResetParams() error {
	l.backend.FillOnes(l.gamma.Tensor().Raw())
	l.backend.FillZeros(l.beta.Tensor().Raw())
	return nil
}

// LayerNormTo copies a LayerNorm layer onto another backend. The copy
// receives fresh parameter identities.
func LayerNormTo[B1 tensor.Backend, B2 tensor.Backend](l *LayerNorm[B1], b B2) (*LayerNorm[B2], error) {
	gamma, err := tensor.To(l.gamma.Tensor(), b)
	if err != nil {
		return nil, err
	}
	beta, err := tensor.To(l.beta.Tensor(), b)
	if err != nil {
		return nil, err
	}
	return &LayerNorm[B2]{
		dim:     l.dim,
		eps:     l.eps,
		gamma:   NewParameter("gamma", gamma),
		beta:    NewParameter("beta", beta),
		backend: b,
	}, nil
}

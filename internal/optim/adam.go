package optim

import (
	"math"

	"github.com/gradtape/gradtape/internal/nn"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Adam implements the Adam optimizer with bias correction.
//
//	m = beta1 * m + (1 - beta1) * grad
//	v = beta2 * v + (1 - beta2) * grad^2
//	param = param - lr * mhat / (sqrt(vhat) + eps)
//
// where mhat and vhat are the bias-corrected moment estimates.
type Adam[B tensor.Backend] struct {
	lr      float64
	beta1   float64
	beta2   float64
	eps     float64
	step    int
	moments map[tensor.TensorID]*adamState
	backend B

	grads *tensor.Gradients
}

type adamState struct {
	m *tensor.RawTensor
	v *tensor.RawTensor
}

// AdamConfig holds the Adam hyperparameters. Zero values take the usual
// defaults: lr 0.001, beta1 0.9, beta2 0.999, eps 1e-8.
type AdamConfig struct {
	LR    float64
	Beta1 float64
	Beta2 float64
	Eps   float64
}

// NewAdam creates an Adam optimizer.
func NewAdam[B tensor.Backend](config AdamConfig, backend B) *Adam[B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam[B]{
		lr:      config.LR,
		beta1:   config.Beta1,
		beta2:   config.Beta2,
		eps:     config.Eps,
		moments: make(map[tensor.TensorID]*adamState),
		backend: backend,
	}
}

// Step applies one Adam update to every parameter of the module. The step
// counter used for bias correction advances once per call.
func (a *Adam[B]) Step(m nn.Module[B], grads *tensor.Gradients) (*tensor.UnusedTensors, error) {
	a.step++
	a.grads = grads
	defer func() { a.grads = nil }()
	return nn.UpdateAll[B](m, a)
}

// UpdateParam applies the Adam rule to a single parameter in place.
func (a *Adam[B]) UpdateParam(p *nn.Parameter[B], unused *tensor.UnusedTensors) error {
	grad, ok := a.grads.TryGet(p)
	if !ok {
		unused.Add(p.ID())
		return nil
	}
	bk := a.backend

	st, ok := a.moments[p.ID()]
	if !ok {
		zm, err := bk.TryNewRaw(grad.Shape(), grad.DType())
		if err != nil {
			return err
		}
		zv, err := bk.TryNewRaw(grad.Shape(), grad.DType())
		if err != nil {
			return err
		}
		st = &adamState{m: zm, v: zv}
		a.moments[p.ID()] = st
	}

	st.m = bk.Add(bk.MulScalar(st.m, a.beta1), bk.MulScalar(grad, 1-a.beta1))
	st.v = bk.Add(bk.MulScalar(st.v, a.beta2), bk.MulScalar(bk.Mul(grad, grad), 1-a.beta2))

	mhat := bk.MulScalar(st.m, 1/(1-math.Pow(a.beta1, float64(a.step))))
	vhat := bk.MulScalar(st.v, 1/(1-math.Pow(a.beta2, float64(a.step))))

	update := bk.Div(bk.MulScalar(mhat, a.lr), bk.AddScalar(bk.Sqrt(vhat), a.eps))
	bk.SubAssign(p.Tensor().Raw(), update)
	return nil
}

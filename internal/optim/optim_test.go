package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradtape/gradtape/internal/backend/cpu"
	"github.com/gradtape/gradtape/internal/nn"
	"github.com/gradtape/gradtape/internal/ops"
	"github.com/gradtape/gradtape/internal/optim"
	"github.com/gradtape/gradtape/internal/tensor"
)

// singleParamModel wraps one parameter so optimizers can drive it directly.
type singleParamModel[B tensor.Backend] struct {
	p *nn.Parameter[B]
}

func (m *singleParamModel[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ops.Mul(x, m.p.Tensor())
}

func (m *singleParamModel[B]) Parameters() []*nn.Parameter[B] {
	return []*nn.Parameter[B]{m.p}
}

func TestSGDStep(t *testing.T) {
	backend := cpu.New()
	w := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	model := &singleParamModel[*cpu.Device]{p: nn.NewParameter("w", w)}

	grads := tensor.NewGradients(backend)
	delta := tensor.FromSlice([]float32{1, 1, 1}, tensor.Shape{3}, backend)
	grads.Accumulate(w.ID(), delta.Raw().DeepClone())

	sgd := optim.NewSGD[*cpu.Device](optim.SGDConfig{LR: 0.5}, backend)
	unused, err := sgd.Step(model, grads)
	require.NoError(t, err)
	assert.True(t, unused.IsEmpty())

	assert.InDeltaSlice(t, []float32{0.5, 1.5, 2.5}, w.AsVec(), 1e-6)
	// The update happened in place; the identity survives.
	assert.Equal(t, w.ID(), model.p.ID())
}

func TestSGDReportsUnused(t *testing.T) {
	backend := cpu.New()
	w := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)
	model := &singleParamModel[*cpu.Device]{p: nn.NewParameter("w", w)}

	sgd := optim.NewSGD[*cpu.Device](optim.SGDConfig{LR: 0.1}, backend)
	unused, err := sgd.Step(model, tensor.NewGradients(backend))
	require.NoError(t, err)

	assert.True(t, unused.Contains(w.ID()))
	assert.InDeltaSlice(t, []float32{1}, w.AsVec(), 1e-6, "parameter moved without a gradient")
}

func TestSGDMomentumAccumulates(t *testing.T) {
	backend := cpu.New()
	w := tensor.FromSlice([]float32{0}, tensor.Shape{1}, backend)
	model := &singleParamModel[*cpu.Device]{p: nn.NewParameter("w", w)}
	sgd := optim.NewSGD[*cpu.Device](optim.SGDConfig{LR: 1, Momentum: 0.5}, backend)

	step := func() {
		grads := tensor.NewGradients(backend)
		g := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)
		grads.Accumulate(w.ID(), g.Raw().DeepClone())
		_, err := sgd.Step(model, grads)
		require.NoError(t, err)
	}

	step()
	assert.InDelta(t, -1, w.AsVec()[0], 1e-6)
	// velocity = 0.5*1 + 1 = 1.5, so the second step moves further.
	step()
	assert.InDelta(t, -2.5, w.AsVec()[0], 1e-6)
}

func TestTrainingStepReducesLoss(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(2, 1, backend)
	sgd := optim.NewSGD[*cpu.Device](optim.SGDConfig{LR: 0.05}, backend)

	input := []float32{1, 2}
	target := float32(3)

	lossValue := func() float32 {
		x := tensor.FromSlice(input, tensor.Shape{1, 2}, backend)
		out := layer.Forward(x)
		diff := ops.AddScalar(out, -float64(target))
		return ops.Sum(ops.Square(diff)).Item()
	}

	before := lossValue()
	for i := 0; i < 20; i++ {
		tape := tensor.NewTape()
		x := tensor.FromSlice(input, tensor.Shape{1, 2}, backend).Retaped(tape)
		out := layer.Forward(x)
		loss := ops.Sum(ops.Square(ops.AddScalar(out, -float64(target))))
		grads := loss.Backward()

		unused, err := sgd.Step(layer, grads)
		require.NoError(t, err)
		require.True(t, unused.IsEmpty(), "all parameters should receive gradients")
	}
	after := lossValue()

	assert.Less(t, after, before, "training did not reduce the loss")
	assert.Less(t, after, float32(0.1))
}

func TestAdamStep(t *testing.T) {
	backend := cpu.New()
	w := tensor.FromSlice([]float32{1, 1}, tensor.Shape{2}, backend)
	model := &singleParamModel[*cpu.Device]{p: nn.NewParameter("w", w)}
	adam := optim.NewAdam[*cpu.Device](optim.AdamConfig{LR: 0.1}, backend)

	grads := tensor.NewGradients(backend)
	g := tensor.FromSlice([]float32{1, -1}, tensor.Shape{2}, backend)
	grads.Accumulate(w.ID(), g.Raw().DeepClone())

	unused, err := adam.Step(model, grads)
	require.NoError(t, err)
	assert.True(t, unused.IsEmpty())

	// With bias correction the first step moves each weight by almost
	// exactly lr against the gradient sign.
	got := w.AsVec()
	assert.InDelta(t, 0.9, got[0], 1e-3)
	assert.InDelta(t, 1.1, got[1], 1e-3)
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	backend := cpu.New()
	w := tensor.FromSlice([]float32{5}, tensor.Shape{1}, backend)
	model := &singleParamModel[*cpu.Device]{p: nn.NewParameter("w", w)}
	adam := optim.NewAdam[*cpu.Device](optim.AdamConfig{LR: 0.3}, backend)

	for i := 0; i < 100; i++ {
		tape := tensor.NewTape()
		loss := ops.Sum(ops.Square(model.p.Tensor().Retaped(tape)))
		grads := loss.Backward()
		_, err := adam.Step(model, grads)
		require.NoError(t, err)
	}
	assert.InDelta(t, 0, w.AsVec()[0], 0.05)
}

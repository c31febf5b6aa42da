package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradtape/gradtape/internal/backend/cpu"
	"github.com/gradtape/gradtape/internal/nn"
	"github.com/gradtape/gradtape/internal/ops"
	"github.com/gradtape/gradtape/internal/tensor"
)

func TestLinearForwardShape(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(4, 3, backend)

	x := tensor.Zeros[float32](tensor.Shape{2, 4}, backend)
	out := layer.Forward(x)

	assert.True(t, out.Shape().Equal(tensor.Shape{2, 3}), "shape = %v", out.Shape())
	require.Len(t, layer.Parameters(), 2)
}

func TestLinearZeroInputGivesBias(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	// With zero input the output is exactly the bias, which starts at zero.
	x := tensor.Zeros[float32](tensor.Shape{1, 3}, backend)
	out := layer.Forward(x)
	for _, v := range out.AsVec() {
		assert.Zero(t, v)
	}
}

func TestLinearInitBounded(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(16, 8, backend)

	bound := float32(1 / math.Sqrt(16))
	for _, v := range layer.Weight().Tensor().AsVec() {
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}
}

func TestLinearGradients(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	tape := tensor.NewTape()
	x := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend).Retaped(tape)
	loss := ops.Sum(layer.Forward(x))
	grads := loss.Backward()

	wg, ok := grads.TryGet(layer.Weight())
	require.True(t, ok, "weight received no gradient")
	assert.True(t, wg.Shape().Equal(tensor.Shape{3, 2}))
	// d(sum(xW + b))/dW = x broadcast over columns.
	assert.InDeltaSlice(t, []float32{1, 1, 2, 2, 3, 3}, wg.AsFloat32(), 1e-6)

	bg, ok := grads.TryGet(layer.Bias())
	require.True(t, ok, "bias received no gradient")
	assert.InDeltaSlice(t, []float32{1, 1}, bg.AsFloat32(), 1e-6)
}

func TestLinearResetPreservesIdentity(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(4, 4, backend)

	before := layer.Weight().ID()
	require.NoError(t, layer.ResetParams())
	assert.Equal(t, before, layer.Weight().ID())

	for _, v := range layer.Bias().Tensor().AsVec() {
		assert.Zero(t, v)
	}
}

func TestLayerNormOutputStatistics(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLayerNorm(4, backend)

	tape := tensor.NewTape()
	x := tensor.FromSlice([]float32{1, 2, 3, 10, -5, 0, 5, 20}, tensor.Shape{2, 4}, backend).Retaped(tape)
	out := layer.Forward(x)
	data := out.AsVec()

	for row := 0; row < 2; row++ {
		var mean float64
		for col := 0; col < 4; col++ {
			mean += float64(data[row*4+col])
		}
		mean /= 4
		assert.InDelta(t, 0, mean, 1e-5, "row %d mean", row)

		var variance float64
		for col := 0; col < 4; col++ {
			d := float64(data[row*4+col]) - mean
			variance += d * d
		}
		variance /= 4
		assert.InDelta(t, 1, variance, 1e-3, "row %d variance", row)
	}
}

func TestLayerNormGradientsReachBothParams(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLayerNorm(4, backend)

	tape := tensor.NewTape()
	x := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 4}, backend).Retaped(tape)
	grads := ops.Sum(ops.Square(layer.Forward(x))).Backward()

	_, ok := grads.TryGet(layer.Gamma())
	assert.True(t, ok, "gamma received no gradient")
	_, ok = grads.TryGet(layer.Beta())
	assert.True(t, ok, "beta received no gradient")
	_, ok = grads.TryGet(x)
	assert.True(t, ok, "input received no gradient")
}

func TestSequentialComposesAndCollectsParams(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[*cpu.Device](
		nn.NewLinear(4, 8, backend),
		nn.ReLU[*cpu.Device]{},
		nn.NewLinear(8, 2, backend),
	)

	x := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
	out := model.Forward(x)
	assert.True(t, out.Shape().Equal(tensor.Shape{3, 2}), "shape = %v", out.Shape())
	assert.Len(t, model.Parameters(), 4)
	require.NoError(t, model.ResetParams())
}

// recordingUpdater tracks which parameters an update visits and which had
// gradients.
type recordingUpdater[B tensor.Backend] struct {
	grads   *tensor.Gradients
	updated []tensor.TensorID
}

func (r *recordingUpdater[B]) UpdateParam(p *nn.Parameter[B], unused *tensor.UnusedTensors) error {
	if _, ok := r.grads.TryGet(p); !ok {
		unused.Add(p.ID())
		return nil
	}
	r.updated = append(r.updated, p.ID())
	return nil
}

func TestUpdateAllReportsUnusedParameters(t *testing.T) {
	backend := cpu.New()
	used := nn.NewLinear(2, 2, backend)
	frozen := nn.NewLinear(2, 2, backend)
	model := nn.NewSequential[*cpu.Device](used, frozen)

	// Only the first layer participates in the forward pass.
	tape := tensor.NewTape()
	x := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend).Retaped(tape)
	grads := ops.Sum(used.Forward(x)).Backward()

	updater := &recordingUpdater[*cpu.Device]{grads: grads}
	unused, err := nn.UpdateAll[*cpu.Device](model, updater)
	require.NoError(t, err)

	assert.Len(t, updater.updated, 2)
	assert.False(t, unused.IsEmpty())
	assert.True(t, unused.Contains(frozen.Weight().ID()))
	assert.True(t, unused.Contains(frozen.Bias().ID()))
	assert.False(t, unused.Contains(used.Weight().ID()))
}

var (
	_ nn.MutModule[*cpu.Device] = (*nn.Linear[*cpu.Device])(nil)
	_ nn.MutModule[*cpu.Device] = (*nn.LayerNorm[*cpu.Device])(nil)
	_ nn.MutModule[*cpu.Device] = (*nn.Sequential[*cpu.Device])(nil)
	_ nn.Updatable[*cpu.Device] = (*nn.Linear[*cpu.Device])(nil)
	_ nn.Updatable[*cpu.Device] = (*nn.LayerNorm[*cpu.Device])(nil)
	_ nn.Updatable[*cpu.Device] = (*nn.Sequential[*cpu.Device])(nil)
	_ nn.MutModule[*cpu.Device] = nn.ReLU[*cpu.Device]{}
)

func TestSequentialForwardMutMatchesForward(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[*cpu.Device](
		nn.NewLinear(3, 3, backend),
		nn.Tanh[*cpu.Device]{},
	)

	x := tensor.FromSlice([]float32{1, -2, 3}, tensor.Shape{1, 3}, backend)
	want := model.Forward(x).AsVec()
	got := model.ForwardMut(x).AsVec()
	assert.InDeltaSlice(t, want, got, 1e-6)
}

func TestLinearToCopiesValuesUnderFreshIdentity(t *testing.T) {
	src := cpu.New()
	dst := cpu.New()
	layer := nn.NewLinear(3, 2, src)

	moved, err := nn.LinearTo(layer, dst)
	require.NoError(t, err)

	assert.InDeltaSlice(t, layer.Weight().Tensor().AsVec(), moved.Weight().Tensor().AsVec(), 0)
	assert.InDeltaSlice(t, layer.Bias().Tensor().AsVec(), moved.Bias().Tensor().AsVec(), 0)
	assert.NotEqual(t, layer.Weight().ID(), moved.Weight().ID())

	x := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, dst)
	assert.True(t, moved.Forward(x).Shape().Equal(tensor.Shape{1, 2}))
}

func TestLayerNormToCopiesValuesUnderFreshIdentity(t *testing.T) {
	src := cpu.New()
	dst := cpu.New()
	layer := nn.NewLayerNorm(4, src)

	moved, err := nn.LayerNormTo(layer, dst)
	require.NoError(t, err)

	assert.InDeltaSlice(t, layer.Gamma().Tensor().AsVec(), moved.Gamma().Tensor().AsVec(), 0)
	assert.NotEqual(t, layer.Beta().ID(), moved.Beta().ID())
}

func TestActivationModulesMatchOps(t *testing.T) {
	backend := cpu.New()
	x := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{3}, backend)

	relu := nn.ReLU[*cpu.Device]{}.Forward(x)
	assert.InDeltaSlice(t, []float32{0, 0, 2}, relu.AsVec(), 1e-6)

	tanh := nn.Tanh[*cpu.Device]{}.Forward(x)
	want := []float32{float32(math.Tanh(-1)), 0, float32(math.Tanh(2))}
	assert.InDeltaSlice(t, want, tanh.AsVec(), 1e-6)

	sm := nn.Softmax[*cpu.Device]{}.Forward(x)
	var sum float32
	for _, v := range sm.AsVec() {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-6)
}

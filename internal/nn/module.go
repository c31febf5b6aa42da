// Package nn implements trainable neural network modules on top of the
// differentiable operations.
//
// The building blocks:
//   - Module interface: forward pass plus parameter enumeration
//   - Parameter: a named trainable tensor with a stable identity
//   - Linear, LayerNorm: trainable layers
//   - Activations: stateless modules wrapping the ops package
//   - Sequential: container for stacking layers
//
// Modules operate on float32 tensors. Training works by recording a forward
// pass on a fresh tape, draining it through Backward, and handing the
// resulting gradients to a ParamUpdater.
package nn

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(784, 128, backend),
//	    nn.ReLU[B]{},
//	    nn.NewLinear(128, 10, backend),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// Operations are recorded on the input's tape, so parameters used
	// here receive gradients when that tape is drained.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// including those of nested modules. Stateless modules return nil.
	Parameters() []*Parameter[B]
}

// MutModule is a Module whose forward pass may mutate internal state, such
// as a cache. Pure modules implement ForwardMut as Forward.
type MutModule[B tensor.Backend] interface {
	Module[B]
	ForwardMut(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// Resetter is implemented by modules whose parameters can be re-initialized
// in place, without reconstructing the module.
type Resetter interface {
	ResetParams() error
}

// Updatable is implemented by modules that route an updater over their own
// parameters, letting containers delegate instead of flattening.
type Updatable[B tensor.Backend] interface {
	Update(u ParamUpdater[B], unused *tensor.UnusedTensors) error
}

// ParamUpdater applies one optimization step to a single parameter. When
// the gradients hold no entry for the parameter, the updater must leave the
// parameter untouched and record its ID in unused.
type ParamUpdater[B tensor.Backend] interface {
	UpdateParam(p *Parameter[B], unused *tensor.UnusedTensors) error
}

// UpdateAll runs the updater over every parameter of the module and
// collects the parameters that received no gradient. Callers decide whether
// a non-empty result is an error; a model with deliberately frozen or
// unreachable parameters may accept it.
func UpdateAll[B tensor.Backend](m Module[B], updater ParamUpdater[B]) (*tensor.UnusedTensors, error) {
	unused := &tensor.UnusedTensors{}
	if u, ok := m.(Updatable[B]); ok {
		if err := u.Update(updater, unused); err != nil {
			return nil, err
		}
		return unused, nil
	}
	for _, p := range m.Parameters() {
		if err := updater.UpdateParam(p, unused); err != nil {
			return nil, err
		}
	}
	return unused, nil
}

// updateParams is the common Update body for leaf modules.
func updateParams[B tensor.Backend](params []*Parameter[B], u ParamUpdater[B], unused *tensor.UnusedTensors) error {
	for _, p := range params {
		if err := u.UpdateParam(p, unused); err != nil {
			return err
		}
	}
	return nil
}

package nn

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// Sequential chains modules, feeding each output into the next layer.
type Sequential[B tensor.Backend] struct {
	layers []Module[B]
}

// NewSequential builds a Sequential container from the given layers.
func NewSequential[B tensor.Backend](layers ...Module[B]) *Sequential[B] {
	return &Sequential[B]{layers: layers}
}

// Forward applies every layer in order.
func (s *Sequential[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	for _, layer := range s.layers {
		x = layer.Forward(x)
	}
	return x
}

// ForwardMut applies every layer in order, using the mutable forward where
// a layer provides one.
func (s *Sequential[B]) ForwardMut(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	for _, layer := range s.layers {
		if m, ok := layer.(MutModule[B]); ok {
			x = m.ForwardMut(x)
		} else {
			x = layer.Forward(x)
		}
	}
	return x
}

// Parameters concatenates the parameters of all layers in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, layer := range s.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Layers returns the contained modules.
func (s *Sequential[B]) Layers() []Module[B] {
	return s.layers
}

// Update visits every layer, delegating to the layer's own Update when it
// implements one.
func (s *Sequential[B]) Update(u ParamUpdater[B], unused *tensor.UnusedTensors) error {
	for _, layer := range s.layers {
		if up, ok := layer.(Updatable[B]); ok {
			if err := up.Update(u, unused); err != nil {
				return err
			}
			continue
		}
		if err := updateParams(layer.Parameters(), u, unused); err != nil {
			return err
		}
	}
	return nil
}

// ResetParams re-initializes every layer that supports resetting.
func (s *Sequential[B]) ResetParams() error {
	for _, layer := range s.layers {
		if r, ok := layer.(Resetter); ok {
			if err := r.ResetParams(); err != nil {
				return err
			}
		}
	}
	return nil
}

package nn

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// ZeroSized is an embeddable base for modules without trainable state. It
// supplies the trivial halves of the module contracts; embedding types add
// Forward.
type ZeroSized[B tensor.Backend] struct{}

func (ZeroSized[B]) Parameters() []*Parameter[B] { return nil }

func (ZeroSized[B]) ResetParams() error { return nil }

func (ZeroSized[B]) Update(ParamUpdater[B], *tensor.UnusedTensors) error { return nil }

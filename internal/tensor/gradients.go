package tensor

import "fmt"

// Gradients maps tensor identities to their accumulated gradient buffers.
// Entries are created lazily on first write and summed on repeated writes,
// because a tensor may feed several downstream consumers. An identity that
// never lay on a path from the backward seed is simply absent; absence is
// distinguishable from a zero gradient and drives unused-parameter
// detection.
type Gradients struct {
	backend Backend
	grads   map[TensorID]*RawTensor
}

func newGradients(b Backend) *Gradients {
	return &Gradients{
		backend: b,
		grads:   make(map[TensorID]*RawTensor),
	}
}

// NewGradients creates an empty gradients map bound to a backend. The
// backward pass builds these internally; tests and updaters may construct
// their own.
func NewGradients(b Backend) *Gradients {
	return newGradients(b)
}

// Get returns the gradient recorded for the given tensor. Panics if no
// gradient is present: asking for the gradient of a tensor that never
// participated in the traced computation is a logic bug.
func (g *Gradients) Get(t Identified) *RawTensor {
	grad, ok := g.grads[t.ID()]
	if !ok {
		panic(fmt.Sprintf("no gradient recorded for tensor id %d", t.ID()))
	}
	return grad
}

// TryGet returns the gradient for the given tensor and whether one exists.
func (g *Gradients) TryGet(t Identified) (*RawTensor, bool) {
	grad, ok := g.grads[t.ID()]
	return grad, ok
}

// ByID returns the gradient stored for an identity, if any. Backward
// closures use it to read the gradient of their output; absence means the
// output received no gradient and is treated as logically zero.
func (g *Gradients) ByID(id TensorID) (*RawTensor, bool) {
	grad, ok := g.grads[id]
	return grad, ok
}

// Accumulate adds delta into the gradient entry for id, adopting delta as
// the initial value when no entry exists yet.
func (g *Gradients) Accumulate(id TensorID, delta *RawTensor) {
	if existing, ok := g.grads[id]; ok {
		g.grads[id] = g.backend.Add(existing, delta)
		return
	}
	g.grads[id] = delta
}

// OrAlloc returns the gradient buffer for id, lazily allocating a
// zero-filled buffer shaped like the given data buffer. Kernels that
// accumulate in place (choose, scatter-add) write through it.
func (g *Gradients) OrAlloc(id TensorID, like *RawTensor) (*RawTensor, error) {
	if existing, ok := g.grads[id]; ok {
		return existing, nil
	}
	grad, err := g.backend.TryNewRaw(like.Shape(), like.DType())
	if err != nil {
		return nil, fmt.Errorf("alloc gradient for tensor id %d: %w", id, err)
	}
	g.grads[id] = grad
	return grad, nil
}

// Len returns the number of gradient entries.
func (g *Gradients) Len() int {
	return len(g.grads)
}

// UnusedTensors collects the identities of parameters that received no
// gradient during a pass. Parameter-update code fills it to surface
// disconnected-parameter bugs in model code.
type UnusedTensors struct {
	IDs []TensorID
}

// Add records an identity as unused.
func (u *UnusedTensors) Add(id TensorID) {
	u.IDs = append(u.IDs, id)
}

// IsEmpty reports whether every parameter received a gradient.
func (u *UnusedTensors) IsEmpty() bool {
	return len(u.IDs) == 0
}

// Contains reports whether the identity was recorded as unused.
func (u *UnusedTensors) Contains(id TensorID) bool {
	for _, got := range u.IDs {
		if got == id {
			return true
		}
	}
	return false
}

// Clear resets the set for reuse across passes.
func (u *UnusedTensors) Clear() {
	u.IDs = u.IDs[:0]
}

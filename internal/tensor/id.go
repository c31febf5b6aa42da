package tensor

import "sync/atomic"

// TensorID is an opaque identity token for a tensor. It is the sole key
// used to look up gradients after a backward pass, independent of the
// storage buffer the tensor happens to share with its clones.
type TensorID uint64

var lastID atomic.Uint64

// NextID returns a fresh process-wide monotonically increasing identity.
func NextID() TensorID {
	return TensorID(lastID.Add(1))
}

// Identified is anything carrying a tensor identity. Gradient lookups and
// the unused-parameter bookkeeping are keyed this way.
type Identified interface {
	ID() TensorID
}

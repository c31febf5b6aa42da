package tensor

import "fmt"

// Tape is an append-only log of backward closures recorded as forward
// operations execute. A tape has three phases: empty (no operation uses
// it), recording (operations push closures), and drained (the backward
// pass consumed it). It is owned by one computation at a time and is never
// mutated concurrently.
//
// Closures run in strict reverse insertion order during Drain, so every
// input has received all downstream gradient contributions before its own
// closure reads them.
type Tape struct {
	backward []func(*Gradients) error
	drained  bool
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{}
}

// Append records a backward closure. Panics if the tape has already been
// drained; a drained tape is consumed, not reusable.
func (t *Tape) Append(fn func(*Gradients) error) {
	if t.drained {
		panic("tape already drained; it cannot record further operations")
	}
	t.backward = append(t.backward, fn)
}

// NumOps returns the number of recorded closures.
func (t *Tape) NumOps() int {
	return len(t.backward)
}

// drain executes the recorded closures in reverse insertion order,
// accumulating into g. A tape drains exactly once.
func (t *Tape) drain(g *Gradients) error {
	if t.drained {
		panic("tape already drained; backward may run only once per tape")
	}
	t.drained = true
	for i := len(t.backward) - 1; i >= 0; i-- {
		if err := t.backward[i](g); err != nil {
			return fmt.Errorf("backward closure %d: %w", i, err)
		}
	}
	t.backward = nil
	return nil
}

// MergeTapes resolves the tape an operation should record on. If both
// inputs carry tapes they must be the same instance: two independently
// created tapes meeting at one operation is a contract violation, reported
// by panicking rather than silently producing wrong gradients.
func MergeTapes(a, b *Tape) *Tape {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a == b:
		return a
	default:
		panic("two distinct tapes meet at one operation; build each graph on a single tape")
	}
}

// TryBackward runs the backward pass from this tensor: it seeds a
// gradients map with a unit gradient for the tensor's identity, drains the
// tape in reverse order, and returns the completed map. Allocation
// failures propagate as errors; calling it on a tensor without a tape or
// with a non-float element type panics.
func (t *Tensor[T, B]) TryBackward() (*Gradients, error) {
	if t.tape == nil {
		panic("backward: tensor carries no tape (call Trace on an input first)")
	}
	if !t.DType().IsFloat() {
		panic(fmt.Sprintf("backward: cannot differentiate %s tensor", t.DType()))
	}

	seed, err := t.backend.TryNewRaw(t.Shape(), t.DType())
	if err != nil {
		return nil, fmt.Errorf("backward: seed gradient: %w", err)
	}
	t.backend.FillOnes(seed)

	g := newGradients(t.backend)
	g.grads[t.id] = seed
	if err := t.tape.drain(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Backward is the panicking convenience form of TryBackward.
func (t *Tensor[T, B]) Backward() *Gradients {
	g, err := t.TryBackward()
	if err != nil {
		panic(err)
	}
	return g
}

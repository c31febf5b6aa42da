package tensor

import "fmt"

// Tensor is a typed handle over a raw storage buffer. It combines a unique
// identity, a shared buffer, the owning backend, and an optional gradient
// tape. Operations produce tensors with fresh identities; Clone, Retaped
// and Trace preserve identity, which is what makes gradient lookup by the
// original handle work.
//
// Type parameters:
//   - T: element type (must satisfy DType)
//   - B: backend (must implement Backend)
type Tensor[T DType, B Backend] struct {
	id      TensorID
	raw     *RawTensor
	backend B
	tape    *Tape
}

// Upgrade turns a raw storage buffer into a Tensor: it assigns a fresh
// identity and binds the device and the given tape (nil for no tracking).
func Upgrade[T DType, B Backend](raw *RawTensor, b B, tape *Tape) *Tensor[T, B] {
	return &Tensor[T, B]{
		id:      NextID(),
		raw:     raw,
		backend: b,
		tape:    tape,
	}
}

// ID returns the tensor's identity.
func (t *Tensor[T, B]) ID() TensorID { return t.id }

// Raw returns the underlying storage buffer.
func (t *Tensor[T, B]) Raw() *RawTensor { return t.raw }

// Backend returns the owning backend.
func (t *Tensor[T, B]) Backend() B { return t.backend }

// Tape returns the tensor's tape, or nil if it does not track gradients.
func (t *Tensor[T, B]) Tape() *Tape { return t.tape }

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape { return t.raw.Shape() }

// DType returns the runtime element type.
func (t *Tensor[T, B]) DType() DataType { return t.raw.DType() }

// NumElements returns the total element count.
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }

// Data returns a typed zero-copy view of the buffer. Writes through the
// slice modify the tensor.
func (t *Tensor[T, B]) Data() []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(t.raw.AsFloat32()).([]T)
	case float64:
		return any(t.raw.AsFloat64()).([]T)
	case bool:
		return any(t.raw.AsBool()).([]T)
	default:
		panic("unsupported element type")
	}
}

// AsVec returns the elements as a flat, freshly allocated slice in
// index order.
func (t *Tensor[T, B]) AsVec() []T {
	out := make([]T, t.NumElements())
	copy(out, t.Data())
	return out
}

// Array returns a nested-slice representation of the tensor: T for a
// scalar, []T for rank 1, [][]any-style nesting above that. Intended for
// inspection and tests.
func (t *Tensor[T, B]) Array() any {
	return nest(t.Data(), t.Shape())
}

func nest[T DType](flat []T, shape Shape) any {
	if len(shape) == 0 {
		return flat[0]
	}
	if len(shape) == 1 {
		out := make([]T, shape[0])
		copy(out, flat)
		return out
	}
	inner := shape[1:].NumElements()
	out := make([]any, shape[0])
	for i := range out {
		out[i] = nest(flat[i*inner:(i+1)*inner], shape[1:])
	}
	return out
}

// CopyFrom copies elements from a flat slice into the tensor's buffer.
// Panics if the slice length does not equal the element count; a length
// mismatch is a programmer error, not a recoverable failure.
func (t *Tensor[T, B]) CopyFrom(src []T) {
	if len(src) != t.NumElements() {
		panic(fmt.Sprintf("copy from slice of length %d into tensor with %d elements", len(src), t.NumElements()))
	}
	copy(t.Data(), src)
}

// CopyInto copies the tensor's elements into a flat slice. Panics if the
// slice length does not equal the element count.
func (t *Tensor[T, B]) CopyInto(dst []T) {
	if len(dst) != t.NumElements() {
		panic(fmt.Sprintf("copy tensor with %d elements into slice of length %d", t.NumElements(), len(dst)))
	}
	copy(dst, t.Data())
}

// At returns the element at the given indices.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set writes the element at the given indices.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices for shape %v, got %d", len(shape), shape, len(indices)))
	}
	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for axis %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() requires a single-element tensor, got shape %v", t.Shape()))
	}
	return t.Data()[0]
}

// Clone returns a handle sharing the same buffer under the same identity.
// Gradient lookups through a clone find the original's gradient.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{
		id:      t.id,
		raw:     t.raw.Clone(),
		backend: t.backend,
		tape:    t.tape,
	}
}

// Retaped returns a handle with the same identity and buffer but attached
// to the given tape. Layers use this to join their parameters onto the
// tape the input carries.
func (t *Tensor[T, B]) Retaped(tape *Tape) *Tensor[T, B] {
	return &Tensor[T, B]{
		id:      t.id,
		raw:     t.raw.Clone(),
		backend: t.backend,
		tape:    tape,
	}
}

// Trace marks the tensor for differentiation by attaching a fresh tape,
// preserving identity. Operations downstream of a traced tensor record
// their backward closures on that tape.
func (t *Tensor[T, B]) Trace() *Tensor[T, B] {
	return t.Retaped(NewTape())
}

// Detach returns a handle with the same identity and buffer but no tape.
func (t *Tensor[T, B]) Detach() *Tensor[T, B] {
	return t.Retaped(nil)
}

// TryAllocGrad allocates a zero gradient buffer matching this tensor's
// shape and element type.
func (t *Tensor[T, B]) TryAllocGrad() (*RawTensor, error) {
	return t.backend.TryNewRaw(t.Shape(), t.DType())
}

// AllocGrad is the panicking convenience form of TryAllocGrad.
func (t *Tensor[T, B]) AllocGrad() *RawTensor {
	grad, err := t.TryAllocGrad()
	if err != nil {
		panic(err)
	}
	return grad
}

// String returns a short description of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.DType(), t.Shape(), t.raw.Device())
}

// To copies a tensor onto another backend, producing an equivalent tensor
// with a fresh identity and no tape. Module device transfer is built on it.
func To[T DType, B1 Backend, B2 Backend](t *Tensor[T, B1], b B2) (*Tensor[T, B2], error) {
	raw, err := b.TryNewRaw(t.Shape(), t.DType())
	if err != nil {
		return nil, fmt.Errorf("transfer to %s: %w", b.Name(), err)
	}
	out := Upgrade[T](raw, b, nil)
	out.CopyFrom(t.AsVec())
	return out, nil
}

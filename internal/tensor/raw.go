package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where a buffer's memory lives.
type Device int

// Supported compute devices. Only CPU ships with the library; the others
// exist so external backends can tag their buffers.
const (
	CPU Device = iota
	CUDA
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// buffer is a reference-counted block of element storage shared between a
// RawTensor and any of its clones or reshaped views.
type buffer struct {
	data []byte
	refs atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refs.Store(1)
	return b
}

func (b *buffer) addRef() {
	b.refs.Add(1)
}

func (b *buffer) release() {
	if b.refs.Add(-1) == 0 {
		b.data = nil
	}
}

// RawTensor is a device-owned nd-array buffer for a given shape and element
// type. It carries no identity and no tape; those belong to the Tensor
// handle. Buffers are mutated only through device kernels.
type RawTensor struct {
	buffer *buffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
	offset int
}

// NewRaw allocates a zero-initialized RawTensor with the given shape and
// element type. Devices wrap this with their own fallible entry points.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	byteSize := shape.NumElements() * dtype.Size()
	return &RawTensor{
		buffer: newBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the buffer's shape.
func (r *RawTensor) Shape() Shape { return r.shape }

// Strides returns the row-major memory strides.
func (r *RawTensor) Strides() []int { return r.stride }

// DType returns the element type tag.
func (r *RawTensor) DType() DataType { return r.dtype }

// Device returns the owning device.
func (r *RawTensor) Device() Device { return r.device }

// NumElements returns the total element count.
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// ByteSize returns the buffer size in bytes.
func (r *RawTensor) ByteSize() int { return r.NumElements() * r.dtype.Size() }

// Bytes returns the raw byte slice backing this tensor's elements.
// Device kernels use it for dtype-agnostic fills and copies.
func (r *RawTensor) Bytes() []byte {
	return r.buffer.data[r.offset : r.offset+r.ByteSize()]
}

// AsFloat32 views the buffer as []float32. Panics on dtype mismatch;
// that indicates a broken invariant, not an environment failure.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("buffer dtype is %s, not float32", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat64 views the buffer as []float64. Panics on dtype mismatch.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("buffer dtype is %s, not float64", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsBool views the buffer as []bool. Panics on dtype mismatch.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("buffer dtype is %s, not bool", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Clone returns a new RawTensor sharing the same reference-counted buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// DeepClone returns a RawTensor backed by a fresh buffer holding a copy of
// the data. Unlike Clone, mutating either side never affects the other.
func (r *RawTensor) DeepClone() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(err)
	}
	copy(out.Bytes(), r.Bytes())
	return out
}

// Reshaped returns a view sharing this buffer with a new shape. Panics if
// the element count changes; reshape never reinterprets the count.
func (r *RawTensor) Reshaped(shape Shape) *RawTensor {
	if shape.NumElements() != r.NumElements() {
		panic(fmt.Sprintf("reshape %v -> %v changes element count (%d -> %d)",
			r.shape, shape, r.NumElements(), shape.NumElements()))
	}
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// Release decrements the buffer's reference count, freeing the memory when
// the last reference drops.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// SharesBufferWith reports whether two raw tensors alias the same storage.
func (r *RawTensor) SharesBufferWith(other *RawTensor) bool {
	return r.buffer == other.buffer
}

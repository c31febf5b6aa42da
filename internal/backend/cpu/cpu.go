// Package cpu implements the CPU device: buffer allocation, fills,
// sampling, and the kernel set behind the differentiable operations.
package cpu

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/gradtape/gradtape/internal/parallel"
	"github.com/gradtape/gradtape/internal/tensor"
)

// Device is the CPU backend. The zero value is not usable; construct it
// with New. Device values are cheap handles and safe to share between
// goroutines.
type Device struct {
	allocLimit int
	par        parallel.Config
}

// Option configures a Device.
type Option func(*Device)

// WithAllocLimit rejects any single buffer allocation larger than the
// given byte count, surfacing tensor.ErrOutOfMemory from TryNewRaw.
func WithAllocLimit(bytes int) Option {
	return func(d *Device) { d.allocLimit = bytes }
}

// WithParallelism overrides the kernel parallelism configuration.
func WithParallelism(cfg parallel.Config) Option {
	return func(d *Device) { d.par = cfg }
}

// New creates a CPU device.
func New(opts ...Option) *Device {
	d := &Device{par: parallel.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the backend name.
func (d *Device) Name() string { return "CPU" }

// Device returns the compute device tag.
func (d *Device) Device() tensor.Device { return tensor.CPU }

// TryNewRaw allocates a zero-initialized buffer for the given shape and
// element type. Allocation is the only fallible path in the backend.
func (d *Device) TryNewRaw(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if d.allocLimit > 0 {
		if bytes := shape.NumElements() * dtype.Size(); bytes > d.allocLimit {
			return nil, fmt.Errorf("cpu: allocate %d bytes for shape %v exceeds limit %d: %w",
				bytes, shape, d.allocLimit, tensor.ErrOutOfMemory)
		}
	}
	return tensor.NewRaw(shape, dtype, tensor.CPU)
}

// newRaw is the kernel-internal allocator. Kernels treat allocation
// failure as fatal, matching the panic policy for contract violations.
func (d *Device) newRaw(shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	r, err := d.TryNewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return r
}

// FillZeros resets every element to zero.
func (d *Device) FillZeros(r *tensor.RawTensor) {
	clear(r.Bytes())
}

// FillOnes sets every element to one (true for Bool).
func (d *Device) FillOnes(r *tensor.RawTensor) {
	switch r.DType() {
	case tensor.Float32:
		data := r.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := r.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	case tensor.Bool:
		data := r.AsBool()
		for i := range data {
			data[i] = true
		}
	}
}

// FillRandom fills the buffer with values drawn from dist. Draw order is
// sequential, so a seeded distribution yields reproducible buffers.
func (d *Device) FillRandom(r *tensor.RawTensor, dist tensor.Sampler) {
	switch r.DType() {
	case tensor.Float32:
		data := r.AsFloat32()
		for i := range data {
			data[i] = float32(dist.Rand())
		}
	case tensor.Float64:
		data := r.AsFloat64()
		for i := range data {
			data[i] = dist.Rand()
		}
	default:
		panic(fmt.Sprintf("cpu: cannot sample into %s buffer", r.DType()))
	}
}

// RandomU64 returns a process-unique random value for seeding samplers.
func (d *Device) RandomU64() uint64 {
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8])
}

// Copyright 2025 The gradtape Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensors, device storage and
// gradient bookkeeping.
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := ops.Add(x.Trace(), y)
package tensor

import (
	"github.com/gradtape/gradtape/internal/tensor"
)

// DType is the constraint for tensor element types: float32, float64, bool.
type DType = tensor.DType

// Float is the constraint for differentiable element types.
type Float = tensor.Float

// DataType is the runtime tag of a tensor's element type.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Bool    DataType = tensor.Bool
)

// Device identifies where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape holds the dimensions of a tensor, e.g. Shape{2, 3, 4}.
type Shape = tensor.Shape

// Shaped is anything that reports a shape; tensors and shapes both do.
type Shaped = tensor.Shaped

// TensorID is the process-unique identity of a tensor. Gradients are keyed
// by it.
type TensorID = tensor.TensorID

// RawTensor is the untyped device buffer underlying a Tensor.
type RawTensor = tensor.RawTensor

// Tensor is a typed, shape-carrying handle over a RawTensor, optionally
// attached to a gradient tape.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Backend is the device capability interface: allocation, fills and the
// kernels operations are built from.
type Backend = tensor.Backend

// Sampler is a source of random values for tensor filling. The
// distributions in gonum's stat/distuv satisfy it.
type Sampler = tensor.Sampler

// ErrOutOfMemory is wrapped by every allocation failure.
var ErrOutOfMemory = tensor.ErrOutOfMemory

// NewRaw allocates a zero-initialized raw tensor on the given device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// BroadcastShapes computes the NumPy-style broadcast of two shapes.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Upgrade wraps a raw tensor in a typed handle with a fresh identity,
// attached to the given tape. Pass a nil tape for a detached tensor.
func Upgrade[T DType, B Backend](raw *RawTensor, b B, tape *Tape) *Tensor[T, B] {
	return tensor.Upgrade[T, B](raw, b, tape)
}

// Zeros creates a tensor filled with zeros, panicking on allocation failure.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// TryZeros creates a tensor filled with zeros.
func TryZeros[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.TryZeros[T, B](shape, b)
}

// ZerosLike creates a zero tensor with the shape of src.
func ZerosLike[T DType, B Backend](src Shaped, b B) *Tensor[T, B] {
	return tensor.ZerosLike[T, B](src, b)
}

// Ones creates a tensor filled with ones, panicking on allocation failure.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// TryOnes creates a tensor filled with ones.
func TryOnes[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.TryOnes[T, B](shape, b)
}

// OnesLike creates a ones tensor with the shape of src.
func OnesLike[T DType, B Backend](src Shaped, b B) *Tensor[T, B] {
	return tensor.OnesLike[T, B](src, b)
}

// Full creates a tensor filled with a single value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Sample creates a tensor drawn element-wise from dist.
func Sample[T Float, B Backend](shape Shape, dist Sampler, b B) *Tensor[T, B] {
	return tensor.Sample[T, B](shape, dist, b)
}

// SampleNormal creates a tensor drawn from the standard normal
// distribution.
func SampleNormal[T Float, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.SampleNormal[T, B](shape, b)
}

// SampleUniform creates a tensor drawn uniformly from [0, 1).
func SampleUniform[T Float, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.SampleUniform[T, B](shape, b)
}

// FromSlice creates a tensor holding a copy of data, panicking when the
// length does not match the shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) *Tensor[T, B] {
	return tensor.FromSlice[T, B](data, shape, b)
}

// TryFromSlice creates a tensor holding a copy of data.
func TryFromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.TryFromSlice[T, B](data, shape, b)
}

// To copies a tensor onto another backend.
func To[T DType, B1 Backend, B2 Backend](t *Tensor[T, B1], b B2) (*Tensor[T, B2], error) {
	return tensor.To[T, B1, B2](t, b)
}

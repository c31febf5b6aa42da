package tensor

import (
	"fmt"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// TryZeros allocates a tensor filled with zeros.
func TryZeros[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	var dummy T
	raw, err := b.TryNewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	return Upgrade[T](raw, b, nil), nil
}

// Zeros is the panicking convenience form of TryZeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t, err := TryZeros[T](shape, b)
	if err != nil {
		panic(err)
	}
	return t
}

// TryZerosLike allocates a zero tensor shaped like src.
func TryZerosLike[T DType, B Backend](src Shaped, b B) (*Tensor[T, B], error) {
	return TryZeros[T](src.Shape(), b)
}

// ZerosLike is the panicking convenience form of TryZerosLike.
func ZerosLike[T DType, B Backend](src Shaped, b B) *Tensor[T, B] {
	return Zeros[T](src.Shape(), b)
}

// TryOnes allocates a tensor filled with ones.
func TryOnes[T DType, B Backend](shape Shape, b B) (*Tensor[T, B], error) {
	t, err := TryZeros[T](shape, b)
	if err != nil {
		return nil, err
	}
	b.FillOnes(t.Raw())
	return t, nil
}

// Ones is the panicking convenience form of TryOnes.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t, err := TryOnes[T](shape, b)
	if err != nil {
		panic(err)
	}
	return t
}

// TryOnesLike allocates a ones tensor shaped like src.
func TryOnesLike[T DType, B Backend](src Shaped, b B) (*Tensor[T, B], error) {
	return TryOnes[T](src.Shape(), b)
}

// OnesLike is the panicking convenience form of TryOnesLike.
func OnesLike[T DType, B Backend](src Shaped, b B) *Tensor[T, B] {
	return Ones[T](src.Shape(), b)
}

// Full allocates a tensor filled with a constant value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// TrySample allocates a tensor filled with values drawn from dist.
func TrySample[T Float, B Backend](shape Shape, dist Sampler, b B) (*Tensor[T, B], error) {
	var dummy T
	raw, err := b.TryNewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	b.FillRandom(raw, dist)
	return Upgrade[T](raw, b, nil), nil
}

// Sample is the panicking convenience form of TrySample.
func Sample[T Float, B Backend](shape Shape, dist Sampler, b B) *Tensor[T, B] {
	t, err := TrySample[T](shape, dist, b)
	if err != nil {
		panic(err)
	}
	return t
}

// TrySampleLike allocates a sampled tensor shaped like src.
func TrySampleLike[T Float, B Backend](src Shaped, dist Sampler, b B) (*Tensor[T, B], error) {
	return TrySample[T](src.Shape(), dist, b)
}

// SampleLike is the panicking convenience form of TrySampleLike.
func SampleLike[T Float, B Backend](src Shaped, dist Sampler, b B) *Tensor[T, B] {
	return Sample[T](src.Shape(), dist, b)
}

// SampleNormal draws from the standard normal distribution, seeded from
// the backend's random source.
func SampleNormal[T Float, B Backend](shape Shape, b B) *Tensor[T, B] {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: exprand.NewSource(b.RandomU64())}
	return Sample[T](shape, dist, b)
}

// SampleUniform draws from the uniform distribution on [0, 1), seeded from
// the backend's random source.
func SampleUniform[T Float, B Backend](shape Shape, b B) *Tensor[T, B] {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: exprand.NewSource(b.RandomU64())}
	return Sample[T](shape, dist, b)
}

// TryFromSlice allocates a tensor and copies data into it in flat index
// order. Fails if the slice length does not match the shape.
func TryFromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d", shape, shape.NumElements(), len(data))
	}
	t, err := TryZeros[T](shape, b)
	if err != nil {
		return nil, err
	}
	copy(t.Data(), data)
	return t, nil
}

// FromSlice is the panicking convenience form of TryFromSlice.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) *Tensor[T, B] {
	t, err := TryFromSlice(data, shape, b)
	if err != nil {
		panic(err)
	}
	return t
}

package nn

import (
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gradtape/gradtape/internal/tensor"
)

// uniformDist is a symmetric uniform distribution on [-bound, bound],
// seeded from the backend's random source.
func uniformDist(bound float64, b tensor.Backend) distuv.Uniform {
	return distuv.Uniform{
		Min: -bound,
		Max: bound,
		Src: exprand.NewSource(b.RandomU64()),
	}
}

// fillUniform re-initializes r in place with uniform values on
// [-bound, bound], preserving the tensor's identity.
func fillUniform(r *tensor.RawTensor, bound float64, b tensor.Backend) {
	dist := uniformDist(bound, b)
	b.FillRandom(r, dist)
}

package vector

import (
	"math"

	"github.com/hyperjump/kotae/pkg/utils"
)

// SparseVector holds the non-zero weights of a vector. Dims is strictly increasing.
type SparseVector struct {
	Dims    []int
	Weights []float64
}

// IsZero reports whether the vector has no non-zero weight.
func (v SparseVector) IsZero() bool {
	return len(v.Dims) == 0
}

// Dot returns the inner product of two sparse vectors.
func Dot(a, b SparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Dims) && j < len(b.Dims) {
		switch {
		case a.Dims[i] == b.Dims[j]:
			dot += a.Weights[i] * b.Weights[j]
			i++
			j++
		case a.Dims[i] < b.Dims[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Norm returns the L2 norm of v.
func Norm(v SparseVector) float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1].
// A zero vector has similarity 0 with everything.
func Cosine(a, b SparseVector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return utils.Clamp01(Dot(a, b) / (na * nb))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import "math"

// Vector is a sparse term-weight vector over a Vocabulary. Cols is sorted
// ascending and Weights[i] belongs to Cols[i]. Keeping the columns sorted
// fixes the summation order of Norm and Dot, so scores are bit-identical
// across calls.
type Vector struct {
	Cols    []int
	Weights []float64
}

// Len returns the number of non-zero components.
func (v Vector) Len() int { return len(v.Cols) }

// IsZero reports whether v has no non-zero components.
func (v Vector) IsZero() bool { return len(v.Cols) == 0 }

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors by merging their
// sorted columns. For unit vectors this is the cosine similarity.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Cols) && j < len(b.Cols) {
		switch {
		case a.Cols[i] == b.Cols[j]:
			sum += a.Weights[i] * b.Weights[j]
			i++
			j++
		case a.Cols[i] < b.Cols[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalized returns v scaled to unit length, or v unchanged when it is zero.
func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	out := Vector{
		Cols:    v.Cols,
		Weights: make([]float64, len(v.Weights)),
	}
	for i, w := range v.Weights {
		out.Weights[i] = w / n
	}
	return out
}

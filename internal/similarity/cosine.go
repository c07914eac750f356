// Package similarity computes normalized similarity statistics between
// embedding vectors.
package similarity

import (
	"fmt"
	"math"
)

// Cosine returns the cosine similarity between two vectors of identical
// dimensionality. A zero-magnitude vector (degenerate embedding) yields
// 0.0 rather than a divide-by-zero. Mismatched dimensionality is a
// programming error, not user input, and panics.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("similarity: dimensionality mismatch: %d vs %d", len(a), len(b)))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Score returns the cosine similarity clamped to [0.0, 1.0]. Verdict
// logic treats negative similarity as no similarity.
func Score(a, b []float64) float64 {
	score := Cosine(a, b)
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

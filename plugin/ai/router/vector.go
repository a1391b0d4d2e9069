package router

import "math"

// normalizeVector scales vec to unit length. A zero or empty vector yields nil.
func normalizeVector[T float32 | float64](vec []T) []float64 {
	if len(vec) == 0 {
		return nil
	}
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm <= 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil
	}
	out := make([]float64, len(vec))
	for i, x := range vec {
		out[i] = float64(x) / norm
	}
	return out
}

// cosineSimilarity of two unit vectors, compared over their shared prefix.
// Either vector being empty scores -1.
func cosineSimilarity(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return -1
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	return dot
}

package common

import "math"

const (
	// HashEmbeddingDim is the dimensionality of the fallback hash embedding.
	HashEmbeddingDim = 32

	cosineEpsilon = 1e-8
	normEpsilon   = 1e-6
)

// CosineSimilarity calculates the cosine similarity between two vectors.
// Vectors of different lengths are compared over their overlapping prefix,
// so a fallback hash vector can still be scored against provider vectors.
func CosineSimilarity(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	var dotProduct float64
	var normA float64
	var normB float64

	for i := range n {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	return dotProduct / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}

// HashEmbedding generates a deterministic embedding for the given text without
// calling any provider. Each character increments the bucket at its code point
// modulo dim, and the result is L2-normalized. Identical text always yields an
// identical vector.
func HashEmbedding(text string, dim int) []float64 {
	if dim <= 0 {
		dim = HashEmbeddingDim
	}

	vec := make([]float64, dim)
	for _, r := range text {
		vec[int(r)%dim] += 1.0
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm) + normEpsilon

	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

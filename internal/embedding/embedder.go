// Package embedding defines the seam for turning text into fixed-length
// semantic vectors.
package embedding

import "context"

// Embedder converts free text into a numeric vector representation of a
// fixed dimension.
type Embedder interface {
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

package interfaces

import "context"

// Embedder generates a fixed-dimension vector embedding for a text
type Embedder interface {
	// Embed returns the embedding of the given text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the dimensionality of the output vectors
	Dimension() int
}

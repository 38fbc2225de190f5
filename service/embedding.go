package service

import "context"

// Embedder maps text to a fixed-dimension vector. The dimension is
// discovered from the first embedding a provider returns and stays constant
// for the process lifetime; it is never configured up front.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

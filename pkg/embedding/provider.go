package embedding

import "context"

// EmbeddingProvider defines the contract for any embedding backend
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

package similarity

import (
	"context"

	"mufessir/pkg/embedding"
)

// Scorer measures how close two texts are, in [0, 1].
type Scorer interface {
	Score(ctx context.Context, text1, text2 string) (float64, error)
}

// LexicalScorer scores with word-frequency cosine similarity. Never errors.
type LexicalScorer struct{}

func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

func (s *LexicalScorer) Score(ctx context.Context, text1, text2 string) (float64, error) {
	return LexicalSimilarity(text1, text2), nil
}

// EmbeddingScorer scores with embedding cosine similarity and falls back
// to the lexical scorer when the embedding backend fails.
type EmbeddingScorer struct {
	provider embedding.EmbeddingProvider
	fallback Scorer
}

func NewEmbeddingScorer(provider embedding.EmbeddingProvider) *EmbeddingScorer {
	return &EmbeddingScorer{
		provider: provider,
		fallback: NewLexicalScorer(),
	}
}

func (s *EmbeddingScorer) Score(ctx context.Context, text1, text2 string) (float64, error) {
	emb1, err := s.provider.Embed(ctx, text1)
	if err != nil {
		return s.fallback.Score(ctx, text1, text2)
	}
	emb2, err := s.provider.Embed(ctx, text2)
	if err != nil {
		return s.fallback.Score(ctx, text1, text2)
	}
	return Cosine(emb1, emb2), nil
}

package contract

import (
	"context"

	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
)

// ScoredTafsir wraps a Tafsir with its similarity score against a query embedding.
type ScoredTafsir struct {
	Tafsir     *entity.Tafsir
	Scholar    *entity.Scholar
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type TafsirRepository interface {
	Create(ctx context.Context, tafsir *entity.Tafsir) error
	CreateBulk(ctx context.Context, tafsirs []*entity.Tafsir) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tafsir, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tafsir, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindForVerse loads tafsirs for a verse with their scholars preloaded,
	// applying optional scholar include/exclude filters.
	FindForVerse(ctx context.Context, verseId string, specs ...specification.Specification) ([]*ScoredTafsir, error)
	// FindSample returns up to limit tafsirs regardless of verse, scholars preloaded.
	FindSample(ctx context.Context, limit int, specs ...specification.Specification) ([]*ScoredTafsir, error)

	// SearchSimilarWithScore ranks tafsirs by cosine similarity against the
	// query embedding, filtered by threshold. An empty verseId searches
	// across all verses.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, verseId string, limit int, threshold float64, specs ...specification.Specification) ([]*ScoredTafsir, error)

	// Embedding backfill
	FindMissingEmbeddings(ctx context.Context, limit int) ([]*entity.Tafsir, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

package contract

import (
	"context"
	"time"

	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
)

// CachedResult pairs a search with one of its persisted results.
type CachedResult struct {
	Search *entity.Search
	Result *entity.SearchResult
}

type SearchRepository interface {
	Create(ctx context.Context, search *entity.Search) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Search, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Search, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateResult(ctx context.Context, result *entity.SearchResult) error

	// FindLatestCached returns the newest search matching the cache key created
	// at or after the freshness horizon, together with its newest result.
	// Returns nil when no fresh result exists.
	FindLatestCached(ctx context.Context, cacheKey string, since time.Time) (*CachedResult, error)
}

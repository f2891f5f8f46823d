package implementation

import (
	"context"
	"errors"
	"time"

	"mufessir/internal/entity"
	"mufessir/internal/mapper"
	"mufessir/internal/model"
	"mufessir/internal/repository/contract"
	"mufessir/internal/repository/specification"

	"gorm.io/gorm"
)

type SearchRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchMapper
}

func NewSearchRepository(db *gorm.DB) contract.SearchRepository {
	return &SearchRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchMapper(),
	}
}

func (r *SearchRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SearchRepositoryImpl) Create(ctx context.Context, search *entity.Search) error {
	m, err := r.mapper.ToModel(search)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*search = *created
	return nil
}

func (r *SearchRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Search, error) {
	var m model.Search
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SearchRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Search, error) {
	var models []*model.Search
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Search, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *SearchRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Search{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SearchRepositoryImpl) CreateResult(ctx context.Context, result *entity.SearchResult) error {
	m := r.mapper.ResultToModel(result)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*result = *r.mapper.ResultToEntity(m)
	return nil
}

// FindLatestCached picks the newest search carrying the cache key within the
// freshness window, then its newest result. Duplicate searches for the same
// key are tolerated, newest wins.
func (r *SearchRepositoryImpl) FindLatestCached(ctx context.Context, cacheKey string, since time.Time) (*contract.CachedResult, error) {
	var searchModel model.Search
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByCacheKey{CacheKey: cacheKey},
		specification.CreatedAfter{Value: since},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	err := query.First(&searchModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var resultModel model.SearchResult
	err = r.db.WithContext(ctx).
		Where("search_id = ?", searchModel.Id).
		Order("created_at DESC").
		First(&resultModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	search, err := r.mapper.ToEntity(&searchModel)
	if err != nil {
		return nil, err
	}
	return &contract.CachedResult{
		Search: search,
		Result: r.mapper.ResultToEntity(&resultModel),
	}, nil
}

package implementation

import (
	"context"
	"errors"

	"mufessir/internal/entity"
	"mufessir/internal/mapper"
	"mufessir/internal/model"
	"mufessir/internal/repository/contract"
	"mufessir/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuranMapper
}

func NewVerseRepository(db *gorm.DB) contract.VerseRepository {
	return &VerseRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuranMapper(),
	}
}

func (r *VerseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VerseRepositoryImpl) Create(ctx context.Context, verse *entity.Verse) error {
	m := r.mapper.VerseToModel(verse)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*verse = *r.mapper.VerseToEntity(m)
	return nil
}

func (r *VerseRepositoryImpl) CreateBulk(ctx context.Context, verses []*entity.Verse) error {
	if len(verses) == 0 {
		return nil
	}
	models := make([]*model.Verse, len(verses))
	for i, v := range verses {
		models[i] = r.mapper.VerseToModel(v)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, 500).Error
}

func (r *VerseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Verse, error) {
	var m model.Verse
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VerseToEntity(&m), nil
}

func (r *VerseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Verse, error) {
	var models []*model.Verse
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.VersesToEntities(models), nil
}

func (r *VerseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Verse{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

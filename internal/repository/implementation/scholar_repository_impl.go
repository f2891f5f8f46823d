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

type ScholarRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuranMapper
}

func NewScholarRepository(db *gorm.DB) contract.ScholarRepository {
	return &ScholarRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuranMapper(),
	}
}

func (r *ScholarRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScholarRepositoryImpl) Create(ctx context.Context, scholar *entity.Scholar) error {
	m := r.mapper.ScholarToModel(scholar)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*scholar = *r.mapper.ScholarToEntity(m)
	return nil
}

func (r *ScholarRepositoryImpl) CreateBulk(ctx context.Context, scholars []*entity.Scholar) error {
	if len(scholars) == 0 {
		return nil
	}
	models := make([]*model.Scholar, len(scholars))
	for i, s := range scholars {
		models[i] = r.mapper.ScholarToModel(s)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, 200).Error
}

func (r *ScholarRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Scholar, error) {
	var m model.Scholar
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ScholarToEntity(&m), nil
}

func (r *ScholarRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Scholar, error) {
	var models []*model.Scholar
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ScholarsToEntities(models), nil
}

func (r *ScholarRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Scholar{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

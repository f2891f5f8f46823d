package implementation

import (
	"context"
	"errors"

	"mufessir/internal/entity"
	"mufessir/internal/mapper"
	"mufessir/internal/model"
	"mufessir/internal/repository/contract"
	"mufessir/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TafsirRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuranMapper
}

func NewTafsirRepository(db *gorm.DB) contract.TafsirRepository {
	return &TafsirRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuranMapper(),
	}
}

func (r *TafsirRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TafsirRepositoryImpl) Create(ctx context.Context, tafsir *entity.Tafsir) error {
	m := r.mapper.TafsirToModel(tafsir)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tafsir = *r.mapper.TafsirToEntity(m)
	return nil
}

func (r *TafsirRepositoryImpl) CreateBulk(ctx context.Context, tafsirs []*entity.Tafsir) error {
	if len(tafsirs) == 0 {
		return nil
	}
	models := make([]*model.Tafsir, len(tafsirs))
	for i, t := range tafsirs {
		models[i] = r.mapper.TafsirToModel(t)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, 50).Error
}

func (r *TafsirRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tafsir, error) {
	var m model.Tafsir
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TafsirToEntity(&m), nil
}

func (r *TafsirRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tafsir, error) {
	var models []*model.Tafsir
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TafsirsToEntities(models), nil
}

func (r *TafsirRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Tafsir{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TafsirRepositoryImpl) FindForVerse(ctx context.Context, verseId string, specs ...specification.Specification) ([]*contract.ScoredTafsir, error) {
	var models []*model.Tafsir
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Scholar"), specs...)
	query = specification.ByVerseID{VerseID: verseId}.Apply(query)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toScored(models, nil), nil
}

func (r *TafsirRepositoryImpl) FindSample(ctx context.Context, limit int, specs ...specification.Specification) ([]*contract.ScoredTafsir, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.Tafsir
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Scholar"), specs...)
	if err := query.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toScored(models, nil), nil
}

// SearchSimilarWithScore ranks a verse's tafsirs by cosine similarity.
// Cosine distance in pgvector is 1 - cosine_similarity, so
// 1 - (embedding <=> query_vector) recovers the similarity.
func (r *TafsirRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, verseId string, limit int, threshold float64, specs ...specification.Specification) ([]*contract.ScoredTafsir, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Tafsir
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("tafsirs").
		Select("tafsirs.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold)
	query = specification.EmbeddingPresent{}.Apply(query)
	if verseId != "" {
		query = specification.ByVerseID{VerseID: verseId}.Apply(query)
	}
	query = r.applySpecifications(query, specs...)

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredTafsir, len(results))
	scholarIds := make([]string, 0, len(results))
	for _, res := range results {
		scholarIds = append(scholarIds, res.Tafsir.ScholarId)
	}
	scholars, err := r.loadScholars(ctx, scholarIds)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		t := res.Tafsir
		scored[i] = &contract.ScoredTafsir{
			Tafsir:     r.mapper.TafsirToEntity(&t),
			Scholar:    scholars[t.ScholarId],
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *TafsirRepositoryImpl) FindMissingEmbeddings(ctx context.Context, limit int) ([]*entity.Tafsir, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []*model.Tafsir
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.EmbeddingMissing{},
		specification.Pagination{Limit: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TafsirsToEntities(models), nil
}

func (r *TafsirRepositoryImpl) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	return r.db.WithContext(ctx).Model(&model.Tafsir{}).
		Where("id = ?", id).
		Update("embedding", pgvector.NewVector(embedding)).Error
}

func (r *TafsirRepositoryImpl) toScored(models []*model.Tafsir, scores map[string]float64) []*contract.ScoredTafsir {
	scored := make([]*contract.ScoredTafsir, len(models))
	for i, m := range models {
		var scholar *entity.Scholar
		if m.Scholar != nil {
			scholar = r.mapper.ScholarToEntity(m.Scholar)
		}
		s := &contract.ScoredTafsir{
			Tafsir:  r.mapper.TafsirToEntity(m),
			Scholar: scholar,
		}
		if scores != nil {
			s.Similarity = scores[m.Id]
		}
		scored[i] = s
	}
	return scored
}

func (r *TafsirRepositoryImpl) loadScholars(ctx context.Context, ids []string) (map[string]*entity.Scholar, error) {
	scholars := make(map[string]*entity.Scholar, len(ids))
	if len(ids) == 0 {
		return scholars, nil
	}
	var models []*model.Scholar
	query := specification.ByStringIDs{IDs: ids}.Apply(r.db.WithContext(ctx))
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	for _, m := range models {
		scholars[m.Id] = r.mapper.ScholarToEntity(m)
	}
	return scholars, nil
}

package mapper

import (
	"encoding/json"

	"mufessir/internal/entity"
	"mufessir/internal/model"
)

type SearchMapper struct{}

func NewSearchMapper() *SearchMapper {
	return &SearchMapper{}
}

func (m *SearchMapper) ToEntity(s *model.Search) (*entity.Search, error) {
	if s == nil {
		return nil, nil
	}
	var query entity.SearchQuery
	if len(s.Query) > 0 {
		if err := json.Unmarshal(s.Query, &query); err != nil {
			return nil, err
		}
	}
	return &entity.Search{
		Id:        s.Id,
		UserId:    s.UserId,
		VerseId:   s.VerseId,
		Query:     query,
		CreatedAt: s.CreatedAt,
	}, nil
}

func (m *SearchMapper) ToModel(s *entity.Search) (*model.Search, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s.Query)
	if err != nil {
		return nil, err
	}
	return &model.Search{
		Id:        s.Id,
		UserId:    s.UserId,
		VerseId:   s.VerseId,
		Query:     raw,
		CreatedAt: s.CreatedAt,
	}, nil
}

func (m *SearchMapper) ResultToEntity(r *model.SearchResult) *entity.SearchResult {
	if r == nil {
		return nil
	}
	return &entity.SearchResult{
		Id:              r.Id,
		SearchId:        r.SearchId,
		TafsirId:        r.TafsirId,
		AiResponse:      r.AiResponse,
		SimilarityScore: r.SimilarityScore,
		Fallback:        r.Fallback,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *SearchMapper) ResultToModel(r *entity.SearchResult) *model.SearchResult {
	if r == nil {
		return nil
	}
	return &model.SearchResult{
		Id:              r.Id,
		SearchId:        r.SearchId,
		TafsirId:        r.TafsirId,
		AiResponse:      r.AiResponse,
		SimilarityScore: r.SimilarityScore,
		Fallback:        r.Fallback,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *SearchMapper) ResultsToEntities(results []*model.SearchResult) []*entity.SearchResult {
	entities := make([]*entity.SearchResult, len(results))
	for i, r := range results {
		entities[i] = m.ResultToEntity(r)
	}
	return entities
}

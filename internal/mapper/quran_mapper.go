package mapper

import (
	"mufessir/internal/entity"
	"mufessir/internal/model"

	"github.com/pgvector/pgvector-go"
)

type QuranMapper struct{}

func NewQuranMapper() *QuranMapper {
	return &QuranMapper{}
}

func (m *QuranMapper) VerseToEntity(v *model.Verse) *entity.Verse {
	if v == nil {
		return nil
	}
	return &entity.Verse{
		Id:              v.Id,
		SurahNumber:     v.SurahNumber,
		SurahName:       v.SurahName,
		VerseNumber:     v.VerseNumber,
		ArabicText:      v.ArabicText,
		Transliteration: v.Transliteration,
		Translation:     v.Translation,
		CreatedAt:       v.CreatedAt,
	}
}

func (m *QuranMapper) VerseToModel(v *entity.Verse) *model.Verse {
	if v == nil {
		return nil
	}
	return &model.Verse{
		Id:              v.Id,
		SurahNumber:     v.SurahNumber,
		SurahName:       v.SurahName,
		VerseNumber:     v.VerseNumber,
		ArabicText:      v.ArabicText,
		Transliteration: v.Transliteration,
		Translation:     v.Translation,
		CreatedAt:       v.CreatedAt,
	}
}

func (m *QuranMapper) VersesToEntities(verses []*model.Verse) []*entity.Verse {
	entities := make([]*entity.Verse, len(verses))
	for i, v := range verses {
		entities[i] = m.VerseToEntity(v)
	}
	return entities
}

func (m *QuranMapper) ScholarToEntity(s *model.Scholar) *entity.Scholar {
	if s == nil {
		return nil
	}
	return &entity.Scholar{
		Id:              s.Id,
		Name:            s.Name,
		BirthYear:       s.BirthYear,
		DeathYear:       s.DeathYear,
		Century:         s.Century,
		Madhab:          s.Madhab,
		Period:          s.Period,
		Environment:     s.Environment,
		OriginCountry:   s.OriginCountry,
		ReputationScore: s.ReputationScore,
	}
}

func (m *QuranMapper) ScholarToModel(s *entity.Scholar) *model.Scholar {
	if s == nil {
		return nil
	}
	return &model.Scholar{
		Id:              s.Id,
		Name:            s.Name,
		BirthYear:       s.BirthYear,
		DeathYear:       s.DeathYear,
		Century:         s.Century,
		Madhab:          s.Madhab,
		Period:          s.Period,
		Environment:     s.Environment,
		OriginCountry:   s.OriginCountry,
		ReputationScore: s.ReputationScore,
	}
}

func (m *QuranMapper) ScholarsToEntities(scholars []*model.Scholar) []*entity.Scholar {
	entities := make([]*entity.Scholar, len(scholars))
	for i, s := range scholars {
		entities[i] = m.ScholarToEntity(s)
	}
	return entities
}

func (m *QuranMapper) TafsirToEntity(t *model.Tafsir) *entity.Tafsir {
	if t == nil {
		return nil
	}
	var embedding []float32
	if t.Embedding != nil {
		embedding = t.Embedding.Slice()
	}
	return &entity.Tafsir{
		Id:         t.Id,
		VerseId:    t.VerseId,
		ScholarId:  t.ScholarId,
		TafsirText: t.TafsirText,
		TafsirType: t.TafsirType,
		Embedding:  embedding,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *QuranMapper) TafsirToModel(t *entity.Tafsir) *model.Tafsir {
	if t == nil {
		return nil
	}
	var embedding *pgvector.Vector
	if t.Embedding != nil {
		v := pgvector.NewVector(t.Embedding)
		embedding = &v
	}
	return &model.Tafsir{
		Id:         t.Id,
		VerseId:    t.VerseId,
		ScholarId:  t.ScholarId,
		TafsirText: t.TafsirText,
		TafsirType: t.TafsirType,
		Embedding:  embedding,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *QuranMapper) TafsirsToEntities(tafsirs []*model.Tafsir) []*entity.Tafsir {
	entities := make([]*entity.Tafsir, len(tafsirs))
	for i, t := range tafsirs {
		entities[i] = m.TafsirToEntity(t)
	}
	return entities
}

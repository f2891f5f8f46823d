package service

import (
	"context"

	"mufessir/internal/dto"
	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"

	"gorm.io/gorm"
)

const maxPageSize = 100

type IVerseService interface {
	GetBySurahVerse(ctx context.Context, surahNumber, verseNumber int) (*dto.VerseResponse, error)
	List(ctx context.Context, query string, surahNumber, skip, take int) (*dto.VerseListResponse, error)
}

type verseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewVerseService(uowFactory unitofwork.RepositoryFactory) IVerseService {
	return &verseService{uowFactory: uowFactory}
}

func (s *verseService) GetBySurahVerse(ctx context.Context, surahNumber, verseNumber int) (*dto.VerseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	verse, err := uow.VerseRepository().FindOne(ctx, specification.BySurahVerse{
		SurahNumber: surahNumber,
		VerseNumber: verseNumber,
	})
	if err != nil {
		return nil, err
	}
	if verse == nil {
		return nil, nil
	}
	resp := verseToDTO(verse)
	return &resp, nil
}

// textContains matches a substring over Arabic text or translation.
type textContains struct {
	q string
}

func (s textContains) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.q + "%"
	return db.Where("arabic_text LIKE ? OR translation LIKE ?", like, like)
}

func (s *verseService) List(ctx context.Context, query string, surahNumber, skip, take int) (*dto.VerseListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if take <= 0 {
		take = 20
	}
	if take > maxPageSize {
		take = maxPageSize
	}
	if skip < 0 {
		skip = 0
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "surah_number"},
		specification.OrderBy{Field: "verse_number"},
		specification.Pagination{Limit: take, Offset: skip},
	}
	countSpecs := []specification.Specification{}
	if surahNumber > 0 {
		specs = append([]specification.Specification{specification.BySurah{SurahNumber: surahNumber}}, specs...)
		countSpecs = append(countSpecs, specification.BySurah{SurahNumber: surahNumber})
	}
	if query != "" {
		specs = append([]specification.Specification{textContains{q: query}}, specs...)
		countSpecs = append(countSpecs, textContains{q: query})
	}

	verses, err := uow.VerseRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.VerseRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VerseResponse, len(verses))
	for i, v := range verses {
		items[i] = verseToDTO(v)
	}
	return &dto.VerseListResponse{
		Items: items,
		Total: total,
		Skip:  skip,
		Take:  take,
	}, nil
}

func verseToDTO(v *entity.Verse) dto.VerseResponse {
	resp := dto.VerseResponse{
		Id:          v.Id,
		SurahNumber: v.SurahNumber,
		SurahName:   v.SurahName,
		VerseNumber: v.VerseNumber,
		ArabicText:  v.ArabicText,
	}
	if v.Transliteration != nil {
		resp.Transliteration = *v.Transliteration
	}
	if v.Translation != nil {
		resp.Translation = *v.Translation
	}
	return resp
}

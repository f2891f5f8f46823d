package service

import (
	"context"
	"sort"

	"mufessir/internal/dto"
	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"
)

var supportedLanguages = []string{"Turkish", "English", "Arabic"}

type IFilterService interface {
	GetOptions(ctx context.Context) (*dto.FilterOptionsResponse, error)
}

type filterService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFilterService(uowFactory unitofwork.RepositoryFactory) IFilterService {
	return &filterService{uowFactory: uowFactory}
}

func (s *filterService) GetOptions(ctx context.Context) (*dto.FilterOptionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scholars, err := uow.ScholarRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	resp := &dto.FilterOptionsResponse{
		Scholars:           make([]dto.ScholarResponse, len(scholars)),
		ToneRange:          dto.ScaleRange{Min: 1, Max: 10},
		IntellectRange:     dto.ScaleRange{Min: 1, Max: 10},
		SupportedLanguages: supportedLanguages,
	}

	centuries := map[int]struct{}{}
	madhabs := map[string]struct{}{}
	periods := map[string]struct{}{}
	environments := map[string]struct{}{}
	countries := map[string]struct{}{}
	var birthYears, deathYears []int

	for i, sc := range scholars {
		resp.Scholars[i] = scholarToDTO(sc)

		centuries[sc.Century] = struct{}{}
		collect(madhabs, sc.Madhab)
		collect(periods, sc.Period)
		collect(environments, sc.Environment)
		collect(countries, sc.OriginCountry)
		if sc.BirthYear != nil {
			birthYears = append(birthYears, *sc.BirthYear)
		}
		if sc.DeathYear != nil {
			deathYears = append(deathYears, *sc.DeathYear)
		}
	}

	resp.FilterOptions = dto.FilterFacets{
		Centuries:      sortedInts(centuries),
		Madhabs:        sortedStrings(madhabs),
		Periods:        sortedStrings(periods),
		Environments:   sortedStrings(environments),
		Countries:      sortedStrings(countries),
		BirthYearRange: yearRange(birthYears),
		DeathYearRange: yearRange(deathYears),
	}
	return resp, nil
}

func scholarToDTO(sc *entity.Scholar) dto.ScholarResponse {
	resp := dto.ScholarResponse{
		Id:              sc.Id,
		Name:            sc.Name,
		BirthYear:       sc.BirthYear,
		DeathYear:       sc.DeathYear,
		Century:         sc.Century,
		ReputationScore: sc.ReputationScore,
	}
	if sc.Madhab != nil {
		resp.Madhab = *sc.Madhab
	}
	if sc.Period != nil {
		resp.Period = *sc.Period
	}
	if sc.Environment != nil {
		resp.Environment = *sc.Environment
	}
	if sc.OriginCountry != nil {
		resp.OriginCountry = *sc.OriginCountry
	}
	return resp
}

func collect(set map[string]struct{}, v *string) {
	if v != nil && *v != "" {
		set[*v] = struct{}{}
	}
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func yearRange(years []int) *dto.YearRange {
	if len(years) == 0 {
		return nil
	}
	min, max := years[0], years[0]
	for _, y := range years[1:] {
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return &dto.YearRange{Min: min, Max: max}
}

package service

import (
	"context"
	"testing"

	"mufessir/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scholarFixture(id, name string, century int, madhab, period, country string, death int) *entity.Scholar {
	return &entity.Scholar{
		Id:            id,
		Name:          name,
		Century:       century,
		Madhab:        &madhab,
		Period:        &period,
		OriginCountry: &country,
		DeathYear:     &death,
	}
}

func TestGetOptions(t *testing.T) {
	store := newFakeStore()
	store.scholars["scholar-1"] = scholarFixture("scholar-1", "İbn Kesir", 14, "Şafii", "Memlük", "Suriye", 1373)
	store.scholars["scholar-2"] = scholarFixture("scholar-2", "Fahreddin Razi", 13, "Şafii", "Selçuklu", "İran", 1210)
	svc := NewFilterService(newFakeFactory(store))

	res, err := svc.GetOptions(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Scholars, 2)
	assert.Equal(t, "Fahreddin Razi", res.Scholars[0].Name, "scholars are ordered by name")

	assert.Equal(t, []int{13, 14}, res.FilterOptions.Centuries)
	assert.Equal(t, []string{"Şafii"}, res.FilterOptions.Madhabs, "duplicate madhabs collapse")
	assert.ElementsMatch(t, []string{"Memlük", "Selçuklu"}, res.FilterOptions.Periods)
	assert.ElementsMatch(t, []string{"Suriye", "İran"}, res.FilterOptions.Countries)

	require.NotNil(t, res.FilterOptions.DeathYearRange)
	assert.Equal(t, 1210, res.FilterOptions.DeathYearRange.Min)
	assert.Equal(t, 1373, res.FilterOptions.DeathYearRange.Max)
	assert.Nil(t, res.FilterOptions.BirthYearRange, "no birth years recorded")

	assert.Equal(t, 1, res.ToneRange.Min)
	assert.Equal(t, 10, res.ToneRange.Max)
	assert.Contains(t, res.SupportedLanguages, "Turkish")
}

func TestGetOptionsEmpty(t *testing.T) {
	svc := NewFilterService(newFakeFactory(newFakeStore()))

	res, err := svc.GetOptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Scholars)
	assert.Empty(t, res.FilterOptions.Centuries)
	assert.Nil(t, res.FilterOptions.BirthYearRange)
	assert.NotEmpty(t, res.SupportedLanguages)
}

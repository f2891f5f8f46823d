package service

import (
	"context"
	"fmt"
	"testing"

	"mufessir/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBySurahVerse(t *testing.T) {
	store := newFakeStore()
	store.verses["verse-1-1"] = &entity.Verse{
		Id: "verse-1-1", SurahNumber: 1, SurahName: "Fatiha", VerseNumber: 1,
		ArabicText:  "بِسْمِ اللَّهِ",
		Translation: translationPtr("Allah'ın adıyla"),
	}
	svc := NewVerseService(newFakeFactory(store))

	verse, err := svc.GetBySurahVerse(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, verse)
	assert.Equal(t, "verse-1-1", verse.Id)
	assert.Equal(t, "Fatiha", verse.SurahName)
	assert.Equal(t, "Allah'ın adıyla", verse.Translation)

	missing, err := svc.GetBySurahVerse(context.Background(), 114, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestList(t *testing.T) {
	store := newFakeStore()
	for i := 1; i <= 30; i++ {
		id := fmt.Sprintf("verse-2-%d", i)
		store.verses[id] = &entity.Verse{
			Id: id, SurahNumber: 2, SurahName: "Bakara", VerseNumber: i,
			ArabicText: "آية",
		}
	}
	svc := NewVerseService(newFakeFactory(store))

	res, err := svc.List(context.Background(), "", 0, 0, 10)
	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, int64(30), res.Total)
	assert.Equal(t, 0, res.Skip)
	assert.Equal(t, 10, res.Take)
	assert.Equal(t, 1, res.Items[0].VerseNumber)

	paged, err := svc.List(context.Background(), "", 0, 25, 10)
	require.NoError(t, err)
	assert.Len(t, paged.Items, 5)
	assert.Equal(t, 26, paged.Items[0].VerseNumber)
}

func TestListBySurah(t *testing.T) {
	store := newFakeStore()
	store.verses["verse-1-1"] = &entity.Verse{Id: "verse-1-1", SurahNumber: 1, SurahName: "Fatiha", VerseNumber: 1, ArabicText: "آية"}
	store.verses["verse-1-2"] = &entity.Verse{Id: "verse-1-2", SurahNumber: 1, SurahName: "Fatiha", VerseNumber: 2, ArabicText: "آية"}
	store.verses["verse-2-1"] = &entity.Verse{Id: "verse-2-1", SurahNumber: 2, SurahName: "Bakara", VerseNumber: 1, ArabicText: "آية"}
	svc := NewVerseService(newFakeFactory(store))

	res, err := svc.List(context.Background(), "", 1, 0, 10)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Total)
	for _, item := range res.Items {
		assert.Equal(t, 1, item.SurahNumber)
	}
}

func TestListDefaultsAndCaps(t *testing.T) {
	store := newFakeStore()
	svc := NewVerseService(newFakeFactory(store))

	res, err := svc.List(context.Background(), "", 0, -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Take, "take defaults to 20")
	assert.Equal(t, 0, res.Skip, "negative skip clamps to 0")

	capped, err := svc.List(context.Background(), "", 0, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, capped.Take, "take is capped at 100")
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mufessir/internal/dto"
	"mufessir/internal/entity"
	"mufessir/internal/repository/contract"
	"mufessir/pkg/llm"
	"mufessir/pkg/similarity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM plays back scripted content, optionally in chunks.
type fakeLLM struct {
	content string
	chunks  []string
	usage   llm.Usage
	err     error
	calls   int
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Result, error) {
	return f.Generate(context.Background(), "")
}

func (f *fakeLLM) Generate(context.Context, string, ...llm.Option) (*llm.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Result{Content: f.content, Usage: f.usage}, nil
}

func (f *fakeLLM) Stream(_ context.Context, _ []llm.Message, handler llm.StreamHandler, _ ...llm.Option) (*llm.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var full strings.Builder
	for _, chunk := range f.chunks {
		if err := handler(chunk); err != nil {
			return nil, err
		}
		full.WriteString(chunk)
	}
	return &llm.Result{Content: full.String(), Usage: f.usage}, nil
}

type fakeEmbedder struct{ err error }

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// capturingPublisher records embedding backfill payloads.
type capturingPublisher struct{ payloads [][]byte }

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func translationPtr(s string) *string { return &s }

func seedQuranData(store *fakeStore) {
	store.verses["verse-1-1"] = &entity.Verse{
		Id:          "verse-1-1",
		SurahNumber: 1,
		SurahName:   "Fatiha",
		VerseNumber: 1,
		ArabicText:  "بِسْمِ اللَّهِ",
		Translation: translationPtr("Allah'ın adıyla"),
	}
	store.scholars["scholar-1"] = &entity.Scholar{Id: "scholar-1", Name: "İbn Kesir", Century: 14}
	store.scholars["scholar-2"] = &entity.Scholar{Id: "scholar-2", Name: "Razi", Century: 13}
	store.tafsirs["tafsir-1-1"] = &entity.Tafsir{
		Id: "tafsir-1-1", VerseId: "verse-1-1", ScholarId: "scholar-1",
		TafsirText: "Besmele her hayırlı işin başıdır.",
	}
	store.tafsirs["tafsir-1-2"] = &entity.Tafsir{
		Id: "tafsir-1-2", VerseId: "verse-1-1", ScholarId: "scholar-2",
		TafsirText: "Rahman sıfatı yalnızca Allah için kullanılır.",
	}
	store.similar = []*contract.ScoredTafsir{
		{Tafsir: store.tafsirs["tafsir-1-1"], Scholar: store.scholars["scholar-1"], Similarity: 0.9},
		{Tafsir: store.tafsirs["tafsir-1-2"], Scholar: store.scholars["scholar-2"], Similarity: 0.6},
	}
}

func newTafseerFixture(store *fakeStore, provider llm.LLMProvider, publisher IPublisherService) ITafseerService {
	return NewTafseerService(
		newFakeFactory(store),
		provider,
		&fakeEmbedder{},
		similarity.NewLexicalScorer(),
		nil,
		publisher,
		nil,
		GenerationSettings{Temperature: 0.7, MaxTokens: 800},
		noopLogger{},
	)
}

func TestGenerateUnknownVerse(t *testing.T) {
	store := newFakeStore()
	svc := newTafseerFixture(store, &fakeLLM{content: "x."}, nil)

	_, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-9-9"})
	assert.ErrorIs(t, err, ErrVerseNotFound)
	assert.Empty(t, store.searches, "no search row may exist for a failed lookup")
}

func TestGenerate(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	provider := &fakeLLM{
		content: "Besmele her hayırlı işin başıdır ve rahmeti anlatır.",
		usage:   llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}
	svc := newTafseerFixture(store, provider, nil)

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-1-1"})
	require.NoError(t, err)

	assert.Equal(t, "verse-1-1", res.Verse.Id)
	assert.True(t, strings.HasPrefix(res.AiResponse, "Arabic: بِسْمِ اللَّهِ\n"), "response must open with the verse preface")
	assert.Contains(t, res.AiResponse, "Tefsir:\n")
	assert.Contains(t, res.AiResponse, provider.content)
	assert.False(t, res.Cached)
	assert.False(t, res.Fallback)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 150, res.Usage.TotalTokens)

	// Lexical attribution should credit the overlapping excerpt.
	assert.Equal(t, "İbn Kesir", res.MostSimilarScholar)
	require.NotNil(t, res.SimilarityScore)
	assert.Greater(t, *res.SimilarityScore, 0.0)

	require.Len(t, store.searches, 1)
	require.Len(t, store.results, 1)
	assert.Equal(t, store.searches[0].Id, store.results[0].SearchId)
	require.NotNil(t, store.results[0].TafsirId)
	assert.Equal(t, "tafsir-1-1", *store.results[0].TafsirId)
	assert.False(t, store.results[0].Fallback)
}

func TestGenerateServesCachedResult(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	provider := &fakeLLM{content: "İlk cevap burada."}
	svc := newTafseerFixture(store, provider, nil)

	userId := uuid.New()
	req := &dto.GenerateTafseerRequest{VerseId: "verse-1-1"}

	first, err := svc.Generate(context.Background(), userId, req)
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := svc.Generate(context.Background(), userId, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.AiResponse, second.AiResponse)
	assert.Equal(t, first.SearchId, second.SearchId)

	assert.Equal(t, 1, provider.calls, "cache hit must not call the provider")
	assert.Len(t, store.searches, 1, "cache hit must not create a new search")
}

func TestGenerateCacheIsPerUser(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	provider := &fakeLLM{content: "Cevap."}
	svc := newTafseerFixture(store, provider, nil)

	req := &dto.GenerateTafseerRequest{VerseId: "verse-1-1"}
	_, err := svc.Generate(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	other, err := svc.Generate(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.False(t, other.Cached, "another user must not hit the first user's cache")
	assert.Equal(t, 2, provider.calls)
}

func TestGenerateFallsBackWhenProviderFails(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	svc := newTafseerFixture(store, &fakeLLM{err: errors.New("provider down")}, nil)

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-1-1"})
	require.NoError(t, err, "provider failure must degrade, not error")

	assert.True(t, res.Fallback)
	assert.Contains(t, res.AiResponse, "Fallback Response")
	assert.Contains(t, res.AiResponse, "İbn Kesir")

	require.Len(t, store.results, 1)
	assert.True(t, store.results[0].Fallback)
	require.NotNil(t, store.results[0].TafsirId)
	assert.Equal(t, "tafsir-1-1", *store.results[0].TafsirId)
}

func TestGenerateUsesSampleExcerptsWhenSimilarityFails(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	store.similar = nil
	store.similarErr = errors.New("pgvector unavailable")
	provider := &fakeLLM{content: "Besmele her hayırlı işin başıdır."}
	svc := newTafseerFixture(store, provider, nil)

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-1-1"})
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "İbn Kesir", res.MostSimilarScholar)
}

func TestGenerateQueuesEmbeddingBackfill(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	// tafsir-1-1 already embedded, tafsir-1-2 still missing.
	store.tafsirs["tafsir-1-1"].Embedding = []float32{0.5, 0.5}
	publisher := &capturingPublisher{}
	svc := newTafseerFixture(store, &fakeLLM{content: "Cevap."}, publisher)

	_, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-1-1"})
	require.NoError(t, err)

	require.Len(t, publisher.payloads, 1)
	assert.Contains(t, string(publisher.payloads[0]), "tafsir-1-2")
}

func TestGenerateStream(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	provider := &fakeLLM{
		chunks: []string{"Besmele ", "her hayırlı ", "işin başıdır."},
		usage:  llm.Usage{TotalTokens: 80},
	}
	svc := newTafseerFixture(store, provider, nil)

	var events []*dto.StreamEvent
	err := svc.GenerateStream(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-1-1"}, func(e *dto.StreamEvent) error {
		events = append(events, e)
		return nil
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, "start", events[0].Type)
	assert.NotEqual(t, uuid.Nil, events[0].SearchId)

	last := events[len(events)-1]
	assert.Equal(t, "complete", last.Type)
	require.NotNil(t, last.Usage)
	assert.Equal(t, 80, last.Usage.TotalTokens)
	assert.Equal(t, "İbn Kesir", last.MostSimilarScholar)

	var full strings.Builder
	for _, e := range events[1 : len(events)-1] {
		assert.Equal(t, "chunk", e.Type)
		full.WriteString(e.Content)
	}
	assert.True(t, strings.HasPrefix(full.String(), "Arabic: "))
	assert.Contains(t, full.String(), "işin başıdır.")

	require.Len(t, store.results, 1)
}

func TestGenerateStreamReplaysCache(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	provider := &fakeLLM{chunks: []string{"Cevap."}}
	svc := newTafseerFixture(store, provider, nil)

	userId := uuid.New()
	req := &dto.GenerateTafseerRequest{VerseId: "verse-1-1"}

	require.NoError(t, svc.GenerateStream(context.Background(), userId, req, func(*dto.StreamEvent) error { return nil }))

	var events []*dto.StreamEvent
	require.NoError(t, svc.GenerateStream(context.Background(), userId, req, func(e *dto.StreamEvent) error {
		events = append(events, e)
		return nil
	}))

	require.Len(t, events, 3)
	assert.Equal(t, "start", events[0].Type)
	assert.True(t, events[0].Cached)
	assert.Equal(t, "chunk", events[1].Type)
	assert.Contains(t, events[1].Content, "Cevap.")
	assert.Equal(t, "complete", events[2].Type)
	assert.True(t, events[2].Cached)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerateStreamFallsBack(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	svc := newTafseerFixture(store, &fakeLLM{err: errors.New("provider down")}, nil)

	var events []*dto.StreamEvent
	err := svc.GenerateStream(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{VerseId: "verse-1-1"}, func(e *dto.StreamEvent) error {
		events = append(events, e)
		return nil
	})
	require.NoError(t, err)

	last := events[len(events)-1]
	assert.Equal(t, "complete", last.Type)
	assert.True(t, last.Fallback)

	var sawFallbackChunk bool
	for _, e := range events {
		if e.Type == "chunk" && strings.Contains(e.Content, "Fallback Response") {
			sawFallbackChunk = true
		}
	}
	assert.True(t, sawFallbackChunk, "the fallback document must be streamed to the client")

	require.Len(t, store.results, 1)
	assert.True(t, store.results[0].Fallback)
}

func TestGenerateWithScholarFilters(t *testing.T) {
	store := newFakeStore()
	seedQuranData(store)
	// Scripted similarity narrowed to the requested scholar.
	store.similar = []*contract.ScoredTafsir{
		{Tafsir: store.tafsirs["tafsir-1-2"], Scholar: store.scholars["scholar-2"], Similarity: 0.8},
	}
	provider := &fakeLLM{content: "Rahman sıfatı yalnızca Allah için kullanılır."}
	svc := newTafseerFixture(store, provider, nil)

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateTafseerRequest{
		VerseId: "verse-1-1",
		Filters: dto.TafseerFiltersDTO{Scholars: []string{"scholar-2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Razi", res.MostSimilarScholar)
}

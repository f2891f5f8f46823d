package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mufessir/internal/dto"
	"mufessir/internal/entity"
	"mufessir/internal/pkg/logger"
	"mufessir/internal/repository/contract"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"
	"mufessir/pkg/demo"
	"mufessir/pkg/embedding"
	"mufessir/pkg/events"
	"mufessir/pkg/llm"
	pktNats "mufessir/pkg/nats"
	"mufessir/pkg/prompt"
	"mufessir/pkg/similarity"
	"mufessir/pkg/textutil"

	"github.com/google/uuid"
)

var ErrVerseNotFound = errors.New("verse not found")

var errGeneratorDisabled = errors.New("text generation is disabled")

const (
	cacheFreshness = time.Hour
	rankLimit      = 5
	rankThreshold  = 0.3
	sampleScore    = 0.8
	fallbackScore  = 0.7
	fallbackLimit  = 3
)

// StreamSink receives each event of a streamed generation in order.
type StreamSink func(event *dto.StreamEvent) error

// GenerationSettings are the knobs the orchestrator reads from config.
type GenerationSettings struct {
	Temperature     float64
	MaxTokens       int
	SampleMode      bool // skip embeddings, rank with a fixed sample
	AiDisabled      bool
	DefaultLanguage string
}

type ITafseerService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateTafseerRequest) (*dto.TafseerResponse, error)
	GenerateStream(ctx context.Context, userId uuid.UUID, req *dto.GenerateTafseerRequest, sink StreamSink) error
}

type tafseerService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	scorer            similarity.Scorer
	demoStore         *demo.Store
	embedPublisher    IPublisherService
	eventPublisher    *pktNats.Publisher
	settings          GenerationSettings
	log               logger.ILogger
}

func NewTafseerService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	scorer similarity.Scorer,
	demoStore *demo.Store,
	embedPublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	settings GenerationSettings,
	log logger.ILogger,
) ITafseerService {
	if settings.DefaultLanguage == "" {
		settings.DefaultLanguage = "Turkish"
	}
	return &tafseerService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		scorer:            scorer,
		demoStore:         demoStore,
		embedPublisher:    embedPublisher,
		eventPublisher:    eventPublisher,
		settings:          settings,
		log:               log,
	}
}

// rankedExcerpt is one historical tafsir competing to feed the prompt.
type rankedExcerpt struct {
	Tafsir  *entity.Tafsir
	Scholar *entity.Scholar
	Score   float64
}

func (s *tafseerService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateTafseerRequest) (*dto.TafseerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	verse, err := uow.VerseRepository().FindOne(ctx, specification.ByStringID{ID: req.VerseId})
	if err != nil {
		return nil, err
	}
	if verse == nil {
		return nil, ErrVerseNotFound
	}
	verseDTO := verseToDTO(verse)
	language := req.Filters.Language
	if language == "" {
		language = s.settings.DefaultLanguage
	}

	// Precomputed answers short-circuit everything past the verse lookup.
	if answer := s.demoLookup(verse.Id, language); answer != nil {
		return &dto.TafseerResponse{
			Verse:      verseDTO,
			Filters:    req.Filters,
			AiResponse: answer.AiResponse,
			Cached:     true,
		}, nil
	}

	excerpts := s.rankExcerpts(ctx, uow, verse, &req.Filters)

	filters := filtersToEntity(&req.Filters)
	cacheKey := filters.CacheKey(verse.Id, userId)

	if cached, err := uow.SearchRepository().FindLatestCached(ctx, cacheKey, time.Now().Add(-cacheFreshness)); err == nil && cached != nil {
		return &dto.TafseerResponse{
			Verse:           verseDTO,
			Filters:         req.Filters,
			AiResponse:      cached.Result.AiResponse,
			SimilarityScore: cached.Result.SimilarityScore,
			SearchId:        cached.Search.Id,
			Cached:          true,
		}, nil
	}

	search, err := s.createSearch(ctx, uow, userId, verse.Id, filters, cacheKey)
	if err != nil {
		return nil, err
	}

	var (
		result *llm.Result
		genErr error
	)
	if s.settings.AiDisabled || s.llmProvider == nil {
		genErr = errGeneratorDisabled
	} else {
		promptText := s.buildPrompt(verse, excerpts, &req.Filters, language)
		result, genErr = s.llmProvider.Generate(ctx, promptText, s.generationOptions(&req.Filters)...)
	}
	if genErr != nil {
		s.log.Warn("TafseerService", "generation failed, serving fallback", map[string]interface{}{
			"search_id": search.Id.String(),
			"error":     genErr.Error(),
		})
		return s.fallbackResponse(ctx, uow, userId, search, verse, verseDTO, &req.Filters, excerpts), nil
	}

	content := textutil.FinalizeResponse(result.Content, tierOf(req.Filters.ResponseLength))
	attribution := s.attribute(ctx, content, excerpts)

	// The stored response includes the preface so cache replays serve the
	// exact text the first caller saw.
	aiResponse := s.preface(verse, language, false) + content
	persisted := s.persistResult(ctx, uow, search.Id, aiResponse, attribution, excerpts, false)

	s.afterGeneration(userId, verse.Id, search.Id, excerpts, false)

	resp := &dto.TafseerResponse{
		Verse:      verseDTO,
		Filters:    req.Filters,
		AiResponse: aiResponse,
		SearchId:   search.Id,
		Usage: &dto.UsageDTO{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}
	if persisted != nil {
		resp.SimilarityScore = persisted.SimilarityScore
	}
	if attribution != nil {
		resp.MostSimilarScholar = attribution.ScholarName
	}
	return resp, nil
}

func (s *tafseerService) GenerateStream(ctx context.Context, userId uuid.UUID, req *dto.GenerateTafseerRequest, sink StreamSink) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	verse, err := uow.VerseRepository().FindOne(ctx, specification.ByStringID{ID: req.VerseId})
	if err != nil {
		return err
	}
	if verse == nil {
		return ErrVerseNotFound
	}
	language := req.Filters.Language
	if language == "" {
		language = s.settings.DefaultLanguage
	}

	if answer := s.demoLookup(verse.Id, language); answer != nil {
		return replay(sink, uuid.Nil, answer.AiResponse)
	}

	excerpts := s.rankExcerpts(ctx, uow, verse, &req.Filters)

	filters := filtersToEntity(&req.Filters)
	cacheKey := filters.CacheKey(verse.Id, userId)

	if cached, err := uow.SearchRepository().FindLatestCached(ctx, cacheKey, time.Now().Add(-cacheFreshness)); err == nil && cached != nil {
		return replay(sink, cached.Search.Id, cached.Result.AiResponse)
	}

	search, err := s.createSearch(ctx, uow, userId, verse.Id, filters, cacheKey)
	if err != nil {
		return err
	}

	if err := sink(&dto.StreamEvent{Type: "start", SearchId: search.Id}); err != nil {
		return err
	}
	if err := sink(&dto.StreamEvent{Type: "chunk", Content: s.preface(verse, language, true)}); err != nil {
		return err
	}

	var (
		result *llm.Result
		genErr error
	)
	if s.settings.AiDisabled || s.llmProvider == nil {
		genErr = errGeneratorDisabled
	} else {
		promptText := s.buildPrompt(verse, excerpts, &req.Filters, language)
		result, genErr = s.llmProvider.Stream(ctx, []llm.Message{{Role: "user", Content: promptText}}, func(chunk string) error {
			return sink(&dto.StreamEvent{Type: "chunk", Content: chunk})
		}, s.generationOptions(&req.Filters)...)
	}
	if genErr != nil {
		s.log.Warn("TafseerService", "streamed generation failed, serving fallback", map[string]interface{}{
			"search_id": search.Id.String(),
			"error":     genErr.Error(),
		})
		fallbackDoc := s.fallbackDocument(verse, &req.Filters, excerpts)
		s.persistFallback(ctx, uow, search.Id, fallbackDoc, excerpts)
		s.afterGeneration(userId, verse.Id, search.Id, excerpts, true)
		if err := sink(&dto.StreamEvent{Type: "chunk", Content: fallbackDoc, Fallback: true}); err != nil {
			return err
		}
		return sink(&dto.StreamEvent{Type: "complete", SearchId: search.Id, Fallback: true})
	}

	content := textutil.FinalizeResponse(result.Content, tierOf(req.Filters.ResponseLength))
	attribution := s.attribute(ctx, content, excerpts)
	s.persistResult(ctx, uow, search.Id, s.preface(verse, language, true)+content, attribution, excerpts, false)
	s.afterGeneration(userId, verse.Id, search.Id, excerpts, false)

	complete := &dto.StreamEvent{
		Type:     "complete",
		SearchId: search.Id,
		Usage: &dto.UsageDTO{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}
	if attribution != nil {
		complete.MostSimilarScholar = attribution.ScholarName
		complete.SimilarityScore = &attribution.Score
	}
	return sink(complete)
}

// replay emits a stored answer through the same event sequence a live
// generation would use.
func replay(sink StreamSink, searchId uuid.UUID, aiResponse string) error {
	if err := sink(&dto.StreamEvent{Type: "start", SearchId: searchId, Cached: true}); err != nil {
		return err
	}
	if err := sink(&dto.StreamEvent{Type: "chunk", Content: aiResponse}); err != nil {
		return err
	}
	return sink(&dto.StreamEvent{Type: "complete", SearchId: searchId, Cached: true})
}

func (s *tafseerService) demoLookup(verseId, language string) *demo.Answer {
	if s.demoStore == nil {
		return nil
	}
	return s.demoStore.Lookup(verseId, language)
}

// rankExcerpts selects which historical tafsirs feed the prompt. Embedding
// search is used when available; sample mode and every failure path degrade
// to fixed-score samples so the request itself never fails here.
func (s *tafseerService) rankExcerpts(ctx context.Context, uow unitofwork.UnitOfWork, verse *entity.Verse, filters *dto.TafseerFiltersDTO) []rankedExcerpt {
	// Scholar filtering widens the scope beyond the verse, matching how
	// historical excerpts are picked for comparisons.
	verseScope := verse.Id
	if len(filters.Scholars) > 0 || len(filters.ExcludeScholars) > 0 {
		verseScope = ""
	}

	var scholarSpecs []specification.Specification
	if len(filters.Scholars) > 0 {
		scholarSpecs = append(scholarSpecs, specification.ScholarIn{ScholarIDs: filters.Scholars})
	}
	if len(filters.ExcludeScholars) > 0 {
		scholarSpecs = append(scholarSpecs, specification.ScholarNotIn{ScholarIDs: filters.ExcludeScholars})
	}

	if s.settings.SampleMode || s.settings.AiDisabled {
		return s.sampleExcerpts(ctx, uow, verseScope, verse.Id, scholarSpecs, sampleScore, rankLimit)
	}

	queryText := strings.TrimSpace(verse.ArabicText + " " + derefOr(verse.Translation, ""))
	queryEmbedding, err := s.embeddingProvider.Embed(ctx, queryText)
	if err != nil {
		s.log.Warn("TafseerService", "query embedding failed, using sample excerpts", map[string]interface{}{
			"verse_id": verse.Id,
			"error":    err.Error(),
		})
		return s.sampleExcerpts(ctx, uow, verse.Id, verse.Id, nil, fallbackScore, fallbackLimit)
	}

	scored, err := uow.TafsirRepository().SearchSimilarWithScore(ctx, queryEmbedding, verseScope, rankLimit, rankThreshold, scholarSpecs...)
	if err != nil {
		s.log.Warn("TafseerService", "similarity search failed, using sample excerpts", map[string]interface{}{
			"verse_id": verse.Id,
			"error":    err.Error(),
		})
		return s.sampleExcerpts(ctx, uow, verse.Id, verse.Id, nil, fallbackScore, fallbackLimit)
	}

	excerpts := make([]rankedExcerpt, len(scored))
	for i, sc := range scored {
		excerpts[i] = rankedExcerpt{Tafsir: sc.Tafsir, Scholar: sc.Scholar, Score: sc.Similarity}
	}
	return excerpts
}

func (s *tafseerService) sampleExcerpts(ctx context.Context, uow unitofwork.UnitOfWork, verseScope, verseId string, scholarSpecs []specification.Specification, score float64, limit int) []rankedExcerpt {
	var (
		scored []*contract.ScoredTafsir
		err    error
	)
	if verseScope != "" {
		scored, err = uow.TafsirRepository().FindForVerse(ctx, verseScope, append(scholarSpecs, specification.Pagination{Limit: limit})...)
	} else {
		scored, err = uow.TafsirRepository().FindSample(ctx, limit, scholarSpecs...)
	}
	if err != nil {
		s.log.Warn("TafseerService", "sample excerpt lookup failed", map[string]interface{}{
			"verse_id": verseId,
			"error":    err.Error(),
		})
		return nil
	}

	excerpts := make([]rankedExcerpt, 0, len(scored))
	for _, sc := range scored {
		excerpts = append(excerpts, rankedExcerpt{Tafsir: sc.Tafsir, Scholar: sc.Scholar, Score: score})
	}
	return excerpts
}

func (s *tafseerService) buildPrompt(verse *entity.Verse, excerpts []rankedExcerpt, filters *dto.TafseerFiltersDTO, language string) string {
	promptExcerpts := make([]prompt.Excerpt, 0, len(excerpts))
	for _, e := range excerpts {
		meta := prompt.ScholarMeta{Name: "Unknown"}
		if e.Scholar != nil {
			meta = prompt.ScholarMeta{
				Name:            e.Scholar.Name,
				Century:         e.Scholar.Century,
				Madhab:          derefOr(e.Scholar.Madhab, ""),
				Period:          derefOr(e.Scholar.Period, ""),
				Environment:     derefOr(e.Scholar.Environment, ""),
				OriginCountry:   derefOr(e.Scholar.OriginCountry, ""),
				ReputationScore: derefFloat(e.Scholar.ReputationScore),
			}
		}
		promptExcerpts = append(promptExcerpts, prompt.Excerpt{Scholar: meta, Text: e.Tafsir.TafsirText})
	}

	return prompt.BuildTafsirPrompt(
		verse.ArabicText,
		derefOr(verse.Translation, ""),
		promptExcerpts,
		prompt.StyleParams{
			Tone:           tierOf(filters.Tone),
			IntellectLevel: tierOf(filters.IntellectLevel),
			Language:       language,
			ResponseLength: tierOf(filters.ResponseLength),
			CompareWith:    filters.CompareWith,
		},
	)
}

func (s *tafseerService) generationOptions(filters *dto.TafseerFiltersDTO) []llm.Option {
	return []llm.Option{
		llm.WithTemperature(s.settings.Temperature),
		llm.WithMaxTokens(textutil.MaxTokensForTier(tierOf(filters.ResponseLength), s.settings.MaxTokens)),
	}
}

// preface renders the verse header that precedes every generated answer.
func (s *tafseerService) preface(verse *entity.Verse, language string, streamed bool) string {
	label := "Meaning"
	if language == "Turkish" {
		label = "Meal"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Arabic: %s\n", verse.ArabicText)
	if verse.Translation != nil && *verse.Translation != "" {
		fmt.Fprintf(&b, "%s: %s\n", label, *verse.Translation)
	}
	if streamed {
		b.WriteString("\nMeali:\n\n")
	} else {
		b.WriteString("\nTefsir:\n")
	}
	return b.String()
}

func (s *tafseerService) attribute(ctx context.Context, content string, excerpts []rankedExcerpt) *similarity.Attribution {
	candidates := make([]similarity.Candidate, 0, len(excerpts))
	for _, e := range excerpts {
		c := similarity.Candidate{TafsirId: e.Tafsir.Id, Text: e.Tafsir.TafsirText}
		if e.Scholar != nil {
			c.ScholarId = e.Scholar.Id
			c.ScholarName = e.Scholar.Name
		}
		candidates = append(candidates, c)
	}
	return similarity.AttributeResponse(ctx, s.scorer, content, candidates)
}

func (s *tafseerService) createSearch(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, verseId string, filters *entity.TafsirFilters, cacheKey string) (*entity.Search, error) {
	search := &entity.Search{
		Id:      uuid.New(),
		UserId:  userId,
		VerseId: verseId,
		Query: entity.SearchQuery{
			VerseId:   verseId,
			Filters:   *filters,
			CacheKey:  cacheKey,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		CreatedAt: time.Now(),
	}
	if err := uow.SearchRepository().Create(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

// persistResult stores exactly one result row for the search. When no match
// was attributed the first ranked excerpt is credited; with no excerpts at
// all the result row still exists with a null tafsir reference.
func (s *tafseerService) persistResult(ctx context.Context, uow unitofwork.UnitOfWork, searchId uuid.UUID, content string, attribution *similarity.Attribution, excerpts []rankedExcerpt, fallback bool) *entity.SearchResult {
	result := &entity.SearchResult{
		Id:         uuid.New(),
		SearchId:   searchId,
		AiResponse: content,
		Fallback:   fallback,
		CreatedAt:  time.Now(),
	}
	if attribution != nil {
		id := attribution.TafsirId
		score := attribution.Score
		result.TafsirId = &id
		result.SimilarityScore = &score
	} else if len(excerpts) > 0 {
		id := excerpts[0].Tafsir.Id
		result.TafsirId = &id
	}

	if err := uow.SearchRepository().CreateResult(ctx, result); err != nil {
		s.log.Error("TafseerService", "failed to persist search result", map[string]interface{}{
			"search_id": searchId.String(),
			"error":     err.Error(),
		})
		return nil
	}
	return result
}

func (s *tafseerService) persistFallback(ctx context.Context, uow unitofwork.UnitOfWork, searchId uuid.UUID, doc string, excerpts []rankedExcerpt) *entity.SearchResult {
	result := &entity.SearchResult{
		Id:         uuid.New(),
		SearchId:   searchId,
		AiResponse: doc,
		Fallback:   true,
		CreatedAt:  time.Now(),
	}
	if len(excerpts) > 0 {
		id := excerpts[0].Tafsir.Id
		score := excerpts[0].Score
		result.TafsirId = &id
		result.SimilarityScore = &score
	}
	if err := uow.SearchRepository().CreateResult(ctx, result); err != nil {
		s.log.Error("TafseerService", "failed to persist fallback result", map[string]interface{}{
			"search_id": searchId.String(),
			"error":     err.Error(),
		})
		return nil
	}
	return result
}

func (s *tafseerService) fallbackResponse(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, search *entity.Search, verse *entity.Verse, verseDTO dto.VerseResponse, filters *dto.TafseerFiltersDTO, excerpts []rankedExcerpt) *dto.TafseerResponse {
	doc := s.fallbackDocument(verse, filters, excerpts)
	persisted := s.persistFallback(ctx, uow, search.Id, doc, excerpts)
	s.afterGeneration(userId, verse.Id, search.Id, excerpts, true)

	resp := &dto.TafseerResponse{
		Verse:      verseDTO,
		Filters:    *filters,
		AiResponse: doc,
		SearchId:   search.Id,
		Fallback:   true,
	}
	if persisted != nil {
		resp.SimilarityScore = persisted.SimilarityScore
	}
	return resp
}

// fallbackDocument assembles a clearly labeled substitute answer from the
// material already at hand, so an unavailable generator never turns into a
// bare 5xx after quota was committed.
func (s *tafseerService) fallbackDocument(verse *entity.Verse, filters *dto.TafseerFiltersDTO, excerpts []rankedExcerpt) string {
	var b strings.Builder
	b.WriteString("**Fallback Response** (generator not available)\n\n")
	fmt.Fprintf(&b, "**Verse Analysis:** %s %d\n", verse.SurahName, verse.VerseNumber)
	fmt.Fprintf(&b, "**Arabic:** %s\n", verse.ArabicText)
	fmt.Fprintf(&b, "**Translation:** %s\n", derefOr(verse.Translation, "Not available"))

	b.WriteString("\n**Available Scholar Excerpts:**\n")
	for i, e := range excerpts {
		name := "Unknown"
		century := 0
		madhab := "Unknown"
		if e.Scholar != nil {
			name = e.Scholar.Name
			century = e.Scholar.Century
			madhab = derefOr(e.Scholar.Madhab, "Unknown")
		}
		excerpt := e.Tafsir.TafsirText
		if runes := []rune(excerpt); len(runes) > 200 {
			excerpt = string(runes[:200])
		}
		fmt.Fprintf(&b, "%d. **%s** (%dth century, %s school):\n  %s...\n\n", i+1, name, century, madhab, excerpt)
	}

	b.WriteString("**Requested Parameters:**\n")
	fmt.Fprintf(&b, "- Tone: %s/10 (1=emotional, 10=rational)\n", optIntLabel(filters.Tone))
	fmt.Fprintf(&b, "- Intellect Level: %s/10\n", optIntLabel(filters.IntellectLevel))
	fmt.Fprintf(&b, "- Language: %s\n", orLabel(filters.Language))
	fmt.Fprintf(&b, "- Compare with: %s\n", orLabel(filters.CompareWith))

	b.WriteString("\n*This is a fallback response. In production, this would be an AI-generated tafsir based on the provided scholar excerpts and your specified parameters.*")
	return b.String()
}

// afterGeneration fires the advisory side effects of a finished generation:
// the domain event and embedding backfill for excerpts still missing one.
// Both are best-effort.
func (s *tafseerService) afterGeneration(userId uuid.UUID, verseId string, searchId uuid.UUID, excerpts []rankedExcerpt, fallback bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.eventPublisher != nil {
		evt := events.NewTafsirGenerated(userId.String(), verseId, searchId.String(), fallback)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("TafseerService", "failed to publish generation event", map[string]interface{}{
				"search_id": searchId.String(),
				"error":     err.Error(),
			})
		}
	}

	if s.embedPublisher == nil {
		return
	}
	for _, e := range excerpts {
		if len(e.Tafsir.Embedding) > 0 {
			continue
		}
		payload, err := json.Marshal(dto.EmbedTafsirMessage{TafsirId: e.Tafsir.Id})
		if err != nil {
			continue
		}
		if err := s.embedPublisher.Publish(ctx, payload); err != nil {
			s.log.Warn("TafseerService", "failed to queue embedding backfill", map[string]interface{}{
				"tafsir_id": e.Tafsir.Id,
				"error":     err.Error(),
			})
		}
	}
}

func filtersToEntity(f *dto.TafseerFiltersDTO) *entity.TafsirFilters {
	return &entity.TafsirFilters{
		Scholars:        f.Scholars,
		ExcludeScholars: f.ExcludeScholars,
		Tone:            f.Tone,
		IntellectLevel:  f.IntellectLevel,
		Language:        f.Language,
		ResponseLength:  f.ResponseLength,
		CompareWith:     f.CompareWith,
	}
}

func tierOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func optIntLabel(v *int) string {
	if v == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d", *v)
}

func orLabel(v string) string {
	if v == "" {
		return "Not specified"
	}
	return v
}

package dto

import "github.com/google/uuid"

type TafseerFiltersDTO struct {
	Scholars        []string `json:"scholars,omitempty" validate:"omitempty,dive,min=1"`
	ExcludeScholars []string `json:"excludeScholars,omitempty" validate:"omitempty,dive,min=1"`
	Tone            *int     `json:"tone,omitempty" validate:"omitempty,min=1,max=10"`
	IntellectLevel  *int     `json:"intellectLevel,omitempty" validate:"omitempty,min=1,max=10"`
	Language        string   `json:"language,omitempty" validate:"omitempty,min=2,max=32"`
	ResponseLength  *int     `json:"responseLength,omitempty" validate:"omitempty,min=1,max=10"`
	CompareWith     string   `json:"compareWith,omitempty"`
}

type GenerateTafseerRequest struct {
	VerseId string            `json:"verseId" validate:"required"`
	Filters TafseerFiltersDTO `json:"filters"`
	Stream  bool              `json:"stream,omitempty"`
}

type VerseResponse struct {
	Id              string `json:"id"`
	SurahNumber     int    `json:"surahNumber"`
	SurahName       string `json:"surahName"`
	VerseNumber     int    `json:"verseNumber"`
	ArabicText      string `json:"arabicText"`
	Transliteration string `json:"transliteration,omitempty"`
	Translation     string `json:"translation,omitempty"`
}

type VerseListResponse struct {
	Items []VerseResponse `json:"items"`
	Total int64           `json:"total"`
	Skip  int             `json:"skip"`
	Take  int             `json:"take"`
}

type UsageDTO struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type TafseerResponse struct {
	Verse              VerseResponse     `json:"verse"`
	Filters            TafseerFiltersDTO `json:"filters"`
	AiResponse         string            `json:"aiResponse"`
	SimilarityScore    *float64          `json:"similarityScore,omitempty"`
	MostSimilarScholar string            `json:"mostSimilarScholar,omitempty"`
	SearchId           uuid.UUID         `json:"searchId,omitempty"`
	Usage              *UsageDTO         `json:"usage,omitempty"`
	Cached             bool              `json:"cached,omitempty"`
	Fallback           bool              `json:"fallback,omitempty"`
}

// StreamEvent is a single server-sent frame of a streamed generation.
type StreamEvent struct {
	Type               string    `json:"type"` // start | chunk | complete | error
	SearchId           uuid.UUID `json:"searchId,omitempty"`
	Content            string    `json:"content,omitempty"`
	AiResponse         string    `json:"aiResponse,omitempty"`
	SimilarityScore    *float64  `json:"similarityScore,omitempty"`
	MostSimilarScholar string    `json:"mostSimilarScholar,omitempty"`
	Usage              *UsageDTO `json:"usage,omitempty"`
	Cached             bool      `json:"cached,omitempty"`
	Fallback           bool      `json:"fallback,omitempty"`
	Message            string    `json:"message,omitempty"`
}

package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TafsirFilters is the full filter payload a user attaches to a generation
// request. It is embedded verbatim in the Search audit record.
type TafsirFilters struct {
	Scholars        []string `json:"scholars,omitempty"`
	ExcludeScholars []string `json:"excludeScholars,omitempty"`
	Tone            *int     `json:"tone,omitempty"`
	IntellectLevel  *int     `json:"intellectLevel,omitempty"`
	Language        string   `json:"language,omitempty"`
	ResponseLength  *int     `json:"responseLength,omitempty"`
	CompareWith     string   `json:"compareWith,omitempty"`
}

// CacheKey serializes (verse, user, filters) with an explicit field order.
// Generic JSON marshaling of a map would not guarantee key order, which
// would silently break cache hits, so every field is rendered by hand and
// list fields are sorted.
func (f *TafsirFilters) CacheKey(verseId string, userId uuid.UUID) string {
	var b strings.Builder
	b.WriteString("v=")
	b.WriteString(verseId)
	b.WriteString(";u=")
	b.WriteString(userId.String())
	b.WriteString(";s=")
	b.WriteString(joinSorted(f.Scholars))
	b.WriteString(";x=")
	b.WriteString(joinSorted(f.ExcludeScholars))
	b.WriteString(";t=")
	writeOptInt(&b, f.Tone)
	b.WriteString(";i=")
	writeOptInt(&b, f.IntellectLevel)
	b.WriteString(";l=")
	b.WriteString(f.Language)
	b.WriteString(";r=")
	writeOptInt(&b, f.ResponseLength)
	b.WriteString(";c=")
	b.WriteString(f.CompareWith)
	return b.String()
}

func joinSorted(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func writeOptInt(b *strings.Builder, v *int) {
	if v != nil {
		fmt.Fprintf(b, "%d", *v)
	}
}

// SearchQuery is the JSON document stored in searches.query.
type SearchQuery struct {
	VerseId   string        `json:"verseId"`
	Filters   TafsirFilters `json:"filters"`
	CacheKey  string        `json:"cacheKey"`
	Timestamp string        `json:"timestamp"`
}

type Search struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	VerseId   string
	Query     SearchQuery
	CreatedAt time.Time
}

type SearchResult struct {
	Id              uuid.UUID
	SearchId        uuid.UUID
	TafsirId        *string
	AiResponse      string
	SimilarityScore *float64
	Fallback        bool
	CreatedAt       time.Time
}

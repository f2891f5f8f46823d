package entity

import "time"

// Verse ids keep the natural form produced by the importer ("verse-<surah>-<n>"),
// so rows survive re-imports with stable identity.
type Verse struct {
	Id              string
	SurahNumber     int
	SurahName       string
	VerseNumber     int
	ArabicText      string
	Transliteration *string
	Translation     *string
	CreatedAt       time.Time
}

type Scholar struct {
	Id              string
	Name            string
	BirthYear       *int
	DeathYear       *int
	Century         int
	Madhab          *string
	Period          *string
	Environment     *string
	OriginCountry   *string
	ReputationScore *float64
}

// Tafsir is read-only to the request path; embeddings are filled by the
// offline backfill job or the in-process consumer.
type Tafsir struct {
	Id         string
	VerseId    string
	ScholarId  string
	TafsirText string
	TafsirType *string
	Embedding  []float32 // nil until backfilled
	CreatedAt  time.Time
}

// EmbeddingInput is the text embedded for a tafsir: the verse's Arabic
// followed by the commentary, so similar verses cluster with their exegesis.
func EmbeddingInput(verse *Verse, tafsir *Tafsir) string {
	if verse == nil || verse.ArabicText == "" {
		return tafsir.TafsirText
	}
	return verse.ArabicText + "\n\n" + tafsir.TafsirText
}

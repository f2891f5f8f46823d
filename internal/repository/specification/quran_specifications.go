package specification

import "gorm.io/gorm"

type BySurahVerse struct {
	SurahNumber int
	VerseNumber int
}

func (s BySurahVerse) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("surah_number = ? AND verse_number = ?", s.SurahNumber, s.VerseNumber)
}

type BySurah struct {
	SurahNumber int
}

func (s BySurah) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("surah_number = ?", s.SurahNumber)
}

type ByVerseID struct {
	VerseID string
}

func (s ByVerseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("verse_id = ?", s.VerseID)
}

type ScholarIn struct {
	ScholarIDs []string
}

func (s ScholarIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scholar_id IN ?", s.ScholarIDs)
}

type ScholarNotIn struct {
	ScholarIDs []string
}

func (s ScholarNotIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scholar_id NOT IN ?", s.ScholarIDs)
}

type EmbeddingMissing struct{}

func (s EmbeddingMissing) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}

type EmbeddingPresent struct{}

func (s EmbeddingPresent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Verse struct {
	Id              string    `gorm:"type:varchar(32);primaryKey"`
	SurahNumber     int       `gorm:"not null;uniqueIndex:idx_verses_surah_verse,priority:1"`
	SurahName       string    `gorm:"type:varchar(128);not null"`
	VerseNumber     int       `gorm:"not null;uniqueIndex:idx_verses_surah_verse,priority:2"`
	ArabicText      string    `gorm:"type:text;not null"`
	Transliteration *string   `gorm:"type:text"`
	Translation     *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Verse) TableName() string {
	return "verses"
}

type Scholar struct {
	Id              string   `gorm:"type:varchar(32);primaryKey"`
	Name            string   `gorm:"type:varchar(255);not null"`
	BirthYear       *int     ``
	DeathYear       *int     ``
	Century         int      `gorm:"not null;default:0"`
	Madhab          *string  `gorm:"type:varchar(64)"`
	Period          *string  `gorm:"type:varchar(64)"`
	Environment     *string  `gorm:"type:varchar(64)"`
	OriginCountry   *string  `gorm:"type:varchar(128)"`
	ReputationScore *float64 ``
}

func (Scholar) TableName() string {
	return "scholars"
}

type Tafsir struct {
	Id         string           `gorm:"type:varchar(64);primaryKey"`
	VerseId    string           `gorm:"type:varchar(32);not null;index"`
	ScholarId  string           `gorm:"type:varchar(32);not null;index"`
	TafsirText string           `gorm:"type:text;not null"`
	TafsirType *string          `gorm:"type:varchar(64)"`
	Embedding  *pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small dimensions
	CreatedAt  time.Time        `gorm:"autoCreateTime"`

	Verse   *Verse   `gorm:"foreignKey:VerseId"`
	Scholar *Scholar `gorm:"foreignKey:ScholarId"`
}

func (Tafsir) TableName() string {
	return "tafsirs"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Search struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	VerseId   string         `gorm:"type:varchar(32);not null;index"`
	Query     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`

	Results []SearchResult `gorm:"foreignKey:SearchId"`
}

func (Search) TableName() string {
	return "searches"
}

type SearchResult struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SearchId        uuid.UUID `gorm:"type:uuid;not null;index"`
	TafsirId        *string   `gorm:"type:varchar(64)"`
	AiResponse      string    `gorm:"type:text;not null"`
	SimilarityScore *float64  ``
	Fallback        bool      `gorm:"default:false"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (SearchResult) TableName() string {
	return "search_results"
}

package specification

import "gorm.io/gorm"

// ByCacheKey matches searches whose stored query carries the given cache key.
// The key lives inside the JSONB query document.
type ByCacheKey struct {
	CacheKey string
}

func (s ByCacheKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("query->>'cacheKey' = ?", s.CacheKey)
}

type CreatedAfter struct {
	Field string
	Value interface{}
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	field := s.Field
	if field == "" {
		field = "created_at"
	}
	return db.Where(field+" >= ?", s.Value)
}

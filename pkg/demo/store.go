package demo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/patrickmn/go-cache"
)

// Answer is one precomputed response loaded at startup.
type Answer struct {
	VerseId    string `json:"verseId"`
	Language   string `json:"language"`
	AiResponse string `json:"aiResponse"`
}

// Store holds precomputed answers for demo mode. Entries never expire;
// the store is read-only after Load.
type Store struct {
	cache *cache.Cache
}

func NewStore() *Store {
	return &Store{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Load reads the precomputed-answer file and indexes entries by verse and
// language. Returns the number of answers loaded.
func (s *Store) Load(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read demo answers: %w", err)
	}

	var answers []Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return 0, fmt.Errorf("failed to parse demo answers: %w", err)
	}

	for i := range answers {
		a := answers[i]
		s.cache.Set(key(a.VerseId, a.Language), &a, cache.NoExpiration)
	}
	return len(answers), nil
}

// Lookup returns the precomputed answer for a verse and language, or nil.
func (s *Store) Lookup(verseId, language string) *Answer {
	v, found := s.cache.Get(key(verseId, language))
	if !found {
		return nil
	}
	return v.(*Answer)
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}

func key(verseId, language string) string {
	return verseId + "|" + strings.ToLower(language)
}

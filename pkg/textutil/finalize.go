package textutil

import (
	"strings"
	"unicode/utf8"
)

var sentenceTerminators = []rune{'.', '?', '!', '…'}

// FinalizeResponse trims a raw model output to honor the requested length
// tier. Tiers 1-3 keep only 2-3 complete sentences; every tier re-trims the
// tail so the text never ends mid-sentence when terminal punctuation exists.
// A tier of 0 means no tier was requested.
func FinalizeResponse(text string, lengthTier int) string {
	cleaned := strings.TrimSpace(text)

	if lengthTier > 10 {
		lengthTier = 10
	}
	if lengthTier >= 1 && lengthTier <= 3 {
		target := 3
		if lengthTier <= 2 {
			target = 2
		}
		sentences := SplitSentences(cleaned)
		if len(sentences) > target {
			sentences = sentences[:target]
		}
		cleaned = strings.TrimSpace(strings.Join(sentences, " "))
	}

	return TrimToSentenceBoundary(cleaned)
}

// SplitSentences breaks text on terminal punctuation, keeping the
// punctuation with its sentence. Returns the whole text as one element
// when no terminator is found.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if isTerminator(r) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}
	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}

// TrimToSentenceBoundary cuts trailing text after the last terminal
// punctuation mark. Text with no terminator at all is returned trimmed
// but otherwise untouched.
func TrimToSentenceBoundary(text string) string {
	trimmed := strings.TrimSpace(text)
	idx := -1
	for _, t := range sentenceTerminators {
		if i := strings.LastIndex(trimmed, string(t)); i > idx {
			idx = i
		}
	}
	if idx == -1 {
		return trimmed
	}
	// Keep the terminator itself, which may be multi-byte.
	_, size := utf8.DecodeRuneInString(trimmed[idx:])
	return trimmed[:idx+size]
}

func isTerminator(r rune) bool {
	for _, t := range sentenceTerminators {
		if r == t {
			return true
		}
	}
	return false
}

// MaxTokensForTier converts a length tier into a token budget: a floor plus
// a linear term per tier, capped by the configured ceiling. Tier 0 (not
// requested) gets the full ceiling.
func MaxTokensForTier(tier, ceiling int) int {
	if ceiling <= 0 {
		ceiling = 800
	}
	if tier <= 0 {
		return ceiling
	}
	if tier > 10 {
		tier = 10
	}
	budget := 200 + 120*tier
	if budget > ceiling {
		return ceiling
	}
	return budget
}

package similarity

import (
	"math"
	"strings"
	"unicode"
)

// NormalizeText lowercases, strips punctuation and collapses whitespace.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenize(text string) []string {
	return strings.Fields(NormalizeText(text))
}

// LexicalSimilarity computes cosine similarity over word frequency vectors.
// Returns a value in [0, 1], 0 when either text has no tokens.
func LexicalSimilarity(text1, text2 string) float64 {
	tokens1 := tokenize(text1)
	tokens2 := tokenize(text2)

	freq1 := make(map[string]float64, len(tokens1))
	for _, t := range tokens1 {
		freq1[t]++
	}
	freq2 := make(map[string]float64, len(tokens2))
	for _, t := range tokens2 {
		freq2[t]++
	}

	var dot, mag1, mag2 float64
	for _, v := range freq1 {
		mag1 += v * v
	}
	for _, v := range freq2 {
		mag2 += v * v
	}
	for word, v1 := range freq1 {
		if v2, ok := freq2[word]; ok {
			dot += v1 * v2
		}
	}

	if mag1 == 0 || mag2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(mag1) * math.Sqrt(mag2))
}

// Cosine computes cosine similarity between two embedding vectors.
// Returns 0 when either vector has zero magnitude.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		magA += float64(v) * float64(v)
	}
	for _, v := range b {
		magB += float64(v) * float64(v)
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

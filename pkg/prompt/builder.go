package prompt

import (
	"fmt"
	"strings"
)

// maxExcerptChars clips each excerpt so a handful of long tafsirs cannot
// crowd the model's context window.
const maxExcerptChars = 500

// ScholarMeta carries the attribution metadata rendered next to an excerpt.
type ScholarMeta struct {
	Name            string
	Century         int
	Madhab          string
	Period          string
	Environment     string
	OriginCountry   string
	ReputationScore float64
}

// Excerpt is one ranked tafsir passage feeding the prompt.
type Excerpt struct {
	Scholar ScholarMeta
	Text    string
}

// StyleParams are the user-selected generation knobs. Zero values mean
// "not requested" and are omitted from the prompt.
type StyleParams struct {
	Tone           int // 1-10, emotional to rational
	IntellectLevel int // 1-10, vocabulary richness
	Language       string
	ResponseLength int // 1-10, terse to essay
	CompareWith    string
}

// BuildTafsirPrompt assembles the full instruction document. Pure string
// assembly, deterministic for identical inputs.
func BuildTafsirPrompt(verseText, translation string, excerpts []Excerpt, params StyleParams) string {
	var b strings.Builder

	b.WriteString("You are an expert Islamic scholar and linguist. Your task is to generate a tafsir (exegesis) for the following Quranic verse, using the provided context and scholar excerpts.\n\n")

	b.WriteString("Verse (Arabic):\n")
	b.WriteString(verseText)
	b.WriteString("\n")
	if translation != "" {
		b.WriteString("Translation:\n")
		b.WriteString(translation)
		b.WriteString("\n")
	}

	b.WriteString("\nRelevant Tafsir Excerpts from Scholars:\n")
	for i, e := range excerpts {
		fmt.Fprintf(&b, "\n[%d] %s", i+1, e.Scholar.Name)
		if e.Scholar.Century > 0 {
			fmt.Fprintf(&b, " (%d. century)", e.Scholar.Century)
		}
		if e.Scholar.Madhab != "" {
			fmt.Fprintf(&b, " [%s]", e.Scholar.Madhab)
		}
		if e.Scholar.Period != "" {
			fmt.Fprintf(&b, " [%s]", e.Scholar.Period)
		}
		if e.Scholar.Environment != "" {
			fmt.Fprintf(&b, " [%s]", e.Scholar.Environment)
		}
		if e.Scholar.OriginCountry != "" {
			fmt.Fprintf(&b, " [%s]", e.Scholar.OriginCountry)
		}
		if e.Scholar.ReputationScore > 0 {
			fmt.Fprintf(&b, " [Reputation: %g/10]", e.Scholar.ReputationScore)
		}
		b.WriteString(":\n")
		b.WriteString(clipExcerpt(e.Text))
		b.WriteString("\n")
	}

	b.WriteString("\nUser Parameters:\n")
	if params.Tone > 0 {
		fmt.Fprintf(&b, "- Tone: %d/10 (1=emotional, 10=rational)\n", params.Tone)
	}
	if params.IntellectLevel > 0 {
		fmt.Fprintf(&b, "- Intellect Level: %d/10 (vocabulary richness)\n", params.IntellectLevel)
	}
	if params.Language != "" {
		fmt.Fprintf(&b, "- Output Language: %s\n", params.Language)
	}
	if params.ResponseLength > 0 {
		fmt.Fprintf(&b, "- Response Length: %d/10 (1=terse, 10=essay)\n", params.ResponseLength)
	}
	if params.CompareWith != "" {
		fmt.Fprintf(&b, "- Compare with: %s\n", params.CompareWith)
	}

	b.WriteString("\nInstructions:\n")
	b.WriteString("- Base your answer strictly on the provided tafsir excerpts and metadata.\n")
	b.WriteString("- Do NOT use information from outside sources or the internet.\n")
	b.WriteString("- Do NOT repeat the verse text or its translation in your answer. Start directly with the tafsir.\n")
	b.WriteString("- If the user requested a comparison, provide a comparative analysis.\n")
	b.WriteString("- Output should be scholarly, clear, and reference the scholars by name where relevant.\n")
	b.WriteString("- When tone (1-10) is provided, 1 = emotional, 10 = rational. Adjust the writing accordingly.\n")
	b.WriteString("- When intellect level (1-10) is provided, 1 = simple vocabulary, 10 = highly academic vocabulary. Adjust the complexity accordingly.\n")

	return b.String()
}

func clipExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) > maxExcerptChars {
		return string(runes[:maxExcerptChars])
	}
	return text
}

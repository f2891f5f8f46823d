package textutil

import (
	"strings"
	"testing"
)

func TestFinalizeResponse(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		tier      int
		wantParts int // expected sentence count, -1 to skip
	}{
		{
			name:      "short tier clips to two sentences",
			text:      "First one. Second one. Third one. Fourth one.",
			tier:      1,
			wantParts: 2,
		},
		{
			name:      "tier three keeps three sentences",
			text:      "First one. Second one. Third one. Fourth one.",
			tier:      3,
			wantParts: 3,
		},
		{
			name:      "long tier keeps everything",
			text:      "First one. Second one. Third one. Fourth one.",
			tier:      8,
			wantParts: 4,
		},
		{
			name:      "zero tier keeps everything",
			text:      "First one. Second one.",
			tier:      0,
			wantParts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalizeResponse(tt.text, tt.tier)
			if tt.wantParts >= 0 {
				parts := SplitSentences(got)
				if len(parts) != tt.wantParts {
					t.Errorf("got %d sentences, want %d: %q", len(parts), tt.wantParts, got)
				}
			}
			if got != "" && !strings.ContainsAny(string(got[len(got)-1]), ".?!") && !strings.HasSuffix(got, "…") {
				t.Errorf("result does not end on a sentence boundary: %q", got)
			}
		})
	}
}

func TestTrimToSentenceBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "drops trailing fragment",
			text: "A complete sentence. And a trailing frag",
			want: "A complete sentence.",
		},
		{
			name: "keeps complete text",
			text: "All done here.",
			want: "All done here.",
		},
		{
			name: "question mark counts",
			text: "Is this kept? partial",
			want: "Is this kept?",
		},
		{
			name: "no terminator returns input",
			text: "no punctuation at all",
			want: "no punctuation at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimToSentenceBoundary(tt.text); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaxTokensForTier(t *testing.T) {
	if got := MaxTokensForTier(0, 800); got != 800 {
		t.Errorf("unspecified tier should use the ceiling, got %d", got)
	}
	if got := MaxTokensForTier(1, 800); got != 320 {
		t.Errorf("tier 1 should be 320, got %d", got)
	}
	if got := MaxTokensForTier(10, 800); got != 800 {
		t.Errorf("high tier must stay clamped to the ceiling, got %d", got)
	}
	if got := MaxTokensForTier(3, 0); got != 560 {
		t.Errorf("zero ceiling should fall back to the default, got %d", got)
	}
}

package demo

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStoreLoadAndLookup(t *testing.T) {
	path := writeAnswers(t, `[
		{"verseId": "verse-1-1", "language": "Turkish", "aiResponse": "Besmele tefsiri."},
		{"verseId": "verse-1-1", "language": "English", "aiResponse": "Exegesis of the basmala."}
	]`)

	store := NewStore()
	count, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	got := store.Lookup("verse-1-1", "Turkish")
	if got == nil || got.AiResponse != "Besmele tefsiri." {
		t.Errorf("Turkish lookup = %+v", got)
	}

	// Language match is case-insensitive.
	if store.Lookup("verse-1-1", "ENGLISH") == nil {
		t.Error("lookup should ignore language casing")
	}

	if store.Lookup("verse-2-1", "Turkish") != nil {
		t.Error("unknown verse should miss")
	}
	if store.Lookup("verse-1-1", "Arabic") != nil {
		t.Error("unknown language should miss")
	}
}

func TestStoreLoadErrors(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}

	path := writeAnswers(t, `{"not": "an array"}`)
	if _, err := store.Load(path); err == nil {
		t.Error("malformed file should error")
	}
}

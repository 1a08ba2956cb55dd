package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newsfixed/edition/internal/news"
)

func TestNormalizeFillsGaps(t *testing.T) {
	b := &Batch{
		Stories: []news.Story{
			{ID: 5, Headline: "five", Content: "abcdef"},
			{Headline: "no id", Content: "xy"},
			{ID: 2, Headline: "two", Content: "hello", Length: 900},
		},
	}
	if err := Normalize(b); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if b.ID == "" {
		t.Error("batch id should be generated")
	}
	if b.Stories[1].ID != 6 {
		t.Errorf("missing id assigned %d, want 6 (after the highest explicit id)", b.Stories[1].ID)
	}
	if b.Stories[0].Length != 6 {
		t.Errorf("length = %d, want computed from content", b.Stories[0].Length)
	}
	if b.Stories[2].Length != 900 {
		t.Error("explicit length should be kept")
	}
}

func TestNormalizeRejectsDuplicateIDs(t *testing.T) {
	b := &Batch{
		Stories: []news.Story{
			{ID: 1, Headline: "a", Content: "x"},
			{ID: 1, Headline: "b", Content: "y"},
		},
	}
	if err := Normalize(b); err == nil {
		t.Error("duplicate ids should fail the whole batch")
	}
}

func TestNormalizeStripsMarkup(t *testing.T) {
	b := &Batch{
		Stories: []news.Story{
			{ID: 1, Headline: "<b>Good news</b>", Content: "<p>Solar output <em>doubled</em>.</p><script>alert(1)</script>"},
		},
	}
	if err := Normalize(b); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if b.Stories[0].Headline != "Good news" {
		t.Errorf("headline = %q", b.Stories[0].Headline)
	}
	if b.Stories[0].Content != "Solar output doubled." {
		t.Errorf("content = %q", b.Stories[0].Content)
	}
}

func TestNormalizeRejectsEmptyHeadline(t *testing.T) {
	b := &Batch{
		Stories: []news.Story{{ID: 1, Headline: "<img src=x>", Content: "body"}},
	}
	if err := Normalize(b); err == nil {
		t.Error("a headline that sanitizes to nothing should fail")
	}
}

func TestNormalizeChecksBlocklistMembership(t *testing.T) {
	b := &Batch{
		Stories:        []news.Story{{ID: 1, Headline: "a", Content: "x"}},
		BlocklistedIDs: []int{9},
	}
	if err := Normalize(b); err == nil {
		t.Error("blocklisted id missing from the batch should fail")
	}
}

func TestLoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	payload := `{
		"batch_id": "batch-7",
		"stories": [
			{"id": 1, "headline": "Reef replanting works", "content": "text here", "primary_theme": "environment", "strength": "high"},
			{"id": 2, "headline": "New vaccine milestone", "content": "more text", "primary_theme": "health_education", "strength": "medium"}
		],
		"blocklisted_ids": [2]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if b.ID != "batch-7" || len(b.Stories) != 2 {
		t.Errorf("batch = %+v", b)
	}
	if b.Stories[0].Strength != news.StrengthHigh {
		t.Errorf("strength = %v", b.Stories[0].Strength)
	}
	if len(b.BlocklistedIDs) != 1 || b.BlocklistedIDs[0] != 2 {
		t.Errorf("blocklist = %v", b.BlocklistedIDs)
	}
}

func TestLoadBatchErrors(t *testing.T) {
	if _, err := LoadBatch(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`{"stories": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBatch(empty); err == nil {
		t.Error("empty batch should fail")
	}
}

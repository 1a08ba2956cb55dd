// Package ingest loads a classified story batch from its JSON form and
// normalizes it for the pipeline: residual markup stripped, lengths and
// ids filled in, duplicates rejected.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/newsfixed/edition/internal/news"
)

// Batch is one ingested pool of classified stories plus the ids excluded
// from placement.
type Batch struct {
	ID             string       `json:"batch_id"`
	Stories        []news.Story `json:"stories"`
	BlocklistedIDs []int        `json:"blocklisted_ids,omitempty"`
}

// stripper removes any markup the upstream extractor left behind. Content
// reaching the engine should be plain text; this enforces it.
var stripper = bluemonday.StrictPolicy()

// Normalize sanitizes and completes a batch in place: content stripped of
// markup, missing lengths computed, missing ids assigned sequentially
// after the highest explicit id, and a batch id generated when absent.
// Duplicate ids fail the whole batch; id stability is what every later
// invariant hangs on.
func Normalize(b *Batch) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	maxID := 0
	seen := make(map[int]bool, len(b.Stories))
	for i := range b.Stories {
		s := &b.Stories[i]
		if s.ID != 0 {
			if seen[s.ID] {
				return fmt.Errorf("duplicate story id %d", s.ID)
			}
			seen[s.ID] = true
			if s.ID > maxID {
				maxID = s.ID
			}
		}
	}
	for i := range b.Stories {
		s := &b.Stories[i]
		if s.ID == 0 {
			maxID++
			s.ID = maxID
			seen[s.ID] = true
		}

		s.Headline = strings.TrimSpace(stripper.Sanitize(s.Headline))
		s.Content = strings.TrimSpace(stripper.Sanitize(s.Content))
		if s.Headline == "" {
			return fmt.Errorf("story %d has no headline", s.ID)
		}
		if s.Length == 0 {
			s.Length = len(s.Content)
		}
	}

	for _, id := range b.BlocklistedIDs {
		if !seen[id] {
			return fmt.Errorf("blocklisted id %d not in batch", id)
		}
	}
	return nil
}

// LoadBatch reads and normalizes a batch file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse batch: %w", err)
	}
	if len(b.Stories) == 0 {
		return nil, fmt.Errorf("batch %s contains no stories", path)
	}
	if err := Normalize(&b); err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}
	return &b, nil
}

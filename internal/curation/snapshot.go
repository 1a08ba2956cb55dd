package curation

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/newsfixed/edition/internal/news"
)

// DaySnapshot is the saved form of one day. Statistics and the tomorrow
// teaser are pass-through fields computed downstream; the engine only
// preserves them.
type DaySnapshot struct {
	Theme          string       `json:"theme"`
	MainStory      *news.Story  `json:"main_story"`
	MiniArticles   []news.Story `json:"mini_articles"`
	Statistics     []string     `json:"statistics"`
	TomorrowTeaser string       `json:"tomorrow_teaser"`
}

// ThemeMetadata is the saved per-day theme record.
type ThemeMetadata struct {
	Name              string `json:"name"`
	Key               string `json:"key"`
	Source            string `json:"source"`
	SplitFrom         string `json:"split_from,omitempty"`
	Status            string `json:"status"`
	StoryCount        int    `json:"story_count"`
	HighStrengthCount int    `json:"high_strength_count"`
}

// UnusedBucket wraps the stories excluded from the edition.
type UnusedBucket struct {
	Stories []news.Story `json:"stories"`
}

// Snapshot is the terminal hand-off artifact: one record per day, the
// theme metadata keyed by day number, and the unused bucket.
type Snapshot struct {
	Day1          *DaySnapshot             `json:"day_1,omitempty"`
	Day2          *DaySnapshot             `json:"day_2,omitempty"`
	Day3          *DaySnapshot             `json:"day_3,omitempty"`
	Day4          *DaySnapshot             `json:"day_4,omitempty"`
	ThemeMetadata map[string]ThemeMetadata `json:"theme_metadata,omitempty"`
	Unused        *UnusedBucket            `json:"unused,omitempty"`
}

// DayByNumber returns the snapshot record for day 1..4, or nil.
func (s *Snapshot) DayByNumber(n int) *DaySnapshot {
	switch n {
	case 1:
		return s.Day1
	case 2:
		return s.Day2
	case 3:
		return s.Day3
	case 4:
		return s.Day4
	}
	return nil
}

func (s *Snapshot) setDay(n int, d *DaySnapshot) {
	switch n {
	case 1:
		s.Day1 = d
	case 2:
		s.Day2 = d
	case 3:
		s.Day3 = d
	case 4:
		s.Day4 = d
	}
}

// Snapshot materializes the current working assignment into its saved
// form, including pass-through fields recorded on the session.
func (s *Session) Snapshot() *Snapshot {
	return SnapshotFromAssignment(s.working, s.passthrough)
}

// SnapshotFromAssignment converts an assignment to its saved form.
func SnapshotFromAssignment(a *news.Assignment, passthrough map[int]Passthrough) *Snapshot {
	snap := &Snapshot{ThemeMetadata: make(map[string]ThemeMetadata, news.NumDays)}
	for day := 1; day <= news.NumDays; day++ {
		d := a.Day(day)
		if d == nil {
			continue
		}

		ds := &DaySnapshot{
			Theme:        d.Theme.Name,
			MainStory:    d.Main,
			MiniArticles: make([]news.Story, 0, len(d.Minis)),
			Statistics:   []string{},
		}
		for _, m := range d.Minis {
			ds.MiniArticles = append(ds.MiniArticles, *m)
		}
		if p, ok := passthrough[day]; ok {
			if p.Statistics != nil {
				ds.Statistics = p.Statistics
			}
			ds.TomorrowTeaser = p.TomorrowTeaser
		}
		snap.setDay(day, ds)

		meta := ThemeMetadata{
			Name:      d.Theme.Name,
			Key:       d.Theme.Key,
			Source:    string(d.Theme.Provenance),
			SplitFrom: d.Theme.SplitFrom,
			Status:    string(news.HealthUnknown),
		}
		if d.Health != nil {
			meta.Status = string(d.Health.Status)
			meta.StoryCount = d.Health.StoryCount
			meta.HighStrengthCount = d.Health.HighStrengthCount
		}
		snap.ThemeMetadata[strconv.Itoa(day)] = meta
	}

	unused := &UnusedBucket{Stories: []news.Story{}}
	for _, u := range a.Unused {
		unused.Stories = append(unused.Stories, *u)
	}
	snap.Unused = unused
	return snap
}

// AssignmentFromSnapshot rebuilds an assignment (plus pass-through
// fields) from a saved snapshot, so a planned file can be curated later.
func AssignmentFromSnapshot(snap *Snapshot) (*news.Assignment, map[int]Passthrough) {
	a := &news.Assignment{}
	passthrough := make(map[int]Passthrough)

	for day := 1; day <= news.NumDays; day++ {
		ds := snap.DayByNumber(day)
		if ds == nil {
			continue
		}
		d := &news.DayAssignment{Day: day}
		d.Theme = news.Theme{Name: ds.Theme, Key: news.ThemeKey(ds.Theme), Provenance: news.ProvenanceDefault}
		if meta, ok := snap.ThemeMetadata[strconv.Itoa(day)]; ok {
			d.Theme = news.Theme{
				Name:       meta.Name,
				Key:        meta.Key,
				Provenance: news.Provenance(meta.Source),
				SplitFrom:  meta.SplitFrom,
			}
			d.Health = &news.ThemeHealth{
				Status:            news.HealthStatus(meta.Status),
				StoryCount:        meta.StoryCount,
				HighStrengthCount: meta.HighStrengthCount,
			}
		}
		if ds.MainStory != nil {
			m := *ds.MainStory
			d.Main = &m
		}
		for i := range ds.MiniArticles {
			m := ds.MiniArticles[i]
			d.Minis = append(d.Minis, &m)
		}
		a.Days[day-1] = d
		passthrough[day] = Passthrough{Statistics: ds.Statistics, TomorrowTeaser: ds.TomorrowTeaser}
	}

	if snap.Unused != nil {
		for i := range snap.Unused.Stories {
			s := snap.Unused.Stories[i]
			a.Unused = append(a.Unused, &s)
		}
	}
	return a, passthrough
}

// Save validates the working assignment and writes the snapshot. Blocking
// issues abort with a *ValidationError and nothing is written; warnings
// are returned alongside a successful save.
func (s *Session) Save(path string) ([]Issue, error) {
	issues := s.Validate()
	if Blocking(issues) {
		return issues, &ValidationError{Issues: issues}
	}

	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return issues, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return issues, fmt.Errorf("write snapshot: %w", err)
	}
	return issues, nil
}

// LoadSnapshot reads a saved snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// Package news holds the core domain types for the story assignment
// pipeline: classified stories, per-day themes, and the four-day
// assignment structure that the grouping engine produces and the
// curation session mutates.
package news

import (
	"encoding/json"
	"fmt"
)

// NumDays is the number of editions in one batch.
const NumDays = 4

// MaxMinis is the maximum number of secondary stories per day.
// Together with the single main story a day holds at most five stories.
const MaxMinis = 4

// Strength is the editorial weight of a story, assigned during
// classification and immutable afterwards.
type Strength int

const (
	StrengthLow Strength = iota
	StrengthMedium
	StrengthHigh
)

func (s Strength) String() string {
	switch s {
	case StrengthHigh:
		return "high"
	case StrengthMedium:
		return "medium"
	default:
		return "low"
	}
}

// MarshalJSON writes the wire form ("low"/"medium"/"high").
func (s Strength) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the wire form; unknown values become medium.
func (s *Strength) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStrength(raw)
	return nil
}

// ParseStrength maps the wire form ("low"/"medium"/"high") to a Strength.
// Unknown values parse as medium rather than failing the whole batch.
func ParseStrength(s string) Strength {
	switch s {
	case "high":
		return StrengthHigh
	case "low":
		return StrengthLow
	default:
		return StrengthMedium
	}
}

// Story is one classified news item. Stories are immutable once
// classified; only their assignment location changes during curation.
type Story struct {
	ID              int      `json:"id"`
	Headline        string   `json:"headline"`
	Content         string   `json:"content"`
	PrimaryTheme    string   `json:"primary_theme"`
	SecondaryThemes []string `json:"secondary_themes,omitempty"`
	Strength        Strength `json:"strength"`
	Length          int      `json:"length"`
	SourceURL       string   `json:"source_url,omitempty"`
}

// Provenance records why a day's theme differs from the static default.
type Provenance string

const (
	ProvenanceDefault   Provenance = "default"
	ProvenanceGenerated Provenance = "generated"
	ProvenanceSplit     Provenance = "split"
)

// Theme is a day's theme: display name, machine-safe key, and where it
// came from. SplitFrom is set only for provenance "split".
type Theme struct {
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	Provenance Provenance `json:"source"`
	SplitFrom  string     `json:"split_from,omitempty"`
	Reasoning  string     `json:"reasoning,omitempty"`
}

// HealthStatus classifies a theme's story supply.
type HealthStatus string

const (
	HealthWeak       HealthStatus = "weak"
	HealthHealthy    HealthStatus = "healthy"
	HealthOverloaded HealthStatus = "overloaded"
	HealthUnknown    HealthStatus = "unknown"
)

// ThemeHealth is the assessor's verdict for one day's theme.
type ThemeHealth struct {
	Status            HealthStatus `json:"status"`
	StoryCount        int          `json:"story_count"`
	HighStrengthCount int          `json:"high_strength_count"`
	Reasoning         string       `json:"reasoning,omitempty"`
}

// DayAssignment is one of the four daily editions: a theme, at most one
// main story, and up to MaxMinis secondary stories.
type DayAssignment struct {
	Day    int
	Theme  Theme
	Health *ThemeHealth
	Main   *Story
	Minis  []*Story
}

// Total returns the number of stories placed in the day.
func (d *DayAssignment) Total() int {
	n := len(d.Minis)
	if d.Main != nil {
		n++
	}
	return n
}

// Full reports whether the day is at capacity (1 main + MaxMinis minis).
func (d *DayAssignment) Full() bool {
	return d.Main != nil && len(d.Minis) >= MaxMinis
}

// Assignment is the aggregate root: exactly four day assignments plus the
// unused bucket. The union of story IDs across all days and unused must
// equal the input ID set with no duplicates and no omissions.
type Assignment struct {
	Days   [NumDays]*DayAssignment
	Unused []*Story
}

// NewAssignment returns an empty assignment with the given themes.
func NewAssignment(themes map[int]Theme) *Assignment {
	a := &Assignment{}
	for i := 0; i < NumDays; i++ {
		day := i + 1
		a.Days[i] = &DayAssignment{Day: day, Theme: themes[day]}
	}
	return a
}

// Day returns the assignment for day 1..4, or nil when out of range.
func (a *Assignment) Day(day int) *DayAssignment {
	if day < 1 || day > NumDays {
		return nil
	}
	return a.Days[day-1]
}

// StoryIDs returns every placed story ID, days first (main then minis,
// day order), then unused, in deterministic order. Duplicates are kept so
// callers can detect conservation violations.
func (a *Assignment) StoryIDs() []int {
	var ids []int
	for _, d := range a.Days {
		if d == nil {
			continue
		}
		if d.Main != nil {
			ids = append(ids, d.Main.ID)
		}
		for _, m := range d.Minis {
			ids = append(ids, m.ID)
		}
	}
	for _, s := range a.Unused {
		ids = append(ids, s.ID)
	}
	return ids
}

// Clone returns a deep copy. The curation session works on a clone so the
// pristine post-grouping assignment stays available for diffing.
func (a *Assignment) Clone() *Assignment {
	c := &Assignment{}
	for i, d := range a.Days {
		if d == nil {
			continue
		}
		nd := &DayAssignment{Day: d.Day, Theme: d.Theme}
		if d.Health != nil {
			h := *d.Health
			nd.Health = &h
		}
		if d.Main != nil {
			s := *d.Main
			nd.Main = &s
		}
		for _, m := range d.Minis {
			s := *m
			nd.Minis = append(nd.Minis, &s)
		}
		c.Days[i] = nd
	}
	for _, u := range a.Unused {
		s := *u
		c.Unused = append(c.Unused, &s)
	}
	return c
}

// CheckConservation verifies that the assignment holds exactly the given
// ID set, each ID once. It returns nil when the invariant holds.
func (a *Assignment) CheckConservation(want []int) error {
	have := a.StoryIDs()
	if len(have) != len(want) {
		return fmt.Errorf("assignment holds %d stories, want %d", len(have), len(want))
	}
	seen := make(map[int]bool, len(have))
	for _, id := range have {
		if seen[id] {
			return fmt.Errorf("story %d placed more than once", id)
		}
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			return fmt.Errorf("story %d missing from assignment", id)
		}
	}
	return nil
}

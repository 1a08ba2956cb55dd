package edition

import "context"

// CallFunc is the injected model-call boundary: one prompt in, raw text
// out. The engine never inspects endpoints, authentication, or model
// identity; those belong to the caller.
type CallFunc func(ctx context.Context, prompt string) (string, error)

// EngineConfig configures the story assignment engine.
type EngineConfig struct {
	// Call handles model requests. When nil, NewEngine builds an
	// Ollama-backed call from the fields below, unless Offline is set,
	// in which case no calls are ever made and grouping is always
	// deterministic.
	Call CallFunc

	OllamaBaseURL string
	Model         string

	ThemesTemperature   float64
	GroupingTemperature float64

	Offline bool
}

// Strength is the editorial weight of a story: "low", "medium", "high".
type Strength string

const (
	StrengthLow    Strength = "low"
	StrengthMedium Strength = "medium"
	StrengthHigh   Strength = "high"
)

// Story is one classified news item. Stories are immutable once
// classified; only their placement changes during curation.
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

// Theme is one day's theme with its provenance: "default", "generated",
// or "split" (SplitFrom names the original theme key).
type Theme struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	Provenance string `json:"source"`
	SplitFrom  string `json:"split_from,omitempty"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// ThemeHealth is the assessor's verdict for one theme: "weak",
// "healthy", or "overloaded", with the counts behind it.
type ThemeHealth struct {
	Status            string `json:"status"`
	StoryCount        int    `json:"story_count"`
	HighStrengthCount int    `json:"high_strength_count"`
	Reasoning         string `json:"reasoning,omitempty"`
}

// Day is one daily edition: a theme, at most one main story, and up to
// four minis.
type Day struct {
	Day    int          `json:"day"`
	Theme  Theme        `json:"theme"`
	Health *ThemeHealth `json:"health,omitempty"`
	Main   *Story       `json:"main,omitempty"`
	Minis  []Story      `json:"minis"`
}

// Plan is the post-grouping assignment: four days plus the stories left
// unused. The story ids across all days and unused equal the input set.
type Plan struct {
	Days   [4]Day  `json:"days"`
	Unused []Story `json:"unused"`
}

package news

import (
	"regexp"
	"strings"
)

// Default day-to-theme mapping. The proposer replaces entries only when a
// theme assesses weak or overloaded; everything else keeps these.
var defaultThemes = map[int]Theme{
	1: {Name: "Health & Education", Key: "health_education", Provenance: ProvenanceDefault},
	2: {Name: "Environment & Conservation", Key: "environment", Provenance: ProvenanceDefault},
	3: {Name: "Technology & Energy", Key: "technology_energy", Provenance: ProvenanceDefault},
	4: {Name: "Society & Youth Movements", Key: "society", Provenance: ProvenanceDefault},
}

// DefaultThemes returns a fresh copy of the default day-to-theme mapping.
func DefaultThemes() map[int]Theme {
	out := make(map[int]Theme, len(defaultThemes))
	for day, t := range defaultThemes {
		out[day] = t
	}
	return out
}

// DefaultThemeName returns the default display name for a day, or
// "General" for out-of-range days.
func DefaultThemeName(day int) string {
	if t, ok := defaultThemes[day]; ok {
		return t.Name
	}
	return "General"
}

var keyCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// ThemeKey derives a machine-safe snake_case key from a display name.
func ThemeKey(name string) string {
	k := keyCleaner.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(k, "_")
}

// DayForThemeKey maps theme keys to their day given the active theme set.
func DayForThemeKey(themes map[int]Theme) map[string]int {
	out := make(map[string]int, len(themes))
	for day, t := range themes {
		out[t.Key] = day
	}
	return out
}

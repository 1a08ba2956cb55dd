// Package themes decides the final theme set for a batch: a pure health
// assessment over the default themes, and a proposer that substitutes
// weak or overloaded themes via a single model call.
package themes

import (
	"fmt"

	"github.com/newsfixed/edition/internal/news"
)

// Health thresholds. A theme is weak with fewer than minStories stories
// or no high-strength story; overloaded above maxStories with at least
// minHighForOverload high-strength stories.
const (
	minStories         = 2
	maxStories         = 6
	minHighForOverload = 2
)

// Assess classifies each default theme's story supply. Pure function: no
// side effects, no external calls.
func Assess(stories []news.Story) map[int]news.ThemeHealth {
	byKey := news.DayForThemeKey(news.DefaultThemes())

	counts := make(map[int]int, news.NumDays)
	high := make(map[int]int, news.NumDays)
	for _, s := range stories {
		day, ok := byKey[s.PrimaryTheme]
		if !ok {
			continue
		}
		counts[day]++
		if s.Strength == news.StrengthHigh {
			high[day]++
		}
	}

	out := make(map[int]news.ThemeHealth, news.NumDays)
	for day := 1; day <= news.NumDays; day++ {
		h := news.ThemeHealth{StoryCount: counts[day], HighStrengthCount: high[day]}
		switch {
		case h.StoryCount < minStories || h.HighStrengthCount == 0:
			h.Status = news.HealthWeak
			h.Reasoning = fmt.Sprintf("%d stories, %d high-strength", h.StoryCount, h.HighStrengthCount)
		case h.StoryCount > maxStories && h.HighStrengthCount >= minHighForOverload:
			h.Status = news.HealthOverloaded
			h.Reasoning = fmt.Sprintf("%d stories, %d high-strength", h.StoryCount, h.HighStrengthCount)
		default:
			h.Status = news.HealthHealthy
		}
		out[day] = h
	}
	return out
}

// AllHealthy reports whether no theme needs substitution.
func AllHealthy(assessment map[int]news.ThemeHealth) bool {
	for _, h := range assessment {
		if h.Status != news.HealthHealthy {
			return false
		}
	}
	return true
}

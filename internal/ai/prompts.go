package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/newsfixed/edition/internal/news"
)

const maxHeadlineChars = 80

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// formatStorySummaries renders the compact per-story block shared by the
// theme-proposal and grouping prompts.
func formatStorySummaries(stories []news.Story) string {
	var sb strings.Builder
	for _, s := range stories {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", s.ID, truncate(s.Headline, maxHeadlineChars)))
		sb.WriteString(fmt.Sprintf("    theme: %s", s.PrimaryTheme))
		if len(s.SecondaryThemes) > 0 {
			sb.WriteString(fmt.Sprintf(" | secondary: %s", strings.Join(s.SecondaryThemes, ", ")))
		}
		sb.WriteString(fmt.Sprintf(" | strength: %s | length: %d\n", s.Strength, s.Length))
	}
	return sb.String()
}

// ThemeProposalPrompt builds the single theme-substitution prompt from the
// health assessment and the story pool.
func ThemeProposalPrompt(stories []news.Story, assessment map[int]news.ThemeHealth, defaults map[int]news.Theme) string {
	var health strings.Builder
	for _, day := range sortedDays(assessment) {
		h := assessment[day]
		def := defaults[day]
		health.WriteString(fmt.Sprintf("Day %d (%s, key %q): %s — %d stories, %d high-strength\n",
			day, def.Name, def.Key, h.Status, h.StoryCount, h.HighStrengthCount))
	}

	return fmt.Sprintf(`You are planning a four-day positive-news edition. Each day has a theme.

Current theme health:
%s
Stories:
%s
Rules:
- Keep every healthy theme exactly as it is (source "default").
- Replace each weak theme with a new theme derived from clustering the stories' secondary themes (source "generated").
- Split each overloaded theme into a narrower theme (source "split", with split_from set to the original key).
- Give every non-default theme a machine-safe snake_case key.
- Output exactly four days.

Respond ONLY with valid JSON in this exact format:
{
  "themes": [
    {"day": 1, "name": "<display name>", "key": "<snake_case_key>", "source": "default|generated|split", "split_from": "<original key or empty>", "reasoning": "<one sentence>"}
  ]
}`, health.String(), formatStorySummaries(stories))
}

// GroupingPrompt builds the single story-to-day grouping prompt.
func GroupingPrompt(stories []news.Story, blocklisted []int, themes map[int]news.Theme) string {
	var themeList strings.Builder
	for _, day := range sortedDays(themes) {
		t := themes[day]
		themeList.WriteString(fmt.Sprintf("Day %d: %s (key %q)\n", day, t.Name, t.Key))
	}

	block := "none"
	if len(blocklisted) > 0 {
		parts := make([]string, len(blocklisted))
		for i, id := range blocklisted {
			parts[i] = fmt.Sprintf("%d", id)
		}
		block = strings.Join(parts, ", ")
	}

	return fmt.Sprintf(`You are assigning stories to a four-day edition.

Themes:
%s
Stories:
%s
Blocklisted story ids (must go to unused): %s

Rules:
- Each day gets exactly one main story: the strongest, longest fit for its theme.
- Each day gets up to four mini stories.
- Balance the count across days; aim for 4-5 stories per day.
- Consider both primary and secondary themes when placing a story.
- Every story id must appear exactly once, either in a day or in unused.

Respond ONLY with valid JSON in this exact format:
{
  "days": [
    {"day": 1, "main": <story id>, "minis": [<story ids>]}
  ],
  "unused": [<story ids>]
}`, themeList.String(), formatStorySummaries(stories), block)
}

func sortedDays[V any](m map[int]V) []int {
	days := make([]int, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

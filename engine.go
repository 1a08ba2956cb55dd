// Package edition is the public API for the story assignment and
// curation engine: it partitions a classified batch of news stories into
// four capacity-constrained daily editions, reconciling a model-backed
// grouping pass against a deterministic fallback.
//
// The interactive curation layer lives in internal/curation and is
// reached through the CLI; this facade covers the automated pipeline.
package edition

import (
	"context"
	"fmt"

	"github.com/newsfixed/edition/internal/ai"
	"github.com/newsfixed/edition/internal/grouping"
	"github.com/newsfixed/edition/internal/news"
	"github.com/newsfixed/edition/internal/themes"
)

// Engine runs the assignment pipeline: assess theme health, propose the
// final theme set, group stories into days, build the plan.
type Engine struct {
	proposer *themes.Proposer
	grouper  *grouping.Engine
}

// NewEngine creates an engine from the given configuration. With neither
// an injected call nor Offline set, an Ollama-backed call is built from
// the base URL and model (defaults: localhost, llama3).
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	if cfg.ThemesTemperature == 0 {
		cfg.ThemesTemperature = 0.5
	}
	if cfg.GroupingTemperature == 0 {
		cfg.GroupingTemperature = 0.3
	}

	var themeCall, groupCall ai.CallFunc
	switch {
	case cfg.Offline:
		// no calls at all
	case cfg.Call != nil:
		themeCall = ai.CallFunc(cfg.Call)
		groupCall = ai.CallFunc(cfg.Call)
	default:
		var err error
		themeCall, err = ai.NewOllamaCall(cfg.OllamaBaseURL, cfg.Model, cfg.ThemesTemperature)
		if err != nil {
			return nil, fmt.Errorf("create themes call: %w", err)
		}
		groupCall, err = ai.NewOllamaCall(cfg.OllamaBaseURL, cfg.Model, cfg.GroupingTemperature)
		if err != nil {
			return nil, fmt.Errorf("create grouping call: %w", err)
		}
	}

	return &Engine{
		proposer: themes.NewProposer(themeCall),
		grouper:  grouping.NewEngine(groupCall),
	}, nil
}

// Plan runs the full pipeline over a classified batch. It never fails on
// model trouble: theme substitution degrades to the defaults and
// grouping degrades to the deterministic fallback. The only errors
// are structural (duplicate ids, unknown blocklisted ids).
func (e *Engine) Plan(ctx context.Context, stories []Story, blocklisted []int) (*Plan, error) {
	in, err := storiesToInternal(stories)
	if err != nil {
		return nil, err
	}
	known := make(map[int]bool, len(in))
	for _, s := range in {
		known[s.ID] = true
	}
	for _, id := range blocklisted {
		if !known[id] {
			return nil, fmt.Errorf("blocklisted id %d not in batch", id)
		}
	}

	assessment := themes.Assess(in)
	themeSet := e.proposer.Propose(ctx, in, assessment)
	result := e.grouper.Group(ctx, in, blocklisted, themeSet)
	assignment := grouping.Build(in, result, themeSet, assessment)

	ids := make([]int, len(in))
	for i, s := range in {
		ids[i] = s.ID
	}
	if err := assignment.CheckConservation(ids); err != nil {
		return nil, fmt.Errorf("grouping broke id conservation: %w", err)
	}

	return planFromInternal(assignment), nil
}

// --- internal type conversion helpers ---

func storiesToInternal(stories []Story) ([]news.Story, error) {
	out := make([]news.Story, len(stories))
	seen := make(map[int]bool, len(stories))
	for i, s := range stories {
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate story id %d", s.ID)
		}
		seen[s.ID] = true
		out[i] = news.Story{
			ID:              s.ID,
			Headline:        s.Headline,
			Content:         s.Content,
			PrimaryTheme:    s.PrimaryTheme,
			SecondaryThemes: s.SecondaryThemes,
			Strength:        news.ParseStrength(string(s.Strength)),
			Length:          s.Length,
			SourceURL:       s.SourceURL,
		}
		if out[i].Length == 0 {
			out[i].Length = len(s.Content)
		}
	}
	return out, nil
}

func storyFromInternal(s *news.Story) *Story {
	if s == nil {
		return nil
	}
	return &Story{
		ID:              s.ID,
		Headline:        s.Headline,
		Content:         s.Content,
		PrimaryTheme:    s.PrimaryTheme,
		SecondaryThemes: s.SecondaryThemes,
		Strength:        Strength(s.Strength.String()),
		Length:          s.Length,
		SourceURL:       s.SourceURL,
	}
}

func planFromInternal(a *news.Assignment) *Plan {
	p := &Plan{}
	for day := 1; day <= news.NumDays; day++ {
		d := a.Day(day)
		out := Day{Day: day, Minis: []Story{}}
		if d != nil {
			out.Theme = Theme{
				Name:       d.Theme.Name,
				Key:        d.Theme.Key,
				Provenance: string(d.Theme.Provenance),
				SplitFrom:  d.Theme.SplitFrom,
				Reasoning:  d.Theme.Reasoning,
			}
			if d.Health != nil {
				out.Health = &ThemeHealth{
					Status:            string(d.Health.Status),
					StoryCount:        d.Health.StoryCount,
					HighStrengthCount: d.Health.HighStrengthCount,
					Reasoning:         d.Health.Reasoning,
				}
			}
			out.Main = storyFromInternal(d.Main)
			for _, m := range d.Minis {
				out.Minis = append(out.Minis, *storyFromInternal(m))
			}
		}
		p.Days[day-1] = out
	}
	for _, u := range a.Unused {
		p.Unused = append(p.Unused, *storyFromInternal(u))
	}
	return p
}

package curation

import (
	"context"

	"github.com/newsfixed/edition/internal/grouping"
	"github.com/newsfixed/edition/internal/news"
)

// RevertThemes forces all four days back to the default themes. Health is
// reset to unknown since the assessment no longer describes the themes in
// effect.
func (s *Session) RevertThemes() {
	defaults := news.DefaultThemes()
	for day := 1; day <= news.NumDays; day++ {
		d := s.working.Day(day)
		if d == nil {
			continue
		}
		d.Theme = defaults[day]
		d.Health = &news.ThemeHealth{Status: news.HealthUnknown}
	}
	s.logChange("Reverted to default themes")
}

// EditThemes renames day themes. A renamed theme gets a key derived from
// its new name and provenance "generated"; names matching the current
// theme are left untouched. Regrouping is a separate explicit action.
func (s *Session) EditThemes(names map[int]string) error {
	for day, name := range names {
		if day < 1 || day > news.NumDays {
			return invalidOp("day %d out of range", day)
		}
		if name == "" {
			return invalidOp("theme name for day %d is empty", day)
		}
	}
	for day, name := range names {
		d := s.working.Day(day)
		if d == nil || d.Theme.Name == name {
			continue
		}
		d.Theme = news.Theme{
			Name:       name,
			Key:        news.ThemeKey(name),
			Provenance: news.ProvenanceGenerated,
		}
		s.logChange("Day %d theme renamed to %q", day, name)
	}
	return nil
}

// Regroup re-invokes the grouping engine with the current theme set over
// the current working set of stories, placed and unused alike. The
// engine's internal fallback makes this total; the only failure mode is
// a session with no regrouper installed.
func (s *Session) Regroup(ctx context.Context) error {
	if s.regrouper == nil {
		return invalidOp("no grouping engine available for regroup")
	}

	var stories []news.Story
	collect := func(st *news.Story) {
		if st != nil {
			stories = append(stories, *st)
		}
	}
	for day := 1; day <= news.NumDays; day++ {
		d := s.working.Day(day)
		if d == nil {
			continue
		}
		collect(d.Main)
		for _, m := range d.Minis {
			collect(m)
		}
	}
	for _, u := range s.working.Unused {
		collect(u)
	}
	if len(stories) == 0 {
		return invalidOp("no stories to regroup")
	}

	themes := make(map[int]news.Theme, news.NumDays)
	health := make(map[int]news.ThemeHealth, news.NumDays)
	for day := 1; day <= news.NumDays; day++ {
		if d := s.working.Day(day); d != nil {
			themes[day] = d.Theme
			if d.Health != nil {
				health[day] = *d.Health
			}
		}
	}

	res := s.regrouper.Group(ctx, stories, nil, themes)
	rebuilt := grouping.Build(stories, res, themes, health)

	s.working.Days = rebuilt.Days
	s.working.Unused = rebuilt.Unused
	s.logChange("Regrouped stories under edited themes")
	s.restartDays()
	return nil
}

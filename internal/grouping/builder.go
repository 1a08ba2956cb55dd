package grouping

import (
	"github.com/newsfixed/edition/internal/news"
)

// Build materializes a grouping result into the final assignment:
// story ids resolved to full records, theme metadata and health numbers
// attached per day, unused ids packaged with their records. Pure
// transformation with no decision logic.
func Build(stories []news.Story, res Result, themes map[int]news.Theme, assessment map[int]news.ThemeHealth) *news.Assignment {
	byID := make(map[int]*news.Story, len(stories))
	for i := range stories {
		byID[stories[i].ID] = &stories[i]
	}

	lookup := func(id int) *news.Story {
		s, ok := byID[id]
		if !ok {
			return nil
		}
		c := *s
		return &c
	}

	a := news.NewAssignment(themes)
	for day := 1; day <= news.NumDays; day++ {
		d := a.Day(day)
		if h, ok := assessment[day]; ok {
			hh := h
			d.Health = &hh
		}
		g, ok := res.Days[day]
		if !ok {
			continue
		}
		if g.MainID >= 0 {
			d.Main = lookup(g.MainID)
		}
		for _, id := range g.MiniIDs {
			if s := lookup(id); s != nil {
				d.Minis = append(d.Minis, s)
			}
		}
	}
	for _, id := range res.Unused {
		if s := lookup(id); s != nil {
			a.Unused = append(a.Unused, s)
		}
	}
	return a
}

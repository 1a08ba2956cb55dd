package grouping

import (
	"sort"

	"github.com/newsfixed/edition/internal/news"
)

// Fallback is the deterministic, call-free grouping algorithm: eligible
// stories sorted by length descending (id ascending as tie-break), each
// routed to its primary theme's day: main first, then up to four minis,
// overflow and unmatched themes to unused. It is total over the id set
// and yields identical output for identical input.
func Fallback(stories []news.Story, blocklisted []int, themes map[int]news.Theme) Result {
	blocked := make(map[int]bool, len(blocklisted))
	for _, id := range blocklisted {
		blocked[id] = true
	}

	res := Result{Days: make(map[int]DayGroup, news.NumDays)}
	for day := 1; day <= news.NumDays; day++ {
		res.Days[day] = DayGroup{MainID: -1}
	}

	eligible := make([]news.Story, 0, len(stories))
	for _, s := range stories {
		if blocked[s.ID] {
			res.Unused = append(res.Unused, s.ID)
			continue
		}
		eligible = append(eligible, s)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Length != eligible[j].Length {
			return eligible[i].Length > eligible[j].Length
		}
		return eligible[i].ID < eligible[j].ID
	})

	byKey := news.DayForThemeKey(themes)
	for _, s := range eligible {
		day, ok := byKey[s.PrimaryTheme]
		if !ok {
			res.Unused = append(res.Unused, s.ID)
			continue
		}
		g := res.Days[day]
		switch {
		case g.MainID < 0:
			g.MainID = s.ID
		case len(g.MiniIDs) < news.MaxMinis:
			g.MiniIDs = append(g.MiniIDs, s.ID)
		default:
			res.Unused = append(res.Unused, s.ID)
			continue
		}
		res.Days[day] = g
	}
	return res
}

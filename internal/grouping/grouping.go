// Package grouping assigns stories to days under a chosen theme set:
// a model-backed primary path and a deterministic, call-free fallback
// that serves as the correctness backstop.
package grouping

import (
	"context"
	"fmt"
	"log"

	"github.com/newsfixed/edition/internal/ai"
	"github.com/newsfixed/edition/internal/news"
)

// DayGroup is one day's worth of story ids. MainID is -1 when the day has
// no main story.
type DayGroup struct {
	MainID  int
	MiniIDs []int
}

// Result maps days to their story ids plus the unused bucket. Every input
// story id appears exactly once across the days and UnusedIDs.
type Result struct {
	Days   map[int]DayGroup
	Unused []int
}

// Engine groups stories via one model call, falling back to the
// deterministic algorithm on any failure.
type Engine struct {
	call ai.CallFunc
}

// NewEngine creates a grouping engine. A nil call function means every
// grouping uses the fallback.
func NewEngine(call ai.CallFunc) *Engine {
	return &Engine{call: call}
}

// groupingResponse is the wire shape of the grouping reply.
type groupingResponse struct {
	Days []struct {
		Day   int   `json:"day"`
		Main  int   `json:"main"`
		Minis []int `json:"minis"`
	} `json:"days"`
	Unused []int `json:"unused"`
}

// Group assigns stories to days. The model path is attempted first (with
// the parser's one-shot repair); a call failure, an unrepairable
// response, or a result that misplaces ids degrades to Fallback. Group
// never fails.
func (e *Engine) Group(ctx context.Context, stories []news.Story, blocklisted []int, themes map[int]news.Theme) Result {
	if e.call == nil {
		return Fallback(stories, blocklisted, themes)
	}

	prompt := ai.GroupingPrompt(stories, blocklisted, themes)
	var resp groupingResponse
	if err := ai.CallJSON(ctx, e.call, prompt, &resp); err != nil {
		log.Printf("edition: grouping call failed, using fallback: %v", err)
		return Fallback(stories, blocklisted, themes)
	}

	res, err := resolve(resp, stories, blocklisted)
	if err != nil {
		log.Printf("edition: grouping response invalid, using fallback: %v", err)
		return Fallback(stories, blocklisted, themes)
	}
	return res
}

// resolve converts the wire response to a Result and enforces the hard
// invariants: four days, every story id placed exactly once, blocklisted
// ids in unused. Violations reject the whole response.
func resolve(resp groupingResponse, stories []news.Story, blocklisted []int) (Result, error) {
	if len(resp.Days) != news.NumDays {
		return Result{}, fmt.Errorf("got %d days, want %d", len(resp.Days), news.NumDays)
	}

	known := make(map[int]bool, len(stories))
	for _, s := range stories {
		known[s.ID] = true
	}
	blocked := make(map[int]bool, len(blocklisted))
	for _, id := range blocklisted {
		blocked[id] = true
	}

	res := Result{Days: make(map[int]DayGroup, news.NumDays)}
	placed := make(map[int]bool, len(stories))

	place := func(id int, allowBlocked bool) error {
		if !known[id] {
			return fmt.Errorf("unknown story id %d", id)
		}
		if placed[id] {
			return fmt.Errorf("story %d placed twice", id)
		}
		if blocked[id] && !allowBlocked {
			return fmt.Errorf("blocklisted story %d placed in a day", id)
		}
		placed[id] = true
		return nil
	}

	for _, d := range resp.Days {
		if d.Day < 1 || d.Day > news.NumDays {
			return Result{}, fmt.Errorf("day %d out of range", d.Day)
		}
		if _, dup := res.Days[d.Day]; dup {
			return Result{}, fmt.Errorf("day %d listed twice", d.Day)
		}
		if len(d.Minis) > news.MaxMinis {
			return Result{}, fmt.Errorf("day %d has %d minis", d.Day, len(d.Minis))
		}
		g := DayGroup{MainID: -1}
		if err := place(d.Main, false); err != nil {
			return Result{}, err
		}
		g.MainID = d.Main
		for _, id := range d.Minis {
			if err := place(id, false); err != nil {
				return Result{}, err
			}
			g.MiniIDs = append(g.MiniIDs, id)
		}
		res.Days[d.Day] = g
	}

	for _, id := range resp.Unused {
		if err := place(id, true); err != nil {
			return Result{}, err
		}
		res.Unused = append(res.Unused, id)
	}

	if len(placed) != len(stories) {
		return Result{}, fmt.Errorf("placed %d of %d stories", len(placed), len(stories))
	}
	return res, nil
}

package curation

import (
	"github.com/newsfixed/edition/internal/news"
)

// Slot addressing within a day is 1-based display order: slot 1 is the
// main story, slots 2..5 are the minis in sequence.

const (
	RoleMain = "main"
	RoleMini = "mini"
)

// OverflowChoice resolves a move into a full day.
type OverflowChoice int

const (
	OverflowUnresolved OverflowChoice = iota
	OverflowSwap
	OverflowReplace
	OverflowCancel
)

// OverflowResolution selects what happens to a full target day:
// Swap exchanges the incoming story with the target mini at MiniIndex
// (1-based) and returns the bumped story to the source day's vacated
// slot; Replace drops the bumped story into unused; Cancel aborts.
type OverflowResolution struct {
	Choice    OverflowChoice
	MiniIndex int
}

// storyAt resolves a 1-based display slot to a story and its role.
func storyAt(d *news.DayAssignment, slot int) (*news.Story, string) {
	if slot == 1 {
		if d.Main == nil {
			return nil, ""
		}
		return d.Main, RoleMain
	}
	idx := slot - 2
	if idx < 0 || idx >= len(d.Minis) {
		return nil, ""
	}
	return d.Minis[idx], RoleMini
}

// View returns the story at a day/slot for read-only display.
func (s *Session) View(day, slot int) (*news.Story, string, error) {
	d := s.working.Day(day)
	if d == nil {
		return nil, "", invalidOp("day %d out of range", day)
	}
	story, role := storyAt(d, slot)
	if story == nil {
		return nil, "", invalidOp("no story at day %d slot %d", day, slot)
	}
	return story, role, nil
}

// ViewUnused returns the unused story at a 1-based index.
func (s *Session) ViewUnused(index int) (*news.Story, error) {
	if index < 1 || index > len(s.working.Unused) {
		return nil, invalidOp("no unused story %d", index)
	}
	return s.working.Unused[index-1], nil
}

// Swap exchanges a day's main story with one of its minis. Targeting the
// main itself is rejected with no state change.
func (s *Session) Swap(day, miniIndex int) error {
	d := s.working.Day(day)
	if d == nil {
		return invalidOp("day %d out of range", day)
	}
	if d.Main == nil {
		return invalidOp("day %d has no main story to swap", day)
	}
	if miniIndex < 1 {
		return invalidOp("story 1 is already the main story")
	}
	if miniIndex > len(d.Minis) {
		return invalidOp("day %d has no mini %d", day, miniIndex)
	}

	d.Main, d.Minis[miniIndex-1] = d.Minis[miniIndex-1], d.Main
	s.logChange("Day %d: swapped main story with %q", day, truncHeadline(d.Main))
	return nil
}

// Move relocates one story to another day as a mini. A full target day
// requires an overflow resolution; without one Move fails with
// *ErrTargetFull and no state change.
func (s *Session) Move(fromDay, slot, toDay int, res OverflowResolution) error {
	if fromDay == toDay {
		return invalidOp("story is already on day %d", toDay)
	}
	from := s.working.Day(fromDay)
	to := s.working.Day(toDay)
	if from == nil || to == nil {
		return invalidOp("day out of range")
	}
	story, role := storyAt(from, slot)
	if story == nil {
		return invalidOp("no story at day %d slot %d", fromDay, slot)
	}

	if to.Total() < news.MaxMinis+1 {
		s.removeAndPromote(from, slot, role)
		to.Minis = append(to.Minis, story)
		s.logChange("Day %d → Day %d: %q", fromDay, toDay, truncHeadline(story))
		return nil
	}

	switch res.Choice {
	case OverflowUnresolved:
		return &ErrTargetFull{Day: toDay}
	case OverflowCancel:
		return nil
	case OverflowSwap:
		bumpIdx := res.MiniIndex - 1
		if bumpIdx < 0 || bumpIdx >= len(to.Minis) {
			return invalidOp("day %d has no mini %d", toDay, res.MiniIndex)
		}
		bumped := to.Minis[bumpIdx]
		to.Minis[bumpIdx] = story
		// The bumped story takes the vacated slot, so no promotion runs:
		// a swap supplies its own replacement.
		if role == RoleMain {
			from.Main = bumped
		} else {
			from.Minis[slot-2] = bumped
		}
		s.logChange("Day %d ⇄ Day %d: %q for %q", fromDay, toDay, truncHeadline(story), truncHeadline(bumped))
		return nil
	case OverflowReplace:
		bumpIdx := res.MiniIndex - 1
		if bumpIdx < 0 || bumpIdx >= len(to.Minis) {
			return invalidOp("day %d has no mini %d", toDay, res.MiniIndex)
		}
		bumped := to.Minis[bumpIdx]
		to.Minis[bumpIdx] = story
		s.removeAndPromote(from, slot, role)
		s.working.Unused = append(s.working.Unused, bumped)
		s.logChange("Day %d → Day %d: %q (replaced %q, now unused)", fromDay, toDay, truncHeadline(story), truncHeadline(bumped))
		return nil
	default:
		return invalidOp("unknown overflow choice")
	}
}

// Drop removes a story from a day into the unused bucket.
func (s *Session) Drop(day, slot int) error {
	d := s.working.Day(day)
	if d == nil {
		return invalidOp("day %d out of range", day)
	}
	story, role := storyAt(d, slot)
	if story == nil {
		return invalidOp("no story at day %d slot %d", day, slot)
	}
	s.removeAndPromote(d, slot, role)
	s.working.Unused = append(s.working.Unused, story)
	s.logChange("Day %d → unused: %q", day, truncHeadline(story))
	return nil
}

// Restore moves a story out of the unused bucket into a day as a mini.
// Over-capacity is allowed here since the operator resolves it during
// day review, so the caller should surface the returned warning.
func (s *Session) Restore(index, toDay int) (warning string, err error) {
	if index < 1 || index > len(s.working.Unused) {
		return "", invalidOp("no unused story %d", index)
	}
	to := s.working.Day(toDay)
	if to == nil {
		return "", invalidOp("day %d out of range", toDay)
	}

	story := s.working.Unused[index-1]
	s.working.Unused = append(s.working.Unused[:index-1], s.working.Unused[index:]...)
	to.Minis = append(to.Minis, story)
	s.logChange("Unused → Day %d: %q", toDay, truncHeadline(story))

	if to.Total() > news.MaxMinis+1 {
		warning = "day is now over capacity; remove a story during day review"
	}
	return warning, nil
}

// removeAndPromote takes a story out of its slot. Vacating the main
// promotes the first mini when one exists; otherwise the day is left
// without a main, which validation flags at save time.
func (s *Session) removeAndPromote(d *news.DayAssignment, slot int, role string) {
	if role == RoleMain {
		if len(d.Minis) > 0 {
			d.Main = d.Minis[0]
			d.Minis = d.Minis[1:]
		} else {
			d.Main = nil
		}
		return
	}
	idx := slot - 2
	d.Minis = append(d.Minis[:idx], d.Minis[idx+1:]...)
}

func truncHeadline(s *news.Story) string {
	const max = 40
	if len(s.Headline) <= max {
		return s.Headline
	}
	return s.Headline[:max] + "..."
}

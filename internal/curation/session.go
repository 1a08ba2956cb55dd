// Package curation is the interactive layer of the assignment pipeline:
// an explicit state machine over a working copy of the post-grouping
// assignment. Every operation is atomic: it either fully succeeds,
// mutating state and appending to the change log, or fully fails with the
// state untouched. The pristine assignment is retained read-only so the
// full set of edits can always be reconstructed.
package curation

import (
	"context"
	"fmt"

	"github.com/newsfixed/edition/internal/grouping"
	"github.com/newsfixed/edition/internal/news"
)

// Phase is the session's position in the review cycle.
type Phase int

const (
	PhaseThemes Phase = iota
	PhaseUnused
	PhaseDays
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseThemes:
		return "themes"
	case PhaseUnused:
		return "unused"
	case PhaseDays:
		return "days"
	default:
		return "done"
	}
}

// InvalidOperationError reports a structurally impossible curation action.
// The action is rejected with no state mutation.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string { return e.Reason }

func invalidOp(format string, args ...any) error {
	return &InvalidOperationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrTargetFull is returned by Move when the target day is at capacity
// and no overflow resolution was supplied. The front end prompts for
// swap/replace/cancel and retries. No state has changed.
type ErrTargetFull struct {
	Day int
}

func (e *ErrTargetFull) Error() string {
	return fmt.Sprintf("day %d is full; overflow resolution required", e.Day)
}

// Regrouper re-invokes the grouping engine during theme review.
// *grouping.Engine satisfies it.
type Regrouper interface {
	Group(ctx context.Context, stories []news.Story, blocklisted []int, themes map[int]news.Theme) grouping.Result
}

// Passthrough carries per-day fields the engine never computes but must
// preserve in the saved snapshot.
type Passthrough struct {
	Statistics     []string
	TomorrowTeaser string
}

// Session drives one curation run over a single assignment. It is not
// safe for concurrent use; the engine assumes one operator per session.
type Session struct {
	original *news.Assignment
	working  *news.Assignment

	phase      Phase
	currentDay int

	changes     []string
	passthrough map[int]Passthrough
	regrouper   Regrouper
	inputIDs    []int
}

// NewSession starts a session over the given assignment. The session
// works against a deep copy; the caller's assignment is never mutated.
func NewSession(a *news.Assignment) *Session {
	return &Session{
		original:    a,
		working:     a.Clone(),
		phase:       PhaseThemes,
		currentDay:  1,
		passthrough: make(map[int]Passthrough),
		inputIDs:    a.StoryIDs(),
	}
}

// SetRegrouper installs the grouping engine used by the Regroup action.
func (s *Session) SetRegrouper(r Regrouper) { s.regrouper = r }

// SetPassthrough records pass-through fields for a day.
func (s *Session) SetPassthrough(day int, p Passthrough) {
	s.passthrough[day] = p
}

// Working exposes the mutable working assignment for display. Callers
// must not mutate it directly; all edits go through session operations.
func (s *Session) Working() *news.Assignment { return s.working }

// Original exposes the pristine post-grouping assignment for diffing.
func (s *Session) Original() *news.Assignment { return s.original }

// Phase returns the current review phase.
func (s *Session) Phase() Phase { return s.phase }

// CurrentDay returns the day under review during PhaseDays.
func (s *Session) CurrentDay() int { return s.currentDay }

// ChangeLog returns the messages recorded for each successful mutation.
func (s *Session) ChangeLog() []string { return s.changes }

func (s *Session) logChange(format string, args ...any) {
	s.changes = append(s.changes, fmt.Sprintf(format, args...))
}

// Accept advances the review cycle: themes → unused → day 1..4 → done.
func (s *Session) Accept() error {
	switch s.phase {
	case PhaseThemes:
		s.phase = PhaseUnused
	case PhaseUnused:
		s.phase = PhaseDays
		s.currentDay = 1
	case PhaseDays:
		if s.currentDay < news.NumDays {
			s.currentDay++
		} else {
			s.phase = PhaseDone
		}
	default:
		return invalidOp("session already complete")
	}
	return nil
}

// Back returns to the previous review step. From day 1 it reopens the
// unused review; from the themes phase there is nowhere to go.
func (s *Session) Back() error {
	switch s.phase {
	case PhaseDone:
		s.phase = PhaseDays
		s.currentDay = news.NumDays
	case PhaseDays:
		if s.currentDay > 1 {
			s.currentDay--
		} else {
			s.phase = PhaseUnused
		}
	case PhaseUnused:
		s.phase = PhaseThemes
	default:
		return invalidOp("cannot go back from %s", s.phase)
	}
	return nil
}

// restartDays is used after a regroup invalidates prior per-day review.
func (s *Session) restartDays() {
	if s.phase == PhaseDays || s.phase == PhaseDone {
		s.phase = PhaseDays
		s.currentDay = 1
	}
}

// CheckConservation verifies the id-conservation invariant against the
// session's input id set.
func (s *Session) CheckConservation() error {
	return s.working.CheckConservation(s.inputIDs)
}

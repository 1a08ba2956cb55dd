package curation

import (
	"context"
	"fmt"
)

// ActionKind enumerates the operator-facing action set. Interactive and
// scripted drivers share this surface: the interactive loop translates
// key presses into Actions and the session applies them.
type ActionKind int

const (
	ActionAccept ActionKind = iota
	ActionBack
	ActionView
	ActionSwap
	ActionMove
	ActionDrop
	ActionRestore
	ActionRevertThemes
	ActionEditThemes
	ActionRegroup
)

// Action is one operator command. Field use depends on Kind:
//
//	View:    Day, Slot (Day 0 targets the unused bucket, Slot its index)
//	Swap:    Day, MiniIndex
//	Move:    Day, Slot, ToDay, Overflow
//	Drop:    Day, Slot
//	Restore: Slot (unused index), ToDay
//	EditThemes: ThemeNames
type Action struct {
	Kind       ActionKind
	Day        int
	Slot       int
	ToDay      int
	MiniIndex  int
	Overflow   OverflowResolution
	ThemeNames map[int]string
}

// Event is the user-visible outcome of a successfully applied action.
type Event struct {
	Message string
	Warning string
}

// Apply dispatches one action against the session. Either the action
// fully succeeds, or it fails with the state unchanged.
func (s *Session) Apply(ctx context.Context, a Action) (*Event, error) {
	switch a.Kind {
	case ActionAccept:
		if err := s.Accept(); err != nil {
			return nil, err
		}
		return &Event{Message: fmt.Sprintf("phase: %s", s.phase)}, nil
	case ActionBack:
		if err := s.Back(); err != nil {
			return nil, err
		}
		return &Event{Message: fmt.Sprintf("phase: %s", s.phase)}, nil
	case ActionView:
		if a.Day == 0 {
			story, err := s.ViewUnused(a.Slot)
			if err != nil {
				return nil, err
			}
			return &Event{Message: story.Headline}, nil
		}
		story, role, err := s.View(a.Day, a.Slot)
		if err != nil {
			return nil, err
		}
		return &Event{Message: fmt.Sprintf("%s: %s", role, story.Headline)}, nil
	case ActionSwap:
		if err := s.Swap(a.Day, a.MiniIndex); err != nil {
			return nil, err
		}
		return &Event{Message: lastChange(s)}, nil
	case ActionMove:
		before := len(s.changes)
		if err := s.Move(a.Day, a.Slot, a.ToDay, a.Overflow); err != nil {
			return nil, err
		}
		if len(s.changes) == before {
			return &Event{Message: "move cancelled"}, nil
		}
		return &Event{Message: lastChange(s)}, nil
	case ActionDrop:
		if err := s.Drop(a.Day, a.Slot); err != nil {
			return nil, err
		}
		return &Event{Message: lastChange(s)}, nil
	case ActionRestore:
		warning, err := s.Restore(a.Slot, a.ToDay)
		if err != nil {
			return nil, err
		}
		return &Event{Message: lastChange(s), Warning: warning}, nil
	case ActionRevertThemes:
		s.RevertThemes()
		return &Event{Message: lastChange(s)}, nil
	case ActionEditThemes:
		if err := s.EditThemes(a.ThemeNames); err != nil {
			return nil, err
		}
		return &Event{Message: "themes updated"}, nil
	case ActionRegroup:
		if err := s.Regroup(ctx); err != nil {
			return nil, err
		}
		return &Event{Message: lastChange(s)}, nil
	default:
		return nil, invalidOp("unknown action")
	}
}

func lastChange(s *Session) string {
	if len(s.changes) == 0 {
		return ""
	}
	return s.changes[len(s.changes)-1]
}

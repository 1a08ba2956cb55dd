package curation

import (
	"testing"
)

func issueFor(issues []Issue, day int) *Issue {
	for i := range issues {
		if issues[i].Day == day {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateCleanAssignment(t *testing.T) {
	s := NewSession(testAssignment())
	issues := s.Validate()

	// Day 3 has a main and no minis: warning only.
	if Blocking(issues) {
		t.Errorf("no blocking issues expected: %+v", issues)
	}
	if issue := issueFor(issues, 3); issue == nil || issue.Severity != SeverityWarning {
		t.Errorf("day 3 should warn about zero minis: %+v", issues)
	}
}

func TestValidateEmptyDayBlocks(t *testing.T) {
	a := testAssignment()
	a.Unused = append(a.Unused, a.Days[2].Main)
	a.Days[2].Main = nil
	s := NewSession(a)

	issues := s.Validate()
	issue := issueFor(issues, 3)
	if issue == nil || issue.Severity != SeverityBlocking {
		t.Errorf("empty day should block: %+v", issues)
	}
	if !Blocking(issues) {
		t.Error("Blocking() should report true")
	}
}

func TestValidateNoMainBlocks(t *testing.T) {
	a := testAssignment()
	a.Unused = append(a.Unused, a.Days[3].Main)
	a.Days[3].Main = nil // day 4 keeps its mini
	s := NewSession(a)

	issues := s.Validate()
	issue := issueFor(issues, 4)
	if issue == nil || issue.Severity != SeverityBlocking {
		t.Errorf("day with minis but no main should block: %+v", issues)
	}
}

func TestValidateOverCapacityWarns(t *testing.T) {
	a := testAssignment()
	a.Days[1].Minis = append(a.Days[1].Minis, a.Unused[0])
	a.Unused = nil
	s := NewSession(a)

	issues := s.Validate()
	issue := issueFor(issues, 2)
	if issue == nil || issue.Severity != SeverityWarning {
		t.Errorf("over-capacity day should warn, not block: %+v", issues)
	}
	if Blocking(issues) {
		t.Error("over-capacity is not a save blocker")
	}
}

func TestValidateIsReadOnly(t *testing.T) {
	s := NewSession(testAssignment())
	before := s.Working().StoryIDs()
	s.Validate()
	after := s.Working().StoryIDs()
	if len(before) != len(after) {
		t.Error("validation mutated the assignment")
	}
	if s.Working().Day(2).Total() != 5 {
		t.Error("validation mutated day 2")
	}
}

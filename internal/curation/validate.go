package curation

import (
	"fmt"
	"strings"

	"github.com/newsfixed/edition/internal/news"
)

// Severity splits validation findings into save blockers and warnings.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityBlocking
)

func (s Severity) String() string {
	if s == SeverityBlocking {
		return "error"
	}
	return "warning"
}

// Issue is one validation finding.
type Issue struct {
	Day      int
	Severity Severity
	Message  string
}

// ValidationError carries the blocking issues that prevented a save.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var parts []string
	for _, i := range e.Issues {
		if i.Severity == SeverityBlocking {
			parts = append(parts, i.Message)
		}
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Validate runs the save-time checks over the working assignment. It is
// never invoked during intermediate edits: transient states (empty days,
// over-capacity days) are legal until save. Warnings are surfaced but do
// not block; blocking issues prevent the save.
func (s *Session) Validate() []Issue {
	var issues []Issue

	for day := 1; day <= news.NumDays; day++ {
		d := s.working.Day(day)
		if d == nil {
			issues = append(issues, Issue{
				Day:      day,
				Severity: SeverityBlocking,
				Message:  fmt.Sprintf("day %d missing from assignment", day),
			})
			continue
		}

		if d.Main == nil {
			if len(d.Minis) == 0 {
				issues = append(issues, Issue{
					Day:      day,
					Severity: SeverityBlocking,
					Message:  fmt.Sprintf("day %d is empty", day),
				})
			} else {
				issues = append(issues, Issue{
					Day:      day,
					Severity: SeverityBlocking,
					Message:  fmt.Sprintf("day %d has no main story", day),
				})
			}
			continue
		}

		if len(d.Minis) == 0 {
			issues = append(issues, Issue{
				Day:      day,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("day %d has only a main story", day),
			})
		}
		if len(d.Minis) > news.MaxMinis {
			issues = append(issues, Issue{
				Day:      day,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("day %d has %d minis (max %d)", day, len(d.Minis), news.MaxMinis),
			})
		}
	}
	return issues
}

// Blocking reports whether any issue prevents a save.
func Blocking(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}

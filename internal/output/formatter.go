// Package output renders pipeline and curation results for the CLI in
// three formats: machine-readable JSON, line-oriented text, and a
// human-friendly layout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/newsfixed/edition/internal/curation"
	"github.com/newsfixed/edition/internal/news"
	"github.com/newsfixed/edition/internal/storage"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		format: format,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
	}
}

// OutputAssignment renders the four-day assignment plus the unused bucket.
func (f *Formatter) OutputAssignment(a *news.Assignment) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(curation.SnapshotFromAssignment(a, nil))
	case FormatText:
		for day := 1; day <= news.NumDays; day++ {
			d := a.Day(day)
			if d == nil {
				continue
			}
			main := "-"
			if d.Main != nil {
				main = fmt.Sprintf("%d", d.Main.ID)
			}
			var minis []string
			for _, m := range d.Minis {
				minis = append(minis, fmt.Sprintf("%d", m.ID))
			}
			fmt.Fprintf(f.out, "day=%d\ttheme=%s\tmain=%s\tminis=%s\n",
				day, d.Theme.Key, main, strings.Join(minis, ","))
		}
		var unused []string
		for _, u := range a.Unused {
			unused = append(unused, fmt.Sprintf("%d", u.ID))
		}
		fmt.Fprintf(f.out, "unused=%s\n", strings.Join(unused, ","))
		return nil
	case FormatHuman:
		for day := 1; day <= news.NumDays; day++ {
			d := a.Day(day)
			if d == nil {
				continue
			}
			fmt.Fprintf(f.out, "Day %d: %s", day, d.Theme.Name)
			if d.Theme.Provenance != news.ProvenanceDefault {
				fmt.Fprintf(f.out, " (%s)", d.Theme.Provenance)
			}
			fmt.Fprintln(f.out)
			if d.Main != nil {
				fmt.Fprintf(f.out, "  1. MAIN  %s (%d chars)\n", truncate(d.Main.Headline, 60), d.Main.Length)
			}
			for i, m := range d.Minis {
				fmt.Fprintf(f.out, "  %d. mini  %s (%d chars)\n", i+2, truncate(m.Headline, 60), m.Length)
			}
			fmt.Fprintln(f.out)
		}
		if len(a.Unused) > 0 {
			fmt.Fprintf(f.out, "Unused (%d):\n", len(a.Unused))
			for i, u := range a.Unused {
				fmt.Fprintf(f.out, "  %d. %s\n", i+1, truncate(u.Headline, 60))
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputThemes renders the proposed theme set with provenance and health.
func (f *Formatter) OutputThemes(themes map[int]news.Theme, assessment map[int]news.ThemeHealth) error {
	switch f.format {
	case FormatJSON:
		type entry struct {
			Day    int               `json:"day"`
			Theme  news.Theme        `json:"theme"`
			Health *news.ThemeHealth `json:"health,omitempty"`
		}
		var entries []entry
		for _, day := range sortedKeys(themes) {
			e := entry{Day: day, Theme: themes[day]}
			if h, ok := assessment[day]; ok {
				hh := h
				e.Health = &hh
			}
			entries = append(entries, e)
		}
		return json.NewEncoder(f.out).Encode(entries)
	case FormatText:
		for _, day := range sortedKeys(themes) {
			t := themes[day]
			status := string(news.HealthUnknown)
			if h, ok := assessment[day]; ok {
				status = string(h.Status)
			}
			fmt.Fprintf(f.out, "day=%d\tname=%s\tkey=%s\tsource=%s\tstatus=%s\n",
				day, t.Name, t.Key, t.Provenance, status)
		}
		return nil
	case FormatHuman:
		for _, day := range sortedKeys(themes) {
			t := themes[day]
			fmt.Fprintf(f.out, "Day %d: %s [%s]", day, t.Name, t.Provenance)
			if h, ok := assessment[day]; ok {
				fmt.Fprintf(f.out, " — %s (%d stories, %d high-strength)",
					h.Status, h.StoryCount, h.HighStrengthCount)
			}
			fmt.Fprintln(f.out)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputIssues renders validation findings.
func (f *Formatter) OutputIssues(issues []curation.Issue) error {
	switch f.format {
	case FormatJSON:
		type entry struct {
			Day      int    `json:"day"`
			Severity string `json:"severity"`
			Message  string `json:"message"`
		}
		entries := make([]entry, 0, len(issues))
		for _, i := range issues {
			entries = append(entries, entry{Day: i.Day, Severity: i.Severity.String(), Message: i.Message})
		}
		return json.NewEncoder(f.out).Encode(entries)
	case FormatText:
		for _, i := range issues {
			fmt.Fprintf(f.out, "day=%d\tseverity=%s\tmessage=%s\n", i.Day, i.Severity, i.Message)
		}
		return nil
	case FormatHuman:
		if len(issues) == 0 {
			fmt.Fprintln(f.out, "Validation passed")
			return nil
		}
		for _, i := range issues {
			fmt.Fprintf(f.out, "%s: %s\n", i.Severity, i.Message)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputSelections renders the saved-session history.
func (f *Formatter) OutputSelections(selections []storage.Selection) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(selections)
	case FormatText:
		for _, s := range selections {
			fmt.Fprintf(f.out, "batch=%s\tsaved=%s\tpath=%s\tstories=%d\tunused=%d\tchanges=%d\n",
				s.BatchID, s.SavedAt.Format("2006-01-02 15:04"), s.SnapshotPath,
				s.StoryCount, s.UnusedCount, s.ChangeCount)
		}
		return nil
	case FormatHuman:
		if len(selections) == 0 {
			fmt.Fprintln(f.out, "No saved sessions")
			return nil
		}
		for _, s := range selections {
			fmt.Fprintf(f.out, "%s  %s (%d stories, %d unused, %d edits)\n",
				s.SavedAt.Format("2006-01-02 15:04"), s.SnapshotPath,
				s.StoryCount, s.UnusedCount, s.ChangeCount)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// OutputRejections renders the persistent rejection list.
func (f *Formatter) OutputRejections(rejections []storage.Rejection) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(rejections)
	case FormatText:
		for _, r := range rejections {
			fmt.Fprintf(f.out, "url=%s\treason=%s\n", r.SourceURL, r.Reason)
		}
		return nil
	case FormatHuman:
		if len(rejections) == 0 {
			fmt.Fprintln(f.out, "No rejected sources")
			return nil
		}
		for _, r := range rejections {
			fmt.Fprintf(f.out, "%s — %s\n", r.SourceURL, r.Reason)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// Error outputs an error message to stderr
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintf(f.err, format+"\n", args...)
}

// Warning outputs a warning message to stderr
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}

// truncate truncates a string to maxLen characters
func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

package curation

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newsfixed/edition/internal/news"
)

func TestSnapshotShape(t *testing.T) {
	s := NewSession(testAssignment())
	s.SetPassthrough(1, Passthrough{Statistics: []string{"12 sources"}, TomorrowTeaser: "more tomorrow"})
	snap := s.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"day_1", "day_2", "day_3", "day_4", "theme_metadata", "unused"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot missing %q", key)
		}
	}

	var meta map[string]ThemeMetadata
	if err := json.Unmarshal(raw["theme_metadata"], &meta); err != nil {
		t.Fatalf("theme_metadata: %v", err)
	}
	for _, day := range []string{"1", "2", "3", "4"} {
		if _, ok := meta[day]; !ok {
			t.Errorf("theme_metadata missing day %q", day)
		}
	}
	if meta["2"].Key != "environment" {
		t.Errorf("day 2 metadata = %+v", meta["2"])
	}

	if snap.Day1.Statistics == nil {
		t.Error("statistics should serialize as an empty list, not null")
	}
	if snap.Day1.TomorrowTeaser != "more tomorrow" {
		t.Errorf("teaser = %q", snap.Day1.TomorrowTeaser)
	}
	if snap.Unused == nil || len(snap.Unused.Stories) != 1 {
		t.Errorf("unused = %+v", snap.Unused)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	a := testAssignment()
	a.Days[1].Theme = news.Theme{Name: "Ocean Recovery", Key: "ocean_recovery", Provenance: news.ProvenanceSplit, SplitFrom: "environment"}
	snap := SnapshotFromAssignment(a, map[int]Passthrough{3: {TomorrowTeaser: "stay tuned"}})

	back, passthrough := AssignmentFromSnapshot(snap)

	if err := back.CheckConservation(allIDs()); err != nil {
		t.Errorf("conservation after round trip: %v", err)
	}
	d2 := back.Day(2)
	if d2.Theme.Name != "Ocean Recovery" || d2.Theme.Provenance != news.ProvenanceSplit || d2.Theme.SplitFrom != "environment" {
		t.Errorf("day 2 theme = %+v", d2.Theme)
	}
	if d2.Main.ID != 4 || len(d2.Minis) != 4 {
		t.Errorf("day 2 stories = %d/%d", d2.Main.ID, len(d2.Minis))
	}
	if passthrough[3].TomorrowTeaser != "stay tuned" {
		t.Errorf("passthrough = %+v", passthrough[3])
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selection.json")

	s := NewSession(testAssignment())
	issues, err := s.Save(path)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// Day 3 has zero minis: a warning comes back with the success.
	if len(issues) == 0 {
		t.Error("expected the zero-minis warning alongside the save")
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	back, _ := AssignmentFromSnapshot(snap)
	if err := back.CheckConservation(allIDs()); err != nil {
		t.Errorf("conservation after save/load: %v", err)
	}
}

func TestSaveBlockedWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selection.json")

	a := testAssignment()
	a.Unused = append(a.Unused, a.Days[2].Main)
	a.Days[2].Main = nil
	s := NewSession(a)

	_, err := s.Save(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("blocked save must not write a file")
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("malformed file should fail")
	}
}

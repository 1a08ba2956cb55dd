package news

import (
	"encoding/json"
	"testing"
)

func TestParseStrength(t *testing.T) {
	tests := []struct {
		in   string
		want Strength
	}{
		{"high", StrengthHigh},
		{"medium", StrengthMedium},
		{"low", StrengthLow},
		{"", StrengthMedium},
		{"HIGH", StrengthMedium}, // unknown values parse as medium
	}
	for _, tt := range tests {
		if got := ParseStrength(tt.in); got != tt.want {
			t.Errorf("ParseStrength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrengthJSONRoundTrip(t *testing.T) {
	s := Story{ID: 1, Headline: "h", Strength: StrengthHigh}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Story
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Strength != StrengthHigh {
		t.Errorf("strength = %v, want high", back.Strength)
	}
}

func TestThemeKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Health & Education", "health_education"},
		{"Ocean Conservation", "ocean_conservation"},
		{"  Youth  Movements!! ", "youth_movements"},
		{"technology_energy", "technology_energy"},
	}
	for _, tt := range tests {
		if got := ThemeKey(tt.name); got != tt.want {
			t.Errorf("ThemeKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDefaultThemesIsACopy(t *testing.T) {
	a := DefaultThemes()
	a[1] = Theme{Name: "Changed", Key: "changed"}
	b := DefaultThemes()
	if b[1].Name != "Health & Education" {
		t.Errorf("mutating the returned map leaked into the defaults: %q", b[1].Name)
	}
}

func testAssignment() *Assignment {
	a := NewAssignment(DefaultThemes())
	a.Days[0].Main = &Story{ID: 1, Headline: "main one"}
	a.Days[0].Minis = []*Story{{ID: 2, Headline: "mini two"}}
	a.Days[1].Main = &Story{ID: 3, Headline: "main three"}
	a.Unused = []*Story{{ID: 4, Headline: "unused four"}}
	return a
}

func TestCloneIsDeep(t *testing.T) {
	a := testAssignment()
	c := a.Clone()

	c.Days[0].Main.Headline = "rewritten"
	c.Days[0].Minis[0].Headline = "rewritten"
	c.Unused[0].Headline = "rewritten"

	if a.Days[0].Main.Headline != "main one" {
		t.Error("clone shares the main story pointer")
	}
	if a.Days[0].Minis[0].Headline != "mini two" {
		t.Error("clone shares a mini story pointer")
	}
	if a.Unused[0].Headline != "unused four" {
		t.Error("clone shares an unused story pointer")
	}
}

func TestCheckConservation(t *testing.T) {
	a := testAssignment()

	if err := a.CheckConservation([]int{1, 2, 3, 4}); err != nil {
		t.Errorf("conservation should hold: %v", err)
	}
	if err := a.CheckConservation([]int{1, 2, 3}); err == nil {
		t.Error("extra story should fail conservation")
	}
	if err := a.CheckConservation([]int{1, 2, 3, 5}); err == nil {
		t.Error("missing story should fail conservation")
	}

	// Duplicate placement is a violation even with matching counts.
	a.Days[1].Minis = append(a.Days[1].Minis, &Story{ID: 1})
	if err := a.CheckConservation([]int{1, 2, 3, 4, 5}); err == nil {
		t.Error("duplicate placement should fail conservation")
	}
}

func TestDayBounds(t *testing.T) {
	a := testAssignment()
	if a.Day(0) != nil || a.Day(5) != nil {
		t.Error("out-of-range days should be nil")
	}
	if d := a.Day(2); d == nil || d.Day != 2 {
		t.Errorf("Day(2) = %+v", d)
	}
}

func TestTotalAndFull(t *testing.T) {
	d := &DayAssignment{Day: 1}
	if d.Total() != 0 || d.Full() {
		t.Error("empty day should be 0 and not full")
	}
	d.Main = &Story{ID: 1}
	for i := 2; i <= 5; i++ {
		d.Minis = append(d.Minis, &Story{ID: i})
	}
	if d.Total() != 5 {
		t.Errorf("Total() = %d, want 5", d.Total())
	}
	if !d.Full() {
		t.Error("1 main + 4 minis should be full")
	}
}

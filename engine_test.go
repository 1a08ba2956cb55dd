package edition

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func offlineEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(EngineConfig{Offline: true})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func samplePool() []Story {
	return []Story{
		{ID: 1, Headline: "Vaccine milestone", PrimaryTheme: "health_education", Strength: StrengthHigh, Length: 800},
		{ID: 2, Headline: "Literacy gains", PrimaryTheme: "health_education", Strength: StrengthMedium, Length: 300},
		{ID: 3, Headline: "Reef recovery", PrimaryTheme: "environment", Strength: StrengthHigh, Length: 700},
		{ID: 4, Headline: "Rewilding wins", PrimaryTheme: "environment", Strength: StrengthMedium, Length: 200},
		{ID: 5, Headline: "Grid storage", PrimaryTheme: "technology_energy", Strength: StrengthHigh, Length: 600},
		{ID: 6, Headline: "Solar record", PrimaryTheme: "technology_energy", Strength: StrengthLow, Length: 100},
		{ID: 7, Headline: "Youth council", PrimaryTheme: "society", Strength: StrengthHigh, Length: 500},
		{ID: 8, Headline: "Volunteer surge", PrimaryTheme: "society", Strength: StrengthMedium, Length: 150},
	}
}

func planIDs(p *Plan) map[int]int {
	counts := make(map[int]int)
	for _, d := range p.Days {
		if d.Main != nil {
			counts[d.Main.ID]++
		}
		for _, m := range d.Minis {
			counts[m.ID]++
		}
	}
	for _, u := range p.Unused {
		counts[u.ID]++
	}
	return counts
}

func TestPlanOffline(t *testing.T) {
	e := offlineEngine(t)
	stories := samplePool()

	plan, err := e.Plan(context.Background(), stories, nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	// Offline keeps default themes and routes the longest story per
	// theme to the main slot.
	if plan.Days[0].Theme.Key != "health_education" {
		t.Errorf("day 1 theme = %+v", plan.Days[0].Theme)
	}
	if plan.Days[1].Main == nil || plan.Days[1].Main.ID != 3 {
		t.Errorf("day 2 main = %+v", plan.Days[1].Main)
	}
	if plan.Days[1].Health == nil || plan.Days[1].Health.Status != "healthy" {
		t.Errorf("day 2 health = %+v", plan.Days[1].Health)
	}

	counts := planIDs(plan)
	for _, s := range stories {
		if counts[s.ID] != 1 {
			t.Errorf("story %d placed %d times", s.ID, counts[s.ID])
		}
	}
}

func TestPlanOfflineIsDeterministic(t *testing.T) {
	e := offlineEngine(t)
	ctx := context.Background()

	first, err := e.Plan(ctx, samplePool(), []int{6})
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Plan(ctx, samplePool(), []int{6})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("offline planning must be deterministic")
	}
}

func TestPlanBlocklist(t *testing.T) {
	e := offlineEngine(t)
	plan, err := e.Plan(context.Background(), samplePool(), []int{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	counts := planIDs(plan)
	for _, d := range plan.Days {
		if d.Main != nil && (d.Main.ID == 1 || d.Main.ID == 3) {
			t.Errorf("blocklisted story %d placed as main", d.Main.ID)
		}
		for _, m := range d.Minis {
			if m.ID == 1 || m.ID == 3 {
				t.Errorf("blocklisted story %d placed as mini", m.ID)
			}
		}
	}
	if counts[1] != 1 || counts[3] != 1 {
		t.Error("blocklisted stories must still appear in unused")
	}
}

func TestPlanRejectsBadInput(t *testing.T) {
	e := offlineEngine(t)
	ctx := context.Background()

	dup := samplePool()
	dup = append(dup, Story{ID: 1, Headline: "again"})
	if _, err := e.Plan(ctx, dup, nil); err == nil {
		t.Error("duplicate id should fail")
	}

	if _, err := e.Plan(ctx, samplePool(), []int{99}); err == nil {
		t.Error("unknown blocklisted id should fail")
	}
}

func TestPlanWithInjectedCall(t *testing.T) {
	calls := 0
	e, err := NewEngine(EngineConfig{
		Call: func(_ context.Context, prompt string) (string, error) {
			calls++
			// Unusable output; both stages degrade gracefully.
			return "", errors.New("model offline")
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	plan, planErr := e.Plan(context.Background(), samplePool(), nil)
	if planErr != nil {
		t.Fatalf("Plan should degrade, not fail: %v", planErr)
	}
	// Every theme is healthy in the sample pool, so the proposer
	// short-circuits; only the grouping stage calls out.
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if plan.Days[0].Main == nil {
		t.Error("fallback grouping should still fill days")
	}
}

func TestPlanFillsMissingLength(t *testing.T) {
	e := offlineEngine(t)
	stories := []Story{
		{ID: 1, Headline: "a", Content: "exactly 10", PrimaryTheme: "environment", Strength: StrengthHigh},
		{ID: 2, Headline: "b", Content: "x", PrimaryTheme: "environment", Strength: StrengthMedium},
	}
	plan, err := e.Plan(context.Background(), stories, nil)
	if err != nil {
		t.Fatal(err)
	}
	main := plan.Days[1].Main
	if main == nil || main.ID != 1 {
		t.Fatalf("day 2 main = %+v", main)
	}
	if main.Length != len("exactly 10") {
		t.Errorf("length = %d, want computed from content", main.Length)
	}
}

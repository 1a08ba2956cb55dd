package themes

import (
	"testing"

	"github.com/newsfixed/edition/internal/news"
)

// story builds a minimal classified story for assessment tests.
func story(id int, themeKey string, strength news.Strength) news.Story {
	return news.Story{ID: id, Headline: "headline", PrimaryTheme: themeKey, Strength: strength, Length: 100}
}

// healthyPool gives every default theme two stories, one high-strength.
func healthyPool() []news.Story {
	var out []news.Story
	id := 1
	for _, key := range []string{"health_education", "environment", "technology_energy", "society"} {
		out = append(out, story(id, key, news.StrengthHigh))
		out = append(out, story(id+1, key, news.StrengthMedium))
		id += 2
	}
	return out
}

func TestAssessAllHealthy(t *testing.T) {
	assessment := Assess(healthyPool())
	for day := 1; day <= news.NumDays; day++ {
		if assessment[day].Status != news.HealthHealthy {
			t.Errorf("day %d = %s, want healthy", day, assessment[day].Status)
		}
	}
	if !AllHealthy(assessment) {
		t.Error("AllHealthy should be true")
	}
}

func TestAssessWeakByCount(t *testing.T) {
	// One story for environment, high strength: still weak (< 2 stories).
	pool := healthyPool()[:2]
	pool = append(pool, story(10, "environment", news.StrengthHigh))
	assessment := Assess(pool)
	if assessment[2].Status != news.HealthWeak {
		t.Errorf("day 2 = %s, want weak", assessment[2].Status)
	}
	if AllHealthy(assessment) {
		t.Error("AllHealthy should be false")
	}
}

func TestAssessWeakByStrength(t *testing.T) {
	// Three stories but none high-strength is weak.
	pool := []news.Story{
		story(1, "society", news.StrengthMedium),
		story(2, "society", news.StrengthLow),
		story(3, "society", news.StrengthMedium),
	}
	assessment := Assess(pool)
	if assessment[4].Status != news.HealthWeak {
		t.Errorf("day 4 = %s, want weak", assessment[4].Status)
	}
	if assessment[4].StoryCount != 3 || assessment[4].HighStrengthCount != 0 {
		t.Errorf("counts = %d/%d, want 3/0", assessment[4].StoryCount, assessment[4].HighStrengthCount)
	}
}

func TestAssessOverloaded(t *testing.T) {
	var pool []news.Story
	for i := 1; i <= 7; i++ {
		strength := news.StrengthMedium
		if i <= 2 {
			strength = news.StrengthHigh
		}
		pool = append(pool, story(i, "technology_energy", strength))
	}
	assessment := Assess(pool)
	if assessment[3].Status != news.HealthOverloaded {
		t.Errorf("day 3 = %s, want overloaded", assessment[3].Status)
	}
}

func TestAssessSevenStoriesOneHighIsNotOverloaded(t *testing.T) {
	// Over the count threshold but under the high-strength one.
	var pool []news.Story
	for i := 1; i <= 7; i++ {
		strength := news.StrengthMedium
		if i == 1 {
			strength = news.StrengthHigh
		}
		pool = append(pool, story(i, "environment", strength))
	}
	assessment := Assess(pool)
	if assessment[2].Status != news.HealthHealthy {
		t.Errorf("day 2 = %s, want healthy", assessment[2].Status)
	}
}

func TestAssessIgnoresUnknownThemes(t *testing.T) {
	pool := healthyPool()
	pool = append(pool, story(99, "astrology", news.StrengthHigh))
	assessment := Assess(pool)
	total := 0
	for day := 1; day <= news.NumDays; day++ {
		total += assessment[day].StoryCount
	}
	if total != len(pool)-1 {
		t.Errorf("counted %d stories, want %d", total, len(pool)-1)
	}
}

package themes

import (
	"context"
	"log"
	"strings"

	"github.com/newsfixed/edition/internal/ai"
	"github.com/newsfixed/edition/internal/news"
)

// healthyReasoning is the fixed reasoning attached when the short-circuit
// keeps the defaults without calling out.
const healthyReasoning = "all default themes healthy"

// Proposer decides the final theme set for a batch. Theme substitution is
// a quality enhancement, never a hard dependency: any call or parse
// failure degrades to the defaults.
type Proposer struct {
	call ai.CallFunc
}

// NewProposer creates a proposer using the given call function. A nil
// call function always yields the defaults.
func NewProposer(call ai.CallFunc) *Proposer {
	return &Proposer{call: call}
}

// proposalResponse is the wire shape of the theme-substitution reply.
type proposalResponse struct {
	Themes []struct {
		Day       int    `json:"day"`
		Name      string `json:"name"`
		Key       string `json:"key"`
		Source    string `json:"source"`
		SplitFrom string `json:"split_from"`
		Reasoning string `json:"reasoning"`
	} `json:"themes"`
}

// Propose returns the theme set to group under. When every theme assesses
// healthy, it returns the defaults without making a call; otherwise it
// issues exactly one model call (with the parser's one-shot repair) and
// degrades to the defaults on any failure.
func (p *Proposer) Propose(ctx context.Context, stories []news.Story, assessment map[int]news.ThemeHealth) map[int]news.Theme {
	defaults := news.DefaultThemes()

	if AllHealthy(assessment) {
		for day, t := range defaults {
			t.Reasoning = healthyReasoning
			defaults[day] = t
		}
		return defaults
	}
	if p.call == nil {
		log.Printf("edition: no call function configured, keeping default themes")
		return defaults
	}

	prompt := ai.ThemeProposalPrompt(stories, assessment, defaults)
	var resp proposalResponse
	if err := ai.CallJSON(ctx, p.call, prompt, &resp); err != nil {
		log.Printf("edition: theme proposal failed, keeping defaults: %v", err)
		return defaults
	}

	themes, err := resolve(resp, defaults, assessment)
	if err != nil {
		log.Printf("edition: theme proposal invalid, keeping defaults: %v", err)
		return defaults
	}
	return themes
}

// resolve validates the model's proposal against the assessment: healthy
// days keep their defaults regardless of what the model said, and every
// substituted theme must carry a usable name.
func resolve(resp proposalResponse, defaults map[int]news.Theme, assessment map[int]news.ThemeHealth) (map[int]news.Theme, error) {
	proposed := make(map[int]news.Theme, news.NumDays)
	for _, t := range resp.Themes {
		if t.Day < 1 || t.Day > news.NumDays {
			continue
		}
		theme := news.Theme{Name: strings.TrimSpace(t.Name), Key: safeKey(t.Key, t.Name), Reasoning: t.Reasoning}
		switch t.Source {
		case string(news.ProvenanceGenerated):
			theme.Provenance = news.ProvenanceGenerated
		case string(news.ProvenanceSplit):
			theme.Provenance = news.ProvenanceSplit
			theme.SplitFrom = t.SplitFrom
		default:
			theme.Provenance = news.ProvenanceDefault
		}
		proposed[t.Day] = theme
	}

	out := make(map[int]news.Theme, news.NumDays)
	for day := 1; day <= news.NumDays; day++ {
		if assessment[day].Status == news.HealthHealthy {
			out[day] = defaults[day]
			continue
		}
		t, ok := proposed[day]
		if !ok || t.Name == "" {
			// Nothing usable for this day; keep the default.
			out[day] = defaults[day]
			continue
		}
		if t.Provenance == news.ProvenanceDefault {
			out[day] = defaults[day]
			continue
		}
		out[day] = t
	}
	return out, nil
}

// safeKey returns a machine-safe snake_case key, deriving one from the
// display name when the model omitted it.
func safeKey(key, name string) string {
	src := key
	if strings.TrimSpace(src) == "" {
		src = name
	}
	return news.ThemeKey(src)
}

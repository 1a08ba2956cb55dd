package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"plain fences", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"language tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace around", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"opening fence only", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeTolerantOfProse(t *testing.T) {
	var v struct {
		Days []int `json:"days"`
	}
	raw := "Here is the grouping you asked for:\n{\"days\":[1,2]}\nLet me know if you need changes."
	if err := Decode(raw, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(v.Days) != 2 {
		t.Errorf("days = %v", v.Days)
	}
}

func TestDecodeMalformed(t *testing.T) {
	var v map[string]any
	err := Decode("not json at all", &v)
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("want *MalformedResponseError, got %v", err)
	}
	if malformed.Raw != "not json at all" {
		t.Errorf("Raw = %q", malformed.Raw)
	}
}

func TestCallJSONFirstTry(t *testing.T) {
	calls := 0
	call := CallFunc(func(_ context.Context, prompt string) (string, error) {
		calls++
		return `{"n": 7}`, nil
	})

	var v struct {
		N int `json:"n"`
	}
	if err := CallJSON(context.Background(), call, "prompt", &v); err != nil {
		t.Fatalf("CallJSON: %v", err)
	}
	if v.N != 7 {
		t.Errorf("n = %d", v.N)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCallJSONRepairsOnce(t *testing.T) {
	var prompts []string
	call := CallFunc(func(_ context.Context, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(prompts) == 1 {
			return "I think the answer is {broken", nil
		}
		return `{"n": 7}`, nil
	})

	var v struct {
		N int `json:"n"`
	}
	if err := CallJSON(context.Background(), call, "original prompt", &v); err != nil {
		t.Fatalf("CallJSON: %v", err)
	}
	if v.N != 7 {
		t.Errorf("n = %d", v.N)
	}
	if len(prompts) != 2 {
		t.Fatalf("calls = %d, want 2", len(prompts))
	}
	// The repair prompt quotes the malformed response verbatim.
	if !strings.Contains(prompts[1], "I think the answer is {broken") {
		t.Errorf("repair prompt missing original response:\n%s", prompts[1])
	}
	if !strings.Contains(prompts[1], "could not be parsed") {
		t.Errorf("repair prompt missing explanation:\n%s", prompts[1])
	}
}

func TestCallJSONDoubleFailure(t *testing.T) {
	calls := 0
	call := CallFunc(func(_ context.Context, prompt string) (string, error) {
		calls++
		return "still not json", nil
	})

	var v map[string]any
	err := CallJSON(context.Background(), call, "prompt", &v)
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("want *MalformedResponseError, got %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want exactly 2 (one repair, no retry loop)", calls)
	}
}

func TestCallJSONCallError(t *testing.T) {
	boom := errors.New("connection refused")
	call := CallFunc(func(_ context.Context, prompt string) (string, error) {
		return "", boom
	})

	var v map[string]any
	err := CallJSON(context.Background(), call, "prompt", &v)
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("want *CallError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Error("CallError should wrap the underlying error")
	}
}

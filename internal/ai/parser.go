package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports model output that could not be decoded
// even after the one-shot repair. Raw carries the offending text for
// logging and for the repair prompt.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// StripFences removes a leading and trailing markdown code-fence line
// (with or without a language tag) so fenced JSON decodes cleanly.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	lines := strings.Split(s, "\n")
	if len(lines) >= 2 && strings.HasPrefix(lines[0], "```") && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[1 : len(lines)-1]
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return s
}

// extractJSON narrows text to the outermost JSON value, tolerating prose
// around it. Objects are preferred; arrays are handled for list replies.
func extractJSON(text string) string {
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start >= 0 && end > start {
			return text[start : end+1]
		}
	}
	return text
}

// Decode parses raw model output into v: fences stripped, JSON extracted,
// then a strict unmarshal. Failure yields a *MalformedResponseError.
func Decode(raw string, v any) error {
	cleaned := extractJSON(StripFences(raw))
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}

// repairPrompt asks for a corrected structured response only, quoting the
// malformed text and the parse error verbatim.
func repairPrompt(original string, parseErr error) string {
	return fmt.Sprintf(`Your previous response could not be parsed.

Response:
%s

Parse error: %v

Resend ONLY the corrected JSON, with no surrounding text and no code fences.`, original, parseErr)
}

// CallJSON runs one model call and decodes the response into v. If the
// first response fails to decode, it issues exactly one repair call that
// quotes the malformed text and the parse error; a second decode failure
// propagates the malformed-response error. Call failures are wrapped in
// *CallError.
func CallJSON(ctx context.Context, call CallFunc, prompt string, v any) error {
	raw, err := call(ctx, prompt)
	if err != nil {
		return &CallError{Err: err}
	}

	firstErr := Decode(raw, v)
	if firstErr == nil {
		return nil
	}

	repaired, err := call(ctx, repairPrompt(raw, firstErr))
	if err != nil {
		return &CallError{Err: err}
	}
	if err := Decode(repaired, v); err != nil {
		return err
	}
	return nil
}

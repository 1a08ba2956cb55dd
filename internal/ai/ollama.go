package ai

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// NewOllamaCall returns a CallFunc backed by an Ollama server. This is
// the default caller-side implementation of the injected call boundary;
// tests and embedders substitute their own CallFunc.
func NewOllamaCall(baseURL, model string, temperature float64) (CallFunc, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		// If env-based client fails, create one with the base URL
		parsedURL, parseErr := url.Parse(baseURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid base URL: %w", parseErr)
		}
		client = api.NewClient(parsedURL, nil)
	}

	return func(ctx context.Context, prompt string) (string, error) {
		req := &api.GenerateRequest{
			Model:  model,
			Prompt: prompt,
			Stream: new(bool), // false
			Options: map[string]interface{}{
				"temperature": temperature,
			},
		}

		var full strings.Builder
		err := client.Generate(ctx, req, func(resp api.GenerateResponse) error {
			full.WriteString(resp.Response)
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("ollama generate: %w", err)
		}
		return full.String(), nil
	}, nil
}

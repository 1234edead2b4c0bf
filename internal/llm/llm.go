// Package llm sends a finished prompt to a hosted text-generation provider.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned by New when no credential was supplied.
var ErrMissingAPIKey = errors.New("missing API key")

// Request is one generation call.
type Request struct {
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
}

// Response is the text returned by the provider.
type Response struct {
	Text string
}

// Generator turns a prompt into text via an LLM provider. Implementations make
// exactly one attempt per call and apply no timeout of their own.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Settings selects and authenticates a provider.
type Settings struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Providers lists the accepted Settings.Provider values.
var Providers = []string{"gemini", "openai", "openai-compatible", "anthropic"}

// New creates a Generator for the configured provider. An empty provider
// selects gemini.
func New(s Settings) (Generator, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	switch s.Provider {
	case "", "gemini":
		return newGeminiGenerator(s), nil
	case "openai", "openai-compatible":
		return newOpenAIGenerator(s), nil
	case "anthropic":
		return newAnthropicGenerator(s), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", s.Provider)
	}
}

// DefaultModel returns the model used when Settings.Model is empty.
func DefaultModel(provider string) string {
	switch provider {
	case "openai", "openai-compatible":
		return defaultOpenAIModel
	case "anthropic":
		return defaultAnthropicModel
	default:
		return defaultGeminiModel
	}
}

// DisplayName returns the human-readable provider name.
func DisplayName(provider string) string {
	switch provider {
	case "openai":
		return "OpenAI"
	case "openai-compatible":
		return "OpenAI-compatible"
	case "anthropic":
		return "Anthropic"
	default:
		return "Gemini"
	}
}

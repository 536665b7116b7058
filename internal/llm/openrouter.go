package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider reuses the Chat Completions client against OpenRouter.
// Model ids are passed through untouched ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	return &OpenRouterProvider{
		OpenAIProvider: newChatCompletionsProvider(cfg.APIKey, baseURL, cfg.Model, client),
	}, nil
}

// attributionTransport sets the app headers OpenRouter uses for its
// leaderboard.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", "SolveWise")
	r.Header.Set("HTTP-Referer", "https://github.com/abhisek/solvewise")
	return t.base.RoundTrip(r)
}

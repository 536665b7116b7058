package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the model backend used by the tutor server.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible gateways
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient provider failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses the offline mock provider so the server starts without
// any API key.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderMock,
		Anthropic:  AnthropicConfig{Model: "claude-haiku-4-5"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-2.0-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv overlays SOLVEWISE_* variables on DefaultConfig. When
// SOLVEWISE_LLM_PROVIDER is unset, the standard vendor key variables are
// probed with DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if discovered, ok := DiscoverConfig(); ok {
		cfg = discovered
	}

	setFromEnv(&cfg.Provider, "SOLVEWISE_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "SOLVEWISE_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "SOLVEWISE_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "SOLVEWISE_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "SOLVEWISE_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "SOLVEWISE_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "SOLVEWISE_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "SOLVEWISE_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "SOLVEWISE_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "SOLVEWISE_OPENROUTER_MODEL")

	if v := os.Getenv("SOLVEWISE_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig looks for vendor API keys (Gemini, OpenAI, Anthropic,
// OpenRouter, in that order) and returns a Config for the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate reports a missing API key for the selected provider.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (set %s)", c.Provider, c.keyEnv())
	}
	return nil
}

func (c Config) keyEnv() string {
	switch c.Provider {
	case ProviderAnthropic:
		return "SOLVEWISE_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "SOLVEWISE_OPENAI_API_KEY"
	case ProviderGemini:
		return "SOLVEWISE_GEMINI_API_KEY"
	case ProviderOpenRouter:
		return "SOLVEWISE_OPENROUTER_API_KEY"
	}
	return ""
}

// ModelName returns the configured model for the selected provider.
func (c Config) ModelName() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	}
	return c.Provider
}

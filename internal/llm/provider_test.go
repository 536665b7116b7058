package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_QueueThenUnavailable(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, "mock", resp.Model)

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
}

func TestMockProvider_Responder(t *testing.T) {
	mock := NewResponderProvider(func(req Request) (json.RawMessage, error) {
		if req.Messages[0].Content == "fail" {
			return nil, errors.New("boom")
		}
		return json.RawMessage(`{"final_answer":"` + req.Messages[0].Content + `"}`), nil
	})
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"final_answer":"queued"}`)})

	ask := func(text string) (*Response, error) {
		return mock.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: text}},
			Schema:   answerSchema,
		})
	}

	resp, err := ask("x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"final_answer":"queued"}`, string(resp.Content))

	resp, err = ask("42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"final_answer":"42"}`, string(resp.Content))

	_, err = ask("fail")
	assert.EqualError(t, err, "boom")
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"answer":1}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: answerSchema})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestContextLabels(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "", SessionIDFrom(ctx))

	ctx = WithSessionID(WithPurpose(ctx, "tutor-reply"), "s-1")
	assert.Equal(t, "tutor-reply", PurposeFrom(ctx))
	assert.Equal(t, "s-1", SessionIDFrom(ctx))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "SOLVEWISE_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, ""},
		{"openai without key", Config{Provider: ProviderOpenAI}, "SOLVEWISE_OPENAI_API_KEY"},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "SOLVEWISE_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "cohere"}, `unknown LLM provider: "cohere"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func clearProviderEnv(t *testing.T) {
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"SOLVEWISE_LLM_PROVIDER", "SOLVEWISE_OPENAI_MODEL", "SOLVEWISE_LLM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults to mock", func(t *testing.T) {
		clearProviderEnv(t)
		cfg := ConfigFromEnv()
		assert.Equal(t, ProviderMock, cfg.Provider)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("discovers vendor key", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := ConfigFromEnv()
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	})

	t.Run("explicit settings win", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("GEMINI_API_KEY", "g")
		t.Setenv("SOLVEWISE_LLM_PROVIDER", "openai")
		t.Setenv("SOLVEWISE_OPENAI_MODEL", "gpt-4.1-mini")
		t.Setenv("SOLVEWISE_LLM_TIMEOUT", "5s")
		cfg := ConfigFromEnv()
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "gpt-4.1-mini", cfg.ModelName())
		assert.Equal(t, "5s", cfg.Timeout.String())
	})
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{Provider: ProviderOpenAI}, nil, nil, nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	p, err := NewProvider(ctx, cfg, nil, nil, func(Request) (json.RawMessage, error) {
		return json.RawMessage(`{"final_answer":"ok"}`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	resp, err := p.Generate(ctx, Request{Schema: answerSchema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"final_answer":"ok"}`, string(resp.Content))
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.00075, c.Cost(1000, 1000), 1e-9)

	assert.NotNil(t, LookupCost("google/gemini-2.0-flash-001"))
	assert.Nil(t, LookupCost("mock"))
}

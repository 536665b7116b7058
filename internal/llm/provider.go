package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one model reply. When Request.Schema is set the
// provider asks for structured output and returns JSON that validated
// against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single prompt. The tutor server sends one user message per
// request; earlier turns are never replayed.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's structured output mode.
	// Without it Response.Content carries the raw reply text.
	Schema *Schema

	// MaxTokens of zero means defaultMaxTokens.
	MaxTokens int

	// Temperature in [0, 1]; zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema for structured output. Name doubles as the
// OpenAI schema name and the validation cache key, so it must be unique
// per definition, e.g. "tutor-reply".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may be a
	// dated id for an alias.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func stepSchema() *Schema {
	return &Schema{
		Name:        "test-steps",
		Description: "A worked answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind":    map[string]any{"type": "string", "enum": []any{"practice", "lesson"}},
				"answer":  map[string]any{"type": "string"},
				"steps":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"minutes": map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []any{"kind", "answer"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"all fields", `{"kind":"practice","answer":"4","steps":["2+2"],"minutes":1}`, false},
		{"required only", `{"kind":"lesson","answer":""}`, false},
		{"missing required", `{"kind":"practice"}`, true},
		{"wrong type", `{"kind":"practice","answer":4}`, true},
		{"bad enum", `{"kind":"quiz","answer":"4"}`, true},
		{"bad array item", `{"kind":"practice","answer":"4","steps":[1]}`, true},
		{"below minimum", `{"kind":"practice","answer":"4","minutes":-1}`, true},
		{"malformed", `{kind: practice}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(stepSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Errorf("content = %q, want %q", inv.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected nil schema to accept anything, got %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"plain text", "plain text"},
		{"```python\nprint(1)\n```", "print(1)"},
	}
	for _, tt := range tests {
		if got := string(stripCodeFence([]byte(tt.in))); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

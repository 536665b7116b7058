package llm

import (
	"bytes"
	"encoding/json"
)

// defaultMaxTokens applies when a Request leaves MaxTokens at zero. Anthropic
// rejects a zero limit and tutor replies rarely need more.
const defaultMaxTokens = 1024

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

// finishResponse normalizes provider output and checks it against the
// request schema.
func finishResponse(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	content := json.RawMessage(stripCodeFence([]byte(text)))

	if stop == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// stripCodeFence removes a surrounding ``` block and its language tag, which
// some models emit even in structured output mode.
func stripCodeFence(b []byte) []byte {
	t := bytes.TrimSpace(b)
	if !bytes.HasPrefix(t, []byte("```")) || !bytes.HasSuffix(t, []byte("```")) || len(t) < 6 {
		return b
	}
	t = t[3 : len(t)-3]
	if nl := bytes.IndexByte(t, '\n'); nl >= 0 {
		if lang := bytes.TrimSpace(t[:nl]); !bytes.ContainsAny(lang, " {[\"") {
			t = t[nl+1:]
		}
	}
	return bytes.TrimSpace(t)
}

// resolveModel expands a short alias to a full model id. Unknown names are
// used as given.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

func classifyHTTPStatus(status int, err error) error {
	switch {
	case status == 429:
		return &ErrRateLimit{Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

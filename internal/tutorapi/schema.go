package tutorapi

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const replySchemaURL = "schema://tutor-reply.json"

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// lessonSchema accepts a lesson reply.
var lessonSchema = map[string]any{
	"type":     "object",
	"required": []any{"type", "topic"},
	"properties": map[string]any{
		"type":     map[string]any{"const": "lesson"},
		"topic":    map[string]any{"type": "string"},
		"concepts": stringArray,
		"examples": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"problem"},
				"properties": map[string]any{
					"problem":      map[string]any{"type": "string"},
					"steps":        stringArray,
					"final_answer": map[string]any{"type": "string"},
				},
			},
		},
	},
}

// practiceSchema accepts an explicit practice reply, or an untyped one that
// carries at least one practice field.
var practiceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type":         map[string]any{"const": "practice"},
		"final_answer": map[string]any{"type": "string"},
		"steps":        stringArray,
		"explanation":  map[string]any{"type": "string"},
	},
	"anyOf": []any{
		map[string]any{"required": []any{"type"}},
		map[string]any{"required": []any{"final_answer"}},
		map[string]any{"required": []any{"steps"}},
		map[string]any{"required": []any{"explanation"}},
	},
}

var replySchema = map[string]any{
	"anyOf": []any{lessonSchema, practiceSchema},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// structuredSchema compiles the reply schema once.
func structuredSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON values.
		b, err := json.Marshal(replySchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal reply schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse reply schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(replySchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(replySchemaURL)
	})
	return compiled, compileErr
}

// validateStructured checks that reply is a lesson or practice object.
// Returns *FormatError on mismatch.
func validateStructured(reply any) error {
	obj, ok := reply.(map[string]any)
	if !ok {
		return &FormatError{Reply: reply, Err: fmt.Errorf("expected a JSON object, got %T", reply)}
	}

	sch, err := structuredSchema()
	if err != nil {
		return &FormatError{Reply: reply, Err: err}
	}
	if err := sch.Validate(obj); err != nil {
		return &FormatError{Reply: reply, Err: err}
	}
	return nil
}

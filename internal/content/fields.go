package content

// Field readers are lenient: a field of the wrong type reads as absent.

func typeField(obj map[string]any) string {
	return stringField(obj, "type")
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func hasString(obj map[string]any, key string) bool {
	_, ok := obj[key].(string)
	return ok
}

func hasArray(obj map[string]any, key string) bool {
	_, ok := obj[key].([]any)
	return ok
}

// stringsField reads an array of strings, dropping non-string elements.
// The result is never nil.
func stringsField(obj map[string]any, key string) []string {
	arr, _ := obj[key].([]any)
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// examplesField reads lesson examples, dropping elements that are not
// objects. The result is never nil.
func examplesField(obj map[string]any, key string) []Example {
	arr, _ := obj[key].([]any)
	out := make([]Example, 0, len(arr))
	for _, v := range arr {
		ex, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Example{
			Problem:     stringField(ex, "problem"),
			Steps:       stringsField(ex, "steps"),
			FinalAnswer: stringField(ex, "final_answer"),
		})
	}
	return out
}

package llm

// BuildEstateJSONSchema requires every key. Values may be strings, numbers or
// null; the extractor decides what an empty value means.
func BuildEstateJSONSchema(keys []string) map[string]any {
	props := make(map[string]any, len(keys))
	for _, k := range keys {
		props[k] = map[string]any{"type": []string{"string", "number", "integer", "null"}}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   keys,
	}
}

package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseStructuredJSON decodes a model reply into an object, recovering from
// markdown code fences and prose around the JSON.
func ParseStructuredJSON(content string) (map[string]any, []byte, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, fmt.Errorf("empty structured output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		var m map[string]any
		if err := json.Unmarshal([]byte(candidate), &m); err == nil && m != nil {
			normalized, err := json.Marshal(m)
			if err != nil {
				return nil, nil, fmt.Errorf("normalize structured output: %w", err)
			}
			return m, normalized, nil
		}
	}
	return nil, nil, fmt.Errorf("reply is not a JSON object")
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

// Stringify flattens decoded JSON values to strings: numbers without trailing
// zeros, null as "", nested values re-encoded.
func Stringify(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = strings.TrimSpace(t)
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			b, _ := json.Marshal(t)
			out[k] = string(b)
		}
	}
	return out
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON parses a model response expected to contain one JSON
// object into v. Models sometimes wrap their output in prose or code
// fences; when a direct parse fails, the first '{' / last '}' pair is
// located and re-parsed. If that also fails, the error names the
// unparseable prefix so the caller can see what the model produced.
func ExtractJSON(response string, v interface{}) error {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return fmt.Errorf("empty response, expected JSON")
	}

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	startIdx := strings.Index(trimmed, "{")
	endIdx := strings.LastIndex(trimmed, "}")
	if startIdx >= 0 && endIdx > startIdx {
		if err := json.Unmarshal([]byte(trimmed[startIdx:endIdx+1]), v); err == nil {
			return nil
		}
	}

	prefix := trimmed
	if len(prefix) > 120 {
		prefix = prefix[:120]
	}
	return fmt.Errorf("response is not valid JSON: %q", prefix)
}

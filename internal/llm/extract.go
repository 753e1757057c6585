package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first top-level JSON object out of model reply
// text. Models sometimes wrap the object in prose or code fences, so the
// slice between the first '{' and the last '}' is parsed rather than the
// whole string. Idempotent on already-clean JSON.
func ExtractJSON(text string) (json.RawMessage, error) {
	clean := strings.TrimSpace(text)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start != -1 && end != -1 && end > start {
		clean = clean[start : end+1]
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, newError(KindMalformed, "AIの応答形式が正しくありません", err)
	}
	return raw, nil
}

package services

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonPayloadPattern greedily grabs the first bracketed array or braced
// object, newlines included.
var jsonPayloadPattern = regexp.MustCompile(`(?s)(\[.*\]|\{.*\})`)

// ExtractJSON recovers a structured payload from free-text model output.
// Layered attempts: direct parse, first bracketed/braced substring, then a
// single-to-double quote repair of that substring. Returns nil when nothing
// parses; callers must synthesize their own fallback record.
func ExtractJSON(raw string) interface{} {
	var parsed interface{}
	for _, candidate := range jsonCandidates(raw) {
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return parsed
		}
	}
	return nil
}

// DecodeJSON is the typed variant of ExtractJSON. It reports whether any
// candidate payload unmarshalled into target.
func DecodeJSON(raw string, target interface{}) bool {
	for _, candidate := range jsonCandidates(raw) {
		if err := json.Unmarshal([]byte(candidate), target); err == nil {
			return true
		}
	}
	return false
}

func jsonCandidates(raw string) []string {
	cleaned := stripCodeFences(raw)

	candidates := []string{cleaned}
	if match := jsonPayloadPattern.FindString(cleaned); match != "" {
		candidates = append(candidates, match)
		// Models sometimes emit single-quoted pseudo-JSON.
		candidates = append(candidates, strings.ReplaceAll(match, "'", `"`))
	}
	return candidates
}

// stripCodeFences removes markdown code block markers the model may wrap
// its payload in.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sevigo/pr-warden/internal/core"
)

// DecodeStrict extracts the JSON object from a model answer and decodes it
// into out. Every name in required must be present and non-null at the top
// level, and every present field must have the declared type.
func DecodeStrict(raw string, out any, required ...string) error {
	clean, err := ExtractJSON(raw)
	if err != nil {
		return &core.ParseError{Reason: err.Error()}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return &core.ParseError{Reason: "response is not a JSON object"}
	}
	if name := missingField(fields, required); name != "" {
		return &core.ParseError{Field: name, Reason: "is missing"}
	}

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &core.ParseError{Field: typeErr.Field, Reason: fmt.Sprintf("has type %s, expected %s", typeErr.Value, typeErr.Type)}
		}
		return &core.ParseError{Reason: err.Error()}
	}
	return nil
}

// RequireItemFields checks required names on every object of the array
// named field. Errors point at the element, as in "issues[2].description".
// An absent or null array has nothing to check.
func RequireItemFields(raw, field string, required ...string) error {
	clean, err := ExtractJSON(raw)
	if err != nil {
		return &core.ParseError{Reason: err.Error()}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return &core.ParseError{Reason: "response is not a JSON object"}
	}
	v, ok := fields[field]
	if !ok || isNull(v) {
		return nil
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return &core.ParseError{Field: field, Reason: "is not an array of objects"}
	}
	for i, item := range items {
		if name := missingField(item, required); name != "" {
			return &core.ParseError{Field: fmt.Sprintf("%s[%d].%s", field, i, name), Reason: "is missing"}
		}
	}
	return nil
}

func missingField(fields map[string]json.RawMessage, required []string) string {
	for _, name := range required {
		v, ok := fields[name]
		if !ok || isNull(v) {
			return name
		}
	}
	return ""
}

func isNull(v json.RawMessage) bool {
	return strings.TrimSpace(string(v)) == "null"
}

// ExtractJSON returns the first JSON object in raw. Models in JSON mode
// answer with a bare object, others wrap it in fences or add a preamble.
func ExtractJSON(raw string) (string, error) {
	raw = stripMarkdownFence(raw)
	raw = strings.TrimSpace(raw)

	if json.Valid([]byte(raw)) {
		return raw, nil
	}

	startBrace := strings.Index(raw, "{")
	if startBrace == -1 {
		return "", errors.New("response did not contain a JSON object")
	}
	raw = sanitizeJSON(raw[startBrace:])

	decoder := json.NewDecoder(strings.NewReader(raw))
	var msg map[string]any
	if err := decoder.Decode(&msg); err != nil {
		return "", fmt.Errorf("failed to decode JSON from response: %w", err)
	}
	clean, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to re-encode JSON: %w", err)
	}
	return string(clean), nil
}

// stripMarkdownFence removes a ```json (or bare ```) fence around the answer.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}

// sanitizeJSON escapes stray backslashes, a common mistake when models quote
// Windows paths or regular expressions.
func sanitizeJSON(input string) string {
	if json.Valid([]byte(input)) {
		return input
	}

	var sb strings.Builder
	sb.Grow(len(input) + 20)

	runes := []rune(input)
	length := len(runes)

	for i := 0; i < length; i++ {
		char := runes[i]
		if char != '\\' {
			sb.WriteRune(char)
			continue
		}
		if i+1 >= length {
			sb.WriteString(`\\`)
			break
		}
		switch next := runes[i+1]; next {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
			sb.WriteRune(char)
			sb.WriteRune(next)
			i++
		default:
			sb.WriteString(`\\`)
		}
	}
	return sb.String()
}

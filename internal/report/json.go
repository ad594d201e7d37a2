package report

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencePattern matches a ```json ... ``` (or bare ```) block.
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON pulls the first JSON object out of a model reply. Replies
// may be fenced in markdown or carry prose around the object.
func extractJSON(reply string) (string, bool) {
	s := strings.TrimSpace(reply)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	if obj, ok := balancedObject(s); ok && json.Valid([]byte(obj)) {
		return obj, true
	}
	if json.Valid([]byte(s)) {
		return s, true
	}
	return "", false
}

// balancedObject returns the first brace-balanced {...} span of s,
// ignoring braces inside JSON strings.
func balancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

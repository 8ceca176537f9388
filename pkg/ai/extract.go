package ai

import "strings"

// extractJSON locates the first balanced JSON object embedded in untrusted
// oracle prose (markdown fences, leading commentary). It returns ok=false when
// no complete object is present; it never guesses.
func extractJSON(response string) (string, bool) {
	start := strings.Index(response, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1], true
			}
		}
	}

	return "", false
}

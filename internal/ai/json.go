package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Pre-compiled patterns; compiling per parse is measurably slower when a
// batch makes dozens of calls.
var (
	codeFenceRegex     = regexp.MustCompile("(?s)```(?:json)?\\s*\n?([\\s\\S]*?)\n?```")
	trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)
	objectRegex        = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
)

// parseReply parses model output into T with fallback strategies for the
// usual LLM formatting quirks: code fences, surrounding prose, trailing
// commas. Returns false when nothing parseable is found.
func parseReply[T any](text string) (T, bool) {
	var out T
	text = strings.TrimSpace(text)
	if text == "" {
		return out, false
	}

	// Direct parse.
	if json.Unmarshal([]byte(text), &out) == nil {
		return out, true
	}

	// Strip code fences.
	if m := codeFenceRegex.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Unmarshal([]byte(candidate), &out) == nil {
			return out, true
		}
		text = candidate
	}

	// Extract the outermost object from mixed content.
	if m := objectRegex.FindString(text); m != "" {
		if json.Unmarshal([]byte(m), &out) == nil {
			return out, true
		}
		// Last resort: fix trailing commas.
		cleaned := trailingCommaRegex.ReplaceAllString(m, "$1")
		if json.Unmarshal([]byte(cleaned), &out) == nil {
			return out, true
		}
	}

	return out, false
}

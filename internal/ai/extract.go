package ai

import "strings"

// ExtractJSON trims conversational wrapper text around a JSON object by
// slicing from the first '{' to the last '}'. It is a pragmatic
// heuristic, not a JSON-aware scan: stray braces in surrounding prose
// can mis-extract. When no brace pair is found the input is returned
// unchanged so the subsequent parse fails loudly.
func ExtractJSON(text string) string {
	open := strings.Index(text, "{")
	if open >= 0 {
		if end := strings.LastIndex(text, "}"); end > open {
			return text[open : end+1]
		}
	}
	return text
}

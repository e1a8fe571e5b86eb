// Package textutil provides the tokenizer and stop-word filter shared by
// the boundary signals and the title/tag generators.
package textutil

import (
	"strings"
	"unicode"
)

const minTokenLen = 3

// Tokenize lowercases text, splits on whitespace and punctuation, and
// drops tokens shorter than three characters. Pure and total.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// RemoveStopWords filters out closed-class words from tokens.
func RemoveStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stopWords[t] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// IsStopWord reports whether token is in the stop list.
func IsStopWord(token string) bool {
	return stopWords[token]
}

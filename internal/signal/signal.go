// Package signal implements the independent boundary-evidence heuristics.
// Each scorer is a pure function of message content and metadata that
// returns a score in [0,1]: 0 meaning no evidence of a topic boundary,
// 1 meaning strong evidence.
package signal

// Signal names, used as keys in weight maps and in boundary diagnostics.
const (
	TransitionPhrases = "transition-phrases"
	DomainShift       = "domain-shift"
	VocabularyShift   = "vocabulary-shift"
	TemporalGap       = "temporal-gap"
	SelfContained     = "self-contained"
	Reintroduction    = "reintroduction"
)

// Result is one signal's contribution to a boundary evaluation.
type Result struct {
	Signal string
	Score  float64
	Weight float64
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

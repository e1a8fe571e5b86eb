package signal

import (
	"math"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/textutil"
)

// Windows with fewer distinct content tokens than this carry too little
// vocabulary to compare meaningfully.
const minDomainTokens = 5

// ScoreDomainShift compares the stop-word-filtered vocabulary sets of the
// windowSize messages before and after the boundary and returns
// 1 − Jaccard similarity. Returns 0 when either window is too sparse.
func ScoreDomainShift(messages []conversation.Message, boundary, windowSize int) float64 {
	before := domainTokens(messages, boundary-windowSize, boundary)
	after := domainTokens(messages, boundary, boundary+windowSize)

	if len(before) < minDomainTokens || len(after) < minDomainTokens {
		return 0.0
	}

	intersection := 0
	for t := range before {
		if after[t] {
			intersection++
		}
	}
	union := len(before) + len(after) - intersection

	return 1.0 - float64(intersection)/float64(union)
}

func domainTokens(messages []conversation.Message, start, end int) map[string]bool {
	tokens := make(map[string]bool)
	for i := clamp(start, len(messages)); i < clamp(end, len(messages)); i++ {
		for _, w := range textutil.RemoveStopWords(textutil.Tokenize(messages[i].Text)) {
			tokens[w] = true
		}
	}
	return tokens
}

// ScoreVocabularyShift compares term-frequency vectors of the windows on
// either side of the boundary and returns 1 − cosine similarity. Returns
// 0 when either window has no terms at all.
func ScoreVocabularyShift(messages []conversation.Message, boundary, windowSize int) float64 {
	before := termFrequencies(messages, boundary-windowSize, boundary)
	after := termFrequencies(messages, boundary, boundary+windowSize)

	if len(before) == 0 || len(after) == 0 {
		return 0.0
	}

	return 1.0 - cosineSimilarity(before, after)
}

func termFrequencies(messages []conversation.Message, start, end int) map[string]int {
	tf := make(map[string]int)
	for i := clamp(start, len(messages)); i < clamp(end, len(messages)); i++ {
		for _, w := range textutil.RemoveStopWords(textutil.Tokenize(messages[i].Text)) {
			tf[w]++
		}
	}
	return tf
}

func cosineSimilarity(a, b map[string]int) float64 {
	var dot, normA, normB float64

	for term, count := range a {
		normA += float64(count * count)
		if bCount, ok := b[term]; ok {
			dot += float64(count * bCount)
		}
	}
	for _, count := range b {
		normB += float64(count * count)
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Package title generates a short display title for a segment. Four
// strategies are tried in priority order behind a firstOf combinator:
// comparison detection, entities plus topic kernel, the cleaned first
// user sentence, and a keyword-frequency fallback.
package title

import (
	"regexp"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/textutil"
)

const (
	maxTitleLen = 72
	maxSideLen  = 45
)

type strategy func(messages []conversation.Message) (string, bool)

// firstOf returns the result of the first strategy that produces one.
func firstOf(strategies ...strategy) strategy {
	return func(messages []conversation.Message) (string, bool) {
		for _, s := range strategies {
			if title, ok := s(messages); ok {
				return title, true
			}
		}
		return "", false
	}
}

// Generate derives a title from a segment's messages. Output is capped
// at 72 characters, truncated at a safe word boundary, never mid-word.
func Generate(messages []conversation.Message) string {
	chain := firstOf(comparisonTitle, entityTopicTitle, firstSentenceTitle, keywordTitle)
	title, ok := chain(messages)
	if !ok {
		return "Untitled Topic"
	}
	return truncateAtWord(title, maxTitleLen)
}

var comparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdifference between\s+(.+?)\s+and\s+(.+)$`),
	regexp.MustCompile(`(?i)^compare\s+(.+?)\s+(?:and|with|to)\s+(.+)$`),
	regexp.MustCompile(`(?i)^(.+?)\s+(?:vs\.?|versus)\s+(.+)$`),
}

// Trailing prepositional tails add noise to a comparison side:
// "python vs javascript for web scraping" compares python and javascript.
var prepositionalTail = regexp.MustCompile(`(?i)\s+(?:for|in|on|when|while|during)\s+.*$`)

func comparisonTitle(messages []conversation.Message) (string, bool) {
	first := conversation.FirstByRole(messages, conversation.RoleUser)
	if first == nil {
		return "", false
	}

	sentence := stripFiller(FirstSentence(strings.TrimSpace(first.Text)))
	for _, p := range comparisonPatterns {
		m := p.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}
		sideA := cleanComparisonSide(m[1])
		sideB := cleanComparisonSide(m[2])
		if sideA == "" || sideB == "" {
			return "", false
		}
		return TitleCase(sideA) + " vs " + TitleCase(sideB), true
	}
	return "", false
}

func cleanComparisonSide(side string) string {
	side = strings.TrimSpace(side)
	side = prepositionalTail.ReplaceAllString(side, "")
	side = strings.TrimRight(side, ".,!?;: ")
	side = strings.TrimSpace(strings.TrimPrefix(side, "the "))
	if len(side) > maxSideLen {
		side = truncateAtWord(side, maxSideLen)
	}
	return side
}

func entityTopicTitle(messages []conversation.Message) (string, bool) {
	entities := extractEntities(messages)
	if len(entities) == 0 {
		return "", false
	}

	joined := strings.Join(entities, " ")

	first := conversation.FirstByRole(messages, conversation.RoleUser)
	if first != nil {
		kernel := topicKernel(first.Text, entities)
		if kernel != "" {
			return joined + " " + kernel, true
		}
	}
	return joined, true
}

// topicKernel extracts a few content words from the first user sentence,
// skipping words already covered by the extracted entities.
func topicKernel(text string, entities []string) string {
	sentence := StripFillerAndActions(FirstSentence(strings.TrimSpace(text)))

	covered := make(map[string]bool)
	for _, e := range entities {
		for _, w := range strings.Fields(strings.ToLower(e)) {
			covered[w] = true
		}
	}

	var kept []string
	for _, w := range strings.Fields(sentence) {
		clean := strings.ToLower(strings.Trim(w, ".,!?;:\"'()"))
		if clean == "" || covered[clean] || textutil.IsStopWord(clean) || len(clean) < 3 {
			continue
		}
		kept = append(kept, TitleCase(clean))
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, " ")
}

func firstSentenceTitle(messages []conversation.Message) (string, bool) {
	first := conversation.FirstByRole(messages, conversation.RoleUser)
	if first == nil {
		return "", false
	}

	sentence := StripFillerAndActions(FirstSentence(strings.TrimSpace(first.Text)))
	if sentence == "" {
		return "", false
	}
	return TitleCase(sentence), true
}

func keywordTitle(messages []conversation.Message) (string, bool) {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(m.Text)
		sb.WriteByte(' ')
	}
	tokens := textutil.RemoveStopWords(textutil.Tokenize(sb.String()))
	if len(tokens) == 0 {
		return "", false
	}

	freq := make(map[string]int)
	var order []string
	for _, t := range tokens {
		if freq[t] == 0 {
			order = append(order, t)
		}
		freq[t]++
	}

	// Stable selection: frequency descending, first appearance breaking ties.
	top := make([]string, 0, 3)
	for len(top) < 3 {
		best := ""
		for _, t := range order {
			if freq[t] == 0 {
				continue
			}
			if best == "" || freq[t] > freq[best] {
				best = t
			}
		}
		if best == "" {
			break
		}
		top = append(top, best)
		freq[best] = 0
	}

	return TitleCase(strings.Join(top, " ")), true
}

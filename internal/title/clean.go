package title

import (
	"regexp"
	"strings"
)

var fillerPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(can you|could you|please|would you|i want you to|help me|i need you to)[,;:.!?]?\s+`),
	regexp.MustCompile(`(?i)^(ok so|ok perfect|ok great|ok|perfect|great|awesome|thanks|thank you|alright so|alright|yeah so|yeah|sure|got it|so)[,;:.!?]?\s+`),
}

var actionVerbPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(write|create|build|make|generate|draft|design|implement|set up)( me)?( a| an| some| the| my)?\s+`),
	regexp.MustCompile(`(?i)^(explain|describe|summarize|analyze|review|list|outline)( the| this| my)?\s+`),
	regexp.MustCompile(`(?i)^(tell me about|show me|give me|walk me through|i'?m (trying|looking) to)\s+`),
}

var contextualRefs = regexp.MustCompile(`(?i)\b(number\s+(one|two|three|four|five|six|seven|eight|nine|ten|\d+)|option\s+[a-d]|#\d+)\b\s*`)

var leadingPunct = regexp.MustCompile(`^[,;:.!?\-]+\s*`)

// FirstSentence extracts the first sentence of text, falling back to the
// first 120 characters of the first line. Very short sentences get the
// wider slice, since they rarely stand alone as a topic.
func FirstSentence(text string) string {
	firstLine, _, _ := strings.Cut(text, "\n")

	if m := regexp.MustCompile(`^[^.!?]*[.!?]`).FindString(firstLine); m != "" {
		extracted := strings.TrimSpace(strings.TrimRight(m, ".!?"))
		if len(extracted) >= 15 {
			return extracted
		}
	}
	return strings.TrimSpace(truncateRunes(firstLine, 120))
}

// StripFillerAndActions iteratively removes conversational filler and
// action-verb openers until the sentence is stable, then drops contextual
// references ("option A", "#3") that are meaningless in isolation.
func StripFillerAndActions(sentence string) string {
	sentence = stripIteratively(sentence, fillerPrefixes)
	sentence = stripIteratively(sentence, actionVerbPrefixes)
	return strings.TrimSpace(contextualRefs.ReplaceAllString(sentence, ""))
}

func stripFiller(sentence string) string {
	return strings.TrimSpace(contextualRefs.ReplaceAllString(stripIteratively(sentence, fillerPrefixes), ""))
}

func stripIteratively(sentence string, prefixes []*regexp.Regexp) string {
	for changed := true; changed; {
		changed = false
		for _, p := range prefixes {
			stripped := p.ReplaceAllString(sentence, "")
			if stripped != sentence {
				sentence = strings.TrimSpace(stripped)
				sentence = leadingPunct.ReplaceAllString(sentence, "")
				changed = true
			}
		}
	}
	return sentence
}

var markdownInline = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`~~([^~]+)~~`), "$1"},
}

// StripMarkdown removes inline markdown formatting, keeping the text.
func StripMarkdown(text string) string {
	for _, m := range markdownInline {
		text = m.pattern.ReplaceAllString(text, m.repl)
	}
	return text
}

var minorWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "but": true,
	"or": true, "for": true, "nor": true, "on": true, "at": true,
	"to": true, "by": true, "of": true, "in": true, "is": true,
	"it": true, "vs": true, "with": true, "as": true, "if": true,
}

// TitleCase capitalizes words, preserving ALL-CAPS acronyms and
// lowercasing minor words unless they open the title.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) >= 2 && w == strings.ToUpper(w) && isAlpha(w) {
			continue
		}
		lower := strings.ToLower(w)
		if i == 0 || !minorWords[lower] {
			words[i] = capitalize(lower)
		} else {
			words[i] = lower
		}
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

var (
	phraseBoundary   = regexp.MustCompile(`^(.+)[,;:](?:\s|$)`)
	conjunctionBreak = regexp.MustCompile(`(?i)^(.+)\s+(?:and|or|but)\s+`)
)

// truncateAtWord shortens text to maxLen, preferring phrase boundaries,
// then conjunctions, then the last word boundary. Never cuts mid-word.
func truncateAtWord(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	truncated := truncateRunes(text, maxLen)

	if m := phraseBoundary.FindStringSubmatch(truncated); m != nil && len(m[1]) > maxLen*2/5 {
		return strings.TrimSpace(m[1])
	}
	if m := conjunctionBreak.FindStringSubmatch(truncated); m != nil && len(m[1]) > maxLen*2/5 {
		return strings.TrimSpace(m[1])
	}
	if lastSpace := strings.LastIndexByte(truncated, ' '); lastSpace > maxLen/2 {
		return truncated[:lastSpace]
	}
	return truncated
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

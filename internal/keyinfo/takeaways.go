package keyinfo

import (
	"regexp"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/title"
)

// Questions extracts the opening question of each user turn, cleaned of
// filler and deduplicated by normalized containment.
func Questions(messages []conversation.Message) []string {
	var questions []string

	for _, msg := range messages {
		if msg.Role != conversation.RoleUser {
			continue
		}
		text := title.StripMarkdown(strings.TrimSpace(msg.Text))
		if text == "" {
			continue
		}

		sentence := title.StripFillerAndActions(title.FirstSentence(text))
		if len(sentence) < 5 {
			continue
		}

		truncated := truncateItem(sentence)
		if !isDuplicate(truncated, questions) {
			questions = append(questions, truncated)
		}
		if len(questions) >= maxQuestions {
			break
		}
	}
	return questions
}

var takeawayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brecommend\b`),
	regexp.MustCompile(`(?i)\bsuggest\b`),
	regexp.MustCompile(`(?i)\bshould\s+consider\b`),
	regexp.MustCompile(`(?i)\bkey\s+takeaway\b`),
	regexp.MustCompile(`(?i)\bin\s+summary\b`),
	regexp.MustCompile(`(?i)\bin\s+conclusion\b`),
	regexp.MustCompile(`(?i)\bmost\s+important\b`),
	regexp.MustCompile(`(?i)\bthe\s+best\s+option\b`),
	regexp.MustCompile(`(?i)\bto\s+summarize\b`),
	regexp.MustCompile(`(?i)\bbottom\s+line\b`),
	regexp.MustCompile(`(?i)\boverall\b`),
	regexp.MustCompile(`(?i)\bultimately\b`),
	regexp.MustCompile(`(?i)\bmy\s+advice\b`),
	regexp.MustCompile(`(?i)\bthe\s+main\b`),
	regexp.MustCompile(`(?i)\bi'?d\s+go\s+with\b`),
	regexp.MustCompile(`(?i)\byou'?ll\s+want\s+to\b`),
	regexp.MustCompile(`(?i)\bthe\s+key\s+(?:thing|point|factor)\b`),
}

var (
	codeBlock    = regexp.MustCompile("```[\\s\\S]*?```")
	boldSpan     = regexp.MustCompile(`\*\*([^*]{15,})\*\*`)
	listMarker   = regexp.MustCompile(`^([-*+]|\d+\.)\s+`)
	sentenceStop = regexp.MustCompile(`[.!?](\s+|$)`)
)

// Takeaways pulls recommendation and conclusion sentences out of
// assistant text, then bolded actionable phrases, then the final
// paragraph of the last response as a last resort.
func Takeaways(messages []conversation.Message) []string {
	var assistant []conversation.Message
	for _, m := range messages {
		if m.Role == conversation.RoleAssistant {
			assistant = append(assistant, m)
		}
	}
	if len(assistant) == 0 {
		return nil
	}

	var takeaways []string

	for _, msg := range assistant {
		for _, sentence := range splitSentences(msg.Text) {
			if len(sentence) < 15 || !matchesTakeaway(sentence) {
				continue
			}
			cleaned := strings.TrimSpace(title.StripMarkdown(sentence))
			cleaned = listMarker.ReplaceAllString(cleaned, "")
			if len(cleaned) < 15 {
				continue
			}
			truncated := truncateItem(cleaned)
			if !isDuplicate(truncated, takeaways) {
				takeaways = append(takeaways, truncated)
			}
			if len(takeaways) >= maxTakeaways {
				return takeaways
			}
		}
	}

	for _, msg := range assistant {
		for _, m := range boldSpan.FindAllStringSubmatch(msg.Text, -1) {
			text := strings.TrimSpace(m[1])
			if len(text) < 15 || !matchesTakeaway(text) {
				continue
			}
			truncated := truncateItem(text)
			if !isDuplicate(truncated, takeaways) {
				takeaways = append(takeaways, truncated)
			}
			if len(takeaways) >= maxTakeaways {
				return takeaways
			}
		}
	}

	if len(takeaways) == 0 {
		if t := finalParagraphTakeaway(assistant[len(assistant)-1].Text); t != "" {
			takeaways = append(takeaways, t)
		}
	}
	return takeaways
}

func matchesTakeaway(sentence string) bool {
	for _, p := range takeawayPatterns {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

func finalParagraphTakeaway(text string) string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) < 2 {
		return ""
	}
	last := paragraphs[len(paragraphs)-1]
	if len(last) < 20 || strings.HasPrefix(last, "```") || listMarker.MatchString(last) {
		return ""
	}

	sentence := last
	if loc := sentenceStop.FindStringIndex(last); loc != nil {
		sentence = last[:loc[0]+1]
	} else {
		sentence = truncateRunes(last, 200)
	}

	cleaned := strings.TrimSpace(title.StripMarkdown(sentence))
	if len(cleaned) < 15 {
		return ""
	}
	return truncateItem(cleaned)
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range regexp.MustCompile(`\n\n+`).Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences splits text into sentences, ignoring fenced code blocks.
func splitSentences(text string) []string {
	stripped := codeBlock.ReplaceAllString(text, "")

	var sentences []string
	start := 0
	for _, loc := range sentenceStop.FindAllStringIndex(stripped, -1) {
		s := strings.TrimSpace(stripped[start : loc[0]+1])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(stripped[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

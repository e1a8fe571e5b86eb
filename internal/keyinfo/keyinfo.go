// Package keyinfo extracts the structured summary block for a segment:
// a short summary line, key points, questions asked, key takeaways and
// deduplicated outbound links.
package keyinfo

import (
	"regexp"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/title"
)

const (
	maxKeyPoints  = 6
	maxQuestions  = 8
	maxTakeaways  = 6
	maxItemLen    = 200
	maxSummaryLen = 100
)

// Block holds everything the note renderer needs for a segment's
// key-information callouts.
type Block struct {
	Summary   string
	KeyPoints []string
	Questions []string
	Takeaways []string
	Links     []string
	Tags      []string
}

// Extract builds the full key-information block for a segment.
func Extract(messages []conversation.Message, tags []string) Block {
	return Block{
		Summary:   Summary(messages),
		KeyPoints: KeyPoints(messages),
		Questions: Questions(messages),
		Takeaways: Takeaways(messages),
		Links:     Links(messages),
		Tags:      tags,
	}
}

var urlInText = regexp.MustCompile(`https?://[^\s)<>"\]]+`)

var markdownOnlyLine = regexp.MustCompile("^[#>\\-*+=~`\\s\\d.)\\]\\[|]+$")

// Summary builds a 1-2 sentence summary from the first user question and
// the first assistant sentence, skipping URLs and markdown-only lines.
func Summary(messages []conversation.Message) string {
	var parts []string

	if user := conversation.FirstByRole(messages, conversation.RoleUser); user != nil {
		if line := firstContentLine(user.Text); line != "" {
			parts = append(parts, truncateRunes(line, maxSummaryLen))
		}
	}

	if asst := conversation.FirstByRole(messages, conversation.RoleAssistant); asst != nil {
		text := urlInText.ReplaceAllString(firstContentLine(asst.Text), "")
		sentence, _, _ := strings.Cut(text, ".")
		sentence, _, _ = strings.Cut(sentence, "!")
		sentence, _, _ = strings.Cut(sentence, "?")
		sentence = strings.TrimSpace(truncateRunes(sentence, maxSummaryLen))
		if sentence != "" {
			parts = append(parts, sentence+".")
		}
	}

	if len(parts) == 0 {
		return "No summary available."
	}
	return strings.Join(parts, " -- ")
}

// firstContentLine returns the first line that carries prose rather than
// bare markdown structure or a lone URL.
func firstContentLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || markdownOnlyLine.MatchString(line) {
			continue
		}
		if urlInText.ReplaceAllString(line, "") == "" {
			continue
		}
		return strings.TrimSpace(title.StripMarkdown(line))
	}
	return ""
}

var (
	listItem       = regexp.MustCompile(`^\s{0,4}([-*+]|\d+\.)\s+(.+)`)
	pureFormatting = regexp.MustCompile("^[-_=*~`#]+$")
	headingLine    = regexp.MustCompile(`^#{2,4}\s+(.+)`)
)

// KeyPoints extracts up to six points from markdown list items in
// assistant text, falling back to headings when no list items qualify.
func KeyPoints(messages []conversation.Message) []string {
	source := assistantOrAll(messages)
	var points []string

	for _, msg := range source {
		for _, line := range strings.Split(msg.Text, "\n") {
			m := listItem.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			item := strings.TrimSpace(m[2])
			if len(item) < 10 || pureFormatting.MatchString(item) {
				continue
			}
			cleaned := title.StripMarkdown(item)
			if len(cleaned) >= 10 && !contains(points, cleaned) {
				points = append(points, cleaned)
			}
			if len(points) >= maxKeyPoints {
				return points
			}
		}
	}

	if len(points) > 0 {
		return points
	}

	for _, msg := range source {
		for _, line := range strings.Split(msg.Text, "\n") {
			m := headingLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			heading := title.StripMarkdown(strings.TrimSpace(m[1]))
			if len(heading) >= 5 && !contains(points, heading) {
				points = append(points, heading)
			}
			if len(points) >= maxKeyPoints {
				return points
			}
		}
	}
	return points
}

func assistantOrAll(messages []conversation.Message) []conversation.Message {
	var assistant []conversation.Message
	for _, m := range messages {
		if m.Role == conversation.RoleAssistant {
			assistant = append(assistant, m)
		}
	}
	if len(assistant) > 0 {
		return assistant
	}
	return messages
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
var multiSpace = regexp.MustCompile(`\s+`)

func normalize(text string) string {
	text = nonAlnum.ReplaceAllString(strings.ToLower(text), "")
	return strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
}

// isDuplicate checks normalized containment in either direction, so a
// shorter rephrasing of an already-kept item is dropped.
func isDuplicate(item string, existing []string) bool {
	norm := normalize(item)
	for _, e := range existing {
		ne := normalize(e)
		if ne == norm || strings.Contains(ne, norm) || strings.Contains(norm, ne) {
			return true
		}
	}
	return false
}

var sentenceEnd = regexp.MustCompile(`^[^.!?]*[.!?]`)

func truncateItem(text string) string {
	if len(text) <= maxItemLen {
		return text
	}
	if m := sentenceEnd.FindString(truncateRunes(text, maxItemLen)); m != "" {
		return strings.TrimSpace(m)
	}
	if idx := strings.LastIndexByte(truncateRunes(text, maxItemLen), ' '); idx > maxItemLen/2 {
		return text[:idx] + "..."
	}
	return truncateRunes(text, maxItemLen) + "..."
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

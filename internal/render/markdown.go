package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/keyinfo"
	"github.com/johns/chatsplit/internal/segment"
)

// NoteData holds everything needed to render one segment note.
type NoteData struct {
	Date              string // YYYY-MM-DD
	ConversationID    string
	ConversationTitle string
	Source            string
	SegmentNum        int // 1-based position in the segment list
	SegmentTotal      int
	Seg               segment.Segment
	Info              keyinfo.Block
	ShowTimestamps    bool
}

// SegmentNote renders a full Obsidian markdown note for one segment:
// YAML frontmatter, the key-information callout block, and the
// transcript with speaker callouts.
func SegmentNote(d NoteData) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString(fmt.Sprintf("date: %s\n", d.Date))
	b.WriteString("type: ai-chat\n")
	if d.Source != "" {
		b.WriteString(fmt.Sprintf("source: %s\n", d.Source))
	}
	b.WriteString(fmt.Sprintf("conversation_id: \"%s\"\n", d.ConversationID))
	b.WriteString(fmt.Sprintf("conversation_title: \"%s\"\n", escapeYAML(d.ConversationTitle)))
	b.WriteString(fmt.Sprintf("segment: %d\n", d.SegmentNum))
	b.WriteString(fmt.Sprintf("segment_total: %d\n", d.SegmentTotal))
	b.WriteString(fmt.Sprintf("topic: \"%s\"\n", escapeYAML(d.Seg.Title)))
	b.WriteString(fmt.Sprintf("messages: %d\n", len(d.Seg.Messages)))
	b.WriteString(fmt.Sprintf("confidence: %.2f\n", d.Seg.Confidence))
	b.WriteString(fmt.Sprintf("method: %s\n", d.Seg.Method))
	b.WriteString(fmt.Sprintf("tags: [%s]\n", strings.Join(d.Seg.Tags, ", ")))
	b.WriteString("---\n\n")

	b.WriteString("# " + d.Seg.Title + "\n\n")
	b.WriteString(KeyInfoBlock(d.Info))
	b.WriteString("\n\n## Transcript\n\n")
	b.WriteString(Transcript(d.Seg.Messages, d.ShowTimestamps))

	return b.String()
}

// KeyInfoBlock renders the summary callouts: Summary always, then
// Questions Asked, Key Points, Key Takeaways and References when present.
func KeyInfoBlock(info keyinfo.Block) string {
	var sections []string

	tagLine := ""
	if len(info.Tags) > 0 {
		quoted := make([]string, len(info.Tags))
		for i, t := range info.Tags {
			quoted[i] = "`" + t + "`"
		}
		tagLine = "\n> **Tags:** " + strings.Join(quoted, " ")
	}
	sections = append(sections, "> [!abstract] Summary\n> "+info.Summary+tagLine)

	if len(info.Questions) > 0 {
		var lines []string
		for i, q := range info.Questions {
			lines = append(lines, fmt.Sprintf("> %d. %s", i+1, q))
		}
		sections = append(sections, "> [!question] Questions Asked\n"+strings.Join(lines, "\n"))
	}

	if len(info.KeyPoints) > 0 {
		sections = append(sections, calloutList("> [!note] Key Points", info.KeyPoints))
	}
	if len(info.Takeaways) > 0 {
		sections = append(sections, calloutList("> [!tip] Key Takeaways", info.Takeaways))
	}
	if len(info.Links) > 0 {
		sections = append(sections, calloutList("> [!link] References", info.Links))
	}

	return strings.Join(sections, "\n\n")
}

func calloutList(header string, items []string) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, "> - "+it)
	}
	return header + "\n" + strings.Join(lines, "\n")
}

// Transcript renders the segment's messages as speaker callouts.
func Transcript(messages []conversation.Message, showTimestamps bool) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		speaker := "Assistant"
		callout := "quote"
		if m.Role == conversation.RoleUser {
			speaker = "User"
			callout = "question"
		}
		header := speaker
		if showTimestamps && m.HasTimestamp() {
			header += " — " + m.Timestamp.Format("15:04")
		}
		fmt.Fprintf(&b, "> [!%s] %s\n", callout, header)
		for _, line := range strings.Split(m.Text, "\n") {
			b.WriteString("> " + line + "\n")
		}
	}
	return b.String()
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\- ]`)
var multiDash = regexp.MustCompile(`-+`)

// Slug turns a segment title into a filesystem-safe note name.
func Slug(title string) string {
	s := unsafeFilenameChars.ReplaceAllString(title, "")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
	s = multiDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return strings.ToLower(s)
}

func escapeYAML(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

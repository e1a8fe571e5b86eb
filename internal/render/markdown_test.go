package render

import (
	"strings"
	"testing"
	"time"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/keyinfo"
	"github.com/johns/chatsplit/internal/segment"
)

func noteFixture() NoteData {
	messages := []conversation.Message{
		{Role: conversation.RoleUser, Index: 0, Text: "How do escrow accounts work?",
			Timestamp: time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC)},
		{Role: conversation.RoleAssistant, Index: 1, Text: "They hold funds for taxes.\nThe lender manages them."},
	}
	return NoteData{
		Date:              "2025-03-01",
		ConversationID:    "conv-123",
		ConversationTitle: `Mortgage "101"`,
		Source:            "chatgpt",
		SegmentNum:        1,
		SegmentTotal:      2,
		Seg: segment.Segment{
			ID:         "seg-1",
			Title:      "Escrow Accounts",
			Messages:   messages,
			StartIndex: 0,
			EndIndex:   1,
			Confidence: 0.85,
			Method:     segment.MethodHeuristic,
			Tags:       []string{"ai-chat/finance"},
		},
		Info: keyinfo.Block{
			Summary:   "How do escrow accounts work? -- They hold funds for taxes.",
			Questions: []string{"How do escrow accounts work?"},
			KeyPoints: []string{"lender manages the account"},
			Takeaways: []string{"ask for an escrow analysis yearly"},
			Links:     []string{"[example.com](https://example.com/escrow)"},
			Tags:      []string{"ai-chat/finance"},
		},
		ShowTimestamps: true,
	}
}

func TestSegmentNote_Frontmatter(t *testing.T) {
	note := SegmentNote(noteFixture())

	if !strings.HasPrefix(note, "---\n") {
		t.Fatal("note missing frontmatter open")
	}
	for _, want := range []string{
		"date: 2025-03-01",
		"type: ai-chat",
		"source: chatgpt",
		`conversation_id: "conv-123"`,
		`conversation_title: "Mortgage \"101\""`,
		"segment: 1",
		"segment_total: 2",
		`topic: "Escrow Accounts"`,
		"messages: 2",
		"confidence: 0.85",
		"method: heuristic",
		"tags: [ai-chat/finance]",
	} {
		if !strings.Contains(note, want) {
			t.Errorf("frontmatter missing %q", want)
		}
	}
	if !strings.Contains(note, "# Escrow Accounts\n") {
		t.Error("note missing title heading")
	}
	if !strings.Contains(note, "## Transcript") {
		t.Error("note missing transcript section")
	}
}

func TestKeyInfoBlock_Callouts(t *testing.T) {
	block := KeyInfoBlock(noteFixture().Info)

	for _, want := range []string{
		"> [!abstract] Summary",
		"> **Tags:** `ai-chat/finance`",
		"> [!question] Questions Asked",
		"> 1. How do escrow accounts work?",
		"> [!note] Key Points",
		"> - lender manages the account",
		"> [!tip] Key Takeaways",
		"> [!link] References",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q", want)
		}
	}
}

func TestKeyInfoBlock_OmitsEmptySections(t *testing.T) {
	block := KeyInfoBlock(keyinfo.Block{Summary: "Just a summary."})
	if strings.Contains(block, "[!question]") || strings.Contains(block, "[!link]") {
		t.Errorf("empty sections rendered: %q", block)
	}
	if !strings.Contains(block, "Just a summary.") {
		t.Errorf("summary missing: %q", block)
	}
}

func TestTranscript(t *testing.T) {
	got := Transcript(noteFixture().Seg.Messages, true)

	if !strings.Contains(got, "> [!question] User — 10:05") {
		t.Errorf("user callout wrong:\n%s", got)
	}
	if !strings.Contains(got, "> [!quote] Assistant\n") {
		t.Errorf("assistant callout wrong:\n%s", got)
	}
	if !strings.Contains(got, "> They hold funds for taxes.\n> The lender manages them.") {
		t.Errorf("multiline body not quoted:\n%s", got)
	}
}

func TestTranscript_TimestampsHidden(t *testing.T) {
	got := Transcript(noteFixture().Seg.Messages, false)
	if strings.Contains(got, "10:05") {
		t.Errorf("timestamp rendered when disabled:\n%s", got)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Escrow Accounts", "escrow-accounts"},
		{"Python vs Javascript!", "python-vs-javascript"},
		{"  spaced   out  ", "spaced-out"},
		{"???", "untitled"},
		{"", "untitled"},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

package ollama

import (
	"strings"
	"testing"

	"github.com/johns/chatsplit/internal/conversation"
)

func chunkFixture(n, textLen int) []conversation.Message {
	messages := make([]conversation.Message, n)
	for i := range messages {
		role := conversation.RoleUser
		if i%2 == 1 {
			role = conversation.RoleAssistant
		}
		messages[i] = conversation.Message{
			Role:  role,
			Index: i,
			Text:  strings.Repeat("x", textLen),
		}
	}
	return messages
}

func TestChunkMessages_SingleChunkWhenSmall(t *testing.T) {
	messages := chunkFixture(10, 100)
	chunks := chunkMessages(messages, 12000, 4)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].StartIndex != 0 || chunks[0].EndIndex != 9 {
		t.Errorf("chunk range [%d,%d], want [0,9]", chunks[0].StartIndex, chunks[0].EndIndex)
	}
}

func TestChunkMessages_SplitsWithOverlap(t *testing.T) {
	messages := chunkFixture(20, 1000)
	chunks := chunkMessages(messages, 5000, 2)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev, curr := chunks[i-1], chunks[i]
		if curr.StartIndex >= prev.EndIndex+1 {
			t.Errorf("chunk %d starts at %d with no overlap into previous ending at %d",
				i, curr.StartIndex, prev.EndIndex)
		}
	}

	last := chunks[len(chunks)-1]
	if last.EndIndex != 19 {
		t.Errorf("last chunk ends at %d, want 19", last.EndIndex)
	}
}

func TestChunkMessages_CoversAllMessages(t *testing.T) {
	messages := chunkFixture(30, 800)
	chunks := chunkMessages(messages, 4000, 3)

	covered := make(map[int]bool)
	for _, c := range chunks {
		for _, m := range c.Messages {
			covered[m.Index] = true
		}
	}
	for i := range messages {
		if !covered[i] {
			t.Errorf("message %d not covered by any chunk", i)
		}
	}
}

func TestChunkMessages_Empty(t *testing.T) {
	if got := chunkMessages(nil, 12000, 4); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

package ollama

import "github.com/johns/chatsplit/internal/conversation"

const (
	// Character budget per chunk; keeps prompts within a small local
	// model's comfortable context.
	defaultTargetChars = 12000
	// Messages repeated at the start of each following chunk so the
	// model sees context across chunk seams.
	defaultOverlapMessages = 4
)

// Chunk is a character-budgeted, overlap-padded sub-range of messages
// sent to the model in one request. Start/EndIndex are original message
// indices.
type Chunk struct {
	Messages   []conversation.Message
	StartIndex int
	EndIndex   int
}

// chunkMessages splits a conversation into chunks by cumulative character
// budget with a fixed message overlap between consecutive chunks.
// Conversations that fit in one budget are returned as a single chunk.
func chunkMessages(messages []conversation.Message, targetChars, overlap int) []Chunk {
	if len(messages) == 0 {
		return nil
	}

	total := 0
	for _, m := range messages {
		total += len(m.Text)
	}
	if total <= targetChars {
		return []Chunk{{
			Messages:   messages,
			StartIndex: messages[0].Index,
			EndIndex:   messages[len(messages)-1].Index,
		}}
	}

	var chunks []Chunk
	start := 0
	for start < len(messages) {
		chars := 0
		end := start
		for end < len(messages) && chars < targetChars {
			chars += len(messages[end].Text)
			end++
		}

		span := messages[start:end]
		chunks = append(chunks, Chunk{
			Messages:   span,
			StartIndex: span[0].Index,
			EndIndex:   span[len(span)-1].Index,
		})

		if end >= len(messages) {
			break
		}
		next := end - overlap
		if next <= start {
			break
		}
		start = next
	}

	return chunks
}

package ollama

import (
	"fmt"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/segment"
)

var granularityInstructions = map[segment.Granularity]string{
	segment.Coarse: "Only split when there is a very clear and major topic change. Prefer fewer, larger segments.",
	segment.Medium: "Split when the conversation moves to a distinctly different topic. Balance between too many and too few segments.",
	segment.Fine:   "Split when you detect any meaningful shift in subject matter, even within a broader topic.",
}

const promptPreviewChars = 200

// buildPrompt renders one chunk into a structured segmentation prompt
// requesting a strict JSON array of segments.
func buildPrompt(messages []conversation.Message, granularity segment.Granularity) string {
	var list strings.Builder
	for _, m := range messages {
		preview := strings.ReplaceAll(previewText(m.Text), "\n", " ")
		fmt.Fprintf(&list, "[%d] %s: %s\n", m.Index, m.Role, preview)
	}

	return fmt.Sprintf(`You are analyzing a conversation to identify topic segments. Your goal is to find natural topic boundaries.

GRANULARITY: %s
%s

RULES:
- Only split BEFORE user messages (never in the middle of an assistant response)
- Each segment must contain at least one user message and one assistant message
- Provide a short descriptive title for each segment (max 50 characters)
- Provide a 1-2 sentence summary for each segment
- Assign a confidence score (0.0 to 1.0) for each segment boundary

CONVERSATION:
%s
Respond with ONLY a JSON array. No other text before or after. Format:
[
  {
    "startIndex": <first message index>,
    "endIndex": <last message index>,
    "title": "<topic title>",
    "summary": "<1-2 sentence summary>",
    "confidence": <0.0 to 1.0>
  }
]

Example output for a 2-segment conversation:
[
  {"startIndex": 0, "endIndex": 5, "title": "Project Setup", "summary": "Discussion about initial project configuration.", "confidence": 1.0},
  {"startIndex": 6, "endIndex": 12, "title": "Database Design", "summary": "Planning the database schema and relationships.", "confidence": 0.85}
]`, granularity, granularityInstructions[granularity], list.String())
}

func previewText(text string) string {
	if len(text) <= promptPreviewChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= promptPreviewChars {
		return text
	}
	return string(runes[:promptPreviewChars])
}

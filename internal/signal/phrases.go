package signal

import (
	"regexp"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
)

// How much of a user message is inspected for switch language. Explicit
// transitions show up in the opening words, not buried mid-message.
const transitionScanChars = 200

var transitionStrong = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(let'?s|can we|i want to)\s+(move on|switch|change|talk about|discuss)`),
	regexp.MustCompile(`(?i)^(on a different|new)\s+(note|topic|subject)`),
	regexp.MustCompile(`(?i)^(switching|changing|moving)\s+(to|on to)`),
}

var transitionModerate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(now|next|also|another)\b.*\?`),
	regexp.MustCompile(`(?i)^(ok\s+)?(let'?s|can we|i want to)\s+(explore|create|look at|go|try|start|build|make|do|set up|work on)\b`),
	regexp.MustCompile(`(?i)^(ok\s+)?(perfect|great|thanks?|thank you)[\s,.!]*(can you|could you|let'?s|now)\b`),
	regexp.MustCompile(`(?i)^(ok\s+)?(perfect|great|thanks?|thank you)[\s,.!]+[\w\s,]*\b(can you|could you|help|let'?s)\b`),
}

// ScoreTransitionPhrases detects explicit topic-switch language at the
// start of a user message. Strong patterns score 1.0, moderate 0.5.
func ScoreTransitionPhrases(m conversation.Message) float64 {
	if m.Role != conversation.RoleUser {
		return 0.0
	}

	text := strings.TrimSpace(truncateRunes(m.Text, transitionScanChars))
	return matchTiered(text, transitionStrong, transitionModerate)
}

var reintroStrong = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(i have a question|can you help|i need help|could you explain|what('?s| is| are))\b`),
}

var reintroModerate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(how (do|can|should)|why (do|does|is)|is (it|there)|tell me about)\b`),
}

// ScoreReintroduction detects question-opening phrasing that suggests the
// user is starting a fresh line of inquiry.
func ScoreReintroduction(m conversation.Message) float64 {
	if m.Role != conversation.RoleUser {
		return 0.0
	}

	return matchTiered(strings.TrimSpace(m.Text), reintroStrong, reintroModerate)
}

func matchTiered(text string, strong, moderate []*regexp.Regexp) float64 {
	for _, p := range strong {
		if p.MatchString(text) {
			return 1.0
		}
	}
	for _, p := range moderate {
		if p.MatchString(text) {
			return 0.5
		}
	}
	return 0.0
}

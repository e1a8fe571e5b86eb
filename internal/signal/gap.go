package signal

import (
	"regexp"

	"github.com/johns/chatsplit/internal/conversation"
)

const (
	gapThresholdMinutes = 30
	maxGapMinutes       = 120
)

// ScoreTemporalGap scores the wall-clock gap between two adjacent
// messages: 0 below 30 minutes, scaling linearly to 1.0 at 120 minutes.
// Returns 0 when either message lacks a timestamp.
func ScoreTemporalGap(before, after conversation.Message) float64 {
	if !before.HasTimestamp() || !after.HasTimestamp() {
		return 0.0
	}

	gapMinutes := after.Timestamp.Sub(before.Timestamp).Minutes()
	if gapMinutes < gapThresholdMinutes {
		return 0.0
	}
	if gapMinutes >= maxGapMinutes {
		return 1.0
	}
	return gapMinutes / maxGapMinutes
}

const (
	minAssistantWords = 300
	minHeadings       = 2
	minListItems      = 3
	maxNextUserWords  = 100
)

var (
	headingPattern  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	listItemPattern = regexp.MustCompile(`(?m)^\s*([-*+]|\d+[.)])\s+`)
)

// ScoreSelfContained scores 1.0 only when the message before the boundary
// is a long, structurally rich assistant response and the user message
// after it is short: the prior topic was wrapped up and a lightweight
// new query follows.
func ScoreSelfContained(assistant, nextUser conversation.Message) float64 {
	if assistant.Role != conversation.RoleAssistant || nextUser.Role != conversation.RoleUser {
		return 0.0
	}

	if conversation.WordCount(assistant.Text) < minAssistantWords {
		return 0.0
	}

	headings := len(headingPattern.FindAllString(assistant.Text, -1))
	listItems := len(listItemPattern.FindAllString(assistant.Text, -1))
	if headings < minHeadings && listItems < minListItems {
		return 0.0
	}

	if conversation.WordCount(nextUser.Text) > maxNextUserWords {
		return 0.0
	}

	return 1.0
}

package conversation

import (
	"strings"
	"time"
)

// Stats holds aggregate counts for a conversation, used for note
// frontmatter and import logging.
type Stats struct {
	UserMessages      int
	AssistantMessages int
	TotalWords        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

// ComputeStats aggregates message counts, word totals and the time span
// covered by timestamped messages.
func ComputeStats(messages []Message) Stats {
	var s Stats
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			s.UserMessages++
		case RoleAssistant:
			s.AssistantMessages++
		}
		s.TotalWords += WordCount(m.Text)

		if !m.HasTimestamp() {
			continue
		}
		if s.StartTime.IsZero() || m.Timestamp.Before(s.StartTime) {
			s.StartTime = m.Timestamp
		}
		if m.Timestamp.After(s.EndTime) {
			s.EndTime = m.Timestamp
		}
	}
	if !s.StartTime.IsZero() {
		s.Duration = s.EndTime.Sub(s.StartTime)
	}
	return s
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TotalWords sums word counts across messages.
func TotalWords(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += WordCount(m.Text)
	}
	return total
}

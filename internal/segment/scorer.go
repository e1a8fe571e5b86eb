package segment

import (
	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/signal"
)

// Messages on either side of a boundary considered by the shift signals.
const windowSize = 4

// ScoreBoundaries evaluates every candidate boundary in order. Only user
// messages after position 0 are candidates; a segment must start with a
// user turn. Deterministic: same messages and weights, same boundaries.
func ScoreBoundaries(messages []conversation.Message, weights map[string]float64) []Boundary {
	var boundaries []Boundary

	for i := 1; i < len(messages); i++ {
		if messages[i].Role != conversation.RoleUser {
			continue
		}
		prev := messages[i-1]

		signals := []signal.Result{
			{Signal: signal.TransitionPhrases, Score: signal.ScoreTransitionPhrases(messages[i]), Weight: weights[signal.TransitionPhrases]},
			{Signal: signal.DomainShift, Score: signal.ScoreDomainShift(messages, i, windowSize), Weight: weights[signal.DomainShift]},
			{Signal: signal.VocabularyShift, Score: signal.ScoreVocabularyShift(messages, i, windowSize), Weight: weights[signal.VocabularyShift]},
			{Signal: signal.TemporalGap, Score: signal.ScoreTemporalGap(prev, messages[i]), Weight: weights[signal.TemporalGap]},
			{Signal: signal.SelfContained, Score: signal.ScoreSelfContained(prev, messages[i]), Weight: weights[signal.SelfContained]},
			{Signal: signal.Reintroduction, Score: signal.ScoreReintroduction(messages[i]), Weight: weights[signal.Reintroduction]},
		}

		composite := 0.0
		for _, s := range signals {
			composite += s.Score * s.Weight
		}

		boundaries = append(boundaries, Boundary{
			BeforeIndex: i,
			Score:       composite,
			Signals:     signals,
		})
	}

	return boundaries
}

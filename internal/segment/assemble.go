package segment

import (
	"sort"

	"github.com/google/uuid"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/keyinfo"
	"github.com/johns/chatsplit/internal/tags"
	"github.com/johns/chatsplit/internal/title"
)

// Assemble partitions a conversation into segments: boundaries above the
// confidence threshold are accepted greedily, best first, as long as
// every segment in the resulting partition still meets the minimum
// message and word floors. Degrades to a single whole-conversation
// segment when the input is too short, has no user turns, or no boundary
// survives.
func Assemble(messages []conversation.Message, cfg Config) []Segment {
	if len(messages) == 0 {
		return nil
	}

	if len(messages) < 2 || !conversation.HasRole(messages, conversation.RoleUser) {
		return []Segment{build(messages, 1.0, cfg, MethodHeuristic)}
	}

	boundaries := ScoreBoundaries(messages, cfg.Weights)

	candidates := make([]Boundary, 0, len(boundaries))
	for _, b := range boundaries {
		if b.Score >= cfg.Thresholds.ConfidenceThreshold {
			candidates = append(candidates, b)
		}
	}
	// Stable sort keeps original order on score ties, for determinism.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	var accepted []int
	for _, b := range candidates {
		trial := append(append([]int{}, accepted...), b.BeforeIndex)
		sort.Ints(trial)
		if partitionFeasible(messages, trial, cfg.Thresholds) {
			accepted = trial
		}
	}

	if len(accepted) == 0 {
		return []Segment{build(messages, 1.0, cfg, MethodHeuristic)}
	}

	scoreAt := make(map[int]float64, len(boundaries))
	for _, b := range boundaries {
		scoreAt[b.BeforeIndex] = b.Score
	}

	var segments []Segment
	start := 0
	for _, cut := range accepted {
		segments = append(segments, build(messages[start:cut], confidenceAt(scoreAt, start), cfg, MethodHeuristic))
		start = cut
	}
	segments = append(segments, build(messages[start:], confidenceAt(scoreAt, start), cfg, MethodHeuristic))

	return segments
}

// confidenceAt is the score of the boundary that starts a segment; the
// very first segment was not chosen by any boundary and gets 1.0.
func confidenceAt(scoreAt map[int]float64, start int) float64 {
	if start == 0 {
		return 1.0
	}
	if score, ok := scoreAt[start]; ok {
		return score
	}
	return 1.0
}

// partitionFeasible checks that every segment induced by the boundary
// set meets the minimum floors. It re-checks the whole partition, not
// just the two segments a new boundary touches, so a high-scoring
// boundary can never strand a short remainder.
func partitionFeasible(messages []conversation.Message, cuts []int, t Thresholds) bool {
	starts := append([]int{0}, cuts...)
	ends := append(append([]int{}, cuts...), len(messages))

	for i := range starts {
		span := messages[starts[i]:ends[i]]
		if len(span) < t.MinMessages {
			return false
		}
		if conversation.TotalWords(span) < t.MinWords {
			return false
		}
	}
	return true
}

func build(messages []conversation.Message, confidence float64, cfg Config, method Method) Segment {
	start := messages[0].Index
	end := messages[len(messages)-1].Index
	if end < start {
		end = start
	}

	segTags := tags.Generate(messages, cfg.TagPrefix)
	return Segment{
		ID:         uuid.NewString(),
		Title:      title.Generate(messages),
		Summary:    keyinfo.Summary(messages),
		Tags:       segTags,
		Messages:   messages,
		StartIndex: start,
		EndIndex:   end,
		Confidence: confidence,
		Method:     method,
	}
}

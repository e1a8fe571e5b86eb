// Package segment scores candidate topic boundaries, assembles segments
// under granularity constraints, and provides the manual re-segmentation
// operators. All operations are pure: they never mutate their inputs and
// identical input plus config always yields identical output.
package segment

import (
	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/signal"
)

// Method records how a segment was produced.
type Method string

const (
	MethodHeuristic Method = "heuristic"
	MethodLLM       Method = "llm"
	MethodManual    Method = "manual"
)

// Granularity controls how aggressively boundaries are accepted.
type Granularity string

const (
	Coarse Granularity = "coarse"
	Medium Granularity = "medium"
	Fine   Granularity = "fine"
)

// Thresholds is one granularity preset: the composite-score floor for a
// boundary and the minimum size every resulting segment must keep.
type Thresholds struct {
	ConfidenceThreshold float64
	MinMessages         int
	MinWords            int
}

// GranularityPresets maps each preset to its thresholds. Coarser presets
// demand stronger evidence and larger segments.
var GranularityPresets = map[Granularity]Thresholds{
	Coarse: {ConfidenceThreshold: 0.55, MinMessages: 8, MinWords: 500},
	Medium: {ConfidenceThreshold: 0.40, MinMessages: 4, MinWords: 200},
	Fine:   {ConfidenceThreshold: 0.30, MinMessages: 2, MinWords: 80},
}

// DefaultSignalWeights is the weighting for conversational chat input.
// Weights sum to 1.0.
func DefaultSignalWeights() map[string]float64 {
	return map[string]float64{
		signal.TransitionPhrases: 0.25,
		signal.DomainShift:       0.20,
		signal.VocabularyShift:   0.20,
		signal.Reintroduction:    0.15,
		signal.TemporalGap:       0.10,
		signal.SelfContained:     0.10,
	}
}

// DocumentSignalWeights suppresses the conversational signals in favor of
// domain and vocabulary shift, for inputs that are documents reinterpreted
// as message lists rather than real dialogue. Weights sum to 1.0.
func DocumentSignalWeights() map[string]float64 {
	return map[string]float64{
		signal.TransitionPhrases: 0.05,
		signal.DomainShift:       0.35,
		signal.VocabularyShift:   0.35,
		signal.Reintroduction:    0.05,
		signal.TemporalGap:       0.15,
		signal.SelfContained:     0.05,
	}
}

// Config carries everything a segmentation run needs. It is passed
// explicitly into every call; there is no process-wide mutable state.
type Config struct {
	Granularity Granularity
	Thresholds  Thresholds
	Weights     map[string]float64
	TagPrefix   string
}

// DefaultConfig returns the configuration for a granularity preset with
// default weights and the standard tag prefix.
func DefaultConfig(g Granularity) Config {
	t, ok := GranularityPresets[g]
	if !ok {
		g = Medium
		t = GranularityPresets[Medium]
	}
	return Config{
		Granularity: g,
		Thresholds:  t,
		Weights:     DefaultSignalWeights(),
		TagPrefix:   "ai-chat",
	}
}

// Boundary is a candidate split point immediately before the user message
// at BeforeIndex, with its weighted composite score and the per-signal
// breakdown that produced it.
type Boundary struct {
	BeforeIndex int
	Score       float64
	Signals     []signal.Result
}

// Segment is a contiguous, non-overlapping slice of the conversation with
// derived metadata. Segments are never mutated in place: every operator
// returns a new segment list, and any segment whose message set changed
// gets a fresh ID.
type Segment struct {
	ID         string
	Title      string
	Summary    string
	Tags       []string
	Messages   []conversation.Message
	StartIndex int
	EndIndex   int
	Confidence float64
	Method     Method
}

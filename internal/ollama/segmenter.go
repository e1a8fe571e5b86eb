package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/segment"
	"github.com/johns/chatsplit/internal/tags"
)

const maxLLMTitleLen = 50

// Segmenter drives the LLM-assisted segmentation state machine:
// health-check, chunk, prompt per chunk, parse, deduplicate, validate,
// materialize.
type Segmenter struct {
	client *Client
	model  string
	logger *zap.Logger
}

// NewSegmenter creates a segmenter for the given client and model.
func NewSegmenter(client *Client, model string, logger *zap.Logger) *Segmenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{client: client, model: model, logger: logger}
}

// llmSegment is the wire shape each chunk's response must produce.
// Treated as best-effort and validated defensively.
type llmSegment struct {
	StartIndex int      `json:"startIndex"`
	EndIndex   int      `json:"endIndex"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Confidence *float64 `json:"confidence"`
}

// SegmentWithFallback runs the LLM path and falls back to the heuristic
// assembler on any failure: unreachable endpoint, malformed response,
// empty result, failed validation. The second return value reports
// whether the fallback was used, so callers can surface it.
func (s *Segmenter) SegmentWithFallback(ctx context.Context, messages []conversation.Message, cfg segment.Config) ([]segment.Segment, bool) {
	segments, err := s.Segment(ctx, messages, cfg)
	if err != nil {
		s.logger.Warn("llm segmentation failed, using heuristic fallback", zap.Error(err))
		return segment.Assemble(messages, cfg), true
	}
	return segments, false
}

// Segment runs the full LLM path and returns method=llm segments, or a
// recoverable error when any stage fails.
func (s *Segmenter) Segment(ctx context.Context, messages []conversation.Message, cfg segment.Config) ([]segment.Segment, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("empty conversation")
	}

	if !s.client.HealthCheck(ctx) {
		return nil, fmt.Errorf("ollama is not reachable at %s", s.client.endpoint)
	}

	chunks := chunkMessages(messages, defaultTargetChars, defaultOverlapMessages)

	var results []llmSegment
	for _, chunk := range chunks {
		prompt := buildPrompt(chunk.Messages, cfg.Granularity)
		response, err := s.client.Generate(ctx, s.model, prompt)
		if err != nil {
			return nil, fmt.Errorf("chunk [%d,%d]: %w", chunk.StartIndex, chunk.EndIndex, err)
		}
		parsed, err := parseResponse(response)
		if err != nil {
			return nil, fmt.Errorf("chunk [%d,%d]: %w", chunk.StartIndex, chunk.EndIndex, err)
		}
		results = append(results, parsed...)
	}

	merged := deduplicate(results, messages)
	if err := validate(merged, messages); err != nil {
		return nil, err
	}

	return s.materialize(merged, messages, cfg.TagPrefix), nil
}

// parseResponse extracts and decodes the JSON array from raw model
// output, tolerating prose around it.
func parseResponse(response string) ([]llmSegment, error) {
	start := strings.IndexByte(response, '[')
	end := strings.LastIndexByte(response, ']')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("response did not contain a JSON array")
	}

	var parsed []llmSegment
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse segment array: %w", err)
	}
	return parsed, nil
}

// deduplicate sorts results by startIndex and keeps the first seen per
// startIndex, dropping any result that references an index outside the
// conversation's actual range. Overlapping chunks can return the same
// boundary twice; first-seen wins.
func deduplicate(results []llmSegment, messages []conversation.Message) []llmSegment {
	if len(results) == 0 {
		return results
	}

	maxIndex := messages[len(messages)-1].Index

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartIndex < results[j].StartIndex
	})

	seen := make(map[int]bool)
	var unique []llmSegment
	for _, r := range results {
		if r.StartIndex < 0 || r.EndIndex < 0 || r.StartIndex > maxIndex || r.EndIndex > maxIndex {
			continue
		}
		if seen[r.StartIndex] {
			continue
		}
		seen[r.StartIndex] = true
		unique = append(unique, r)
	}
	return unique
}

// validate fails the whole LLM attempt when nothing survived dedup, when
// a referenced index has no actual message, or when a range is inverted.
func validate(results []llmSegment, messages []conversation.Message) error {
	if len(results) == 0 {
		return fmt.Errorf("no valid segments returned")
	}

	indexSet := make(map[int]bool, len(messages))
	for _, m := range messages {
		indexSet[m.Index] = true
	}

	for _, r := range results {
		if !indexSet[r.StartIndex] {
			return fmt.Errorf("invalid startIndex %d", r.StartIndex)
		}
		if !indexSet[r.EndIndex] {
			return fmt.Errorf("invalid endIndex %d", r.EndIndex)
		}
		if r.StartIndex > r.EndIndex {
			return fmt.Errorf("startIndex %d > endIndex %d", r.StartIndex, r.EndIndex)
		}
	}
	return nil
}

func (s *Segmenter) materialize(results []llmSegment, messages []conversation.Message, tagPrefix string) []segment.Segment {
	posOf := make(map[int]int, len(messages))
	for pos, m := range messages {
		posOf[m.Index] = pos
	}

	segments := make([]segment.Segment, 0, len(results))
	for _, r := range results {
		span := messages[posOf[r.StartIndex] : posOf[r.EndIndex]+1]

		confidence := 0.5
		if r.Confidence != nil {
			confidence = *r.Confidence
		}
		segTitle := strings.TrimSpace(r.Title)
		if segTitle == "" {
			segTitle = "Untitled"
		}
		if runes := []rune(segTitle); len(runes) > maxLLMTitleLen {
			segTitle = string(runes[:maxLLMTitleLen])
		}

		segments = append(segments, segment.Segment{
			ID:         uuid.NewString(),
			Title:      segTitle,
			Summary:    r.Summary,
			Tags:       tags.Generate(span, tagPrefix),
			Messages:   span,
			StartIndex: r.StartIndex,
			EndIndex:   r.EndIndex,
			Confidence: confidence,
			Method:     segment.MethodLLM,
		})
	}
	return segments
}

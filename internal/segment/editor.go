package segment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/tags"
	"github.com/johns/chatsplit/internal/title"
)

// Manual re-segmentation operators. All of them return a fresh segment
// list; invalid operations return the input unchanged rather than
// failing, since "nothing happened" is the correct interactive behavior.

// Merge joins two adjacent segments into one. The merged segment keeps
// the earlier segment's title, summary and confidence, regenerates its
// tags from the combined messages, and gets a new ID with method manual.
// Untouched neighbors keep their IDs. No-op when either ID is missing or
// the segments are not adjacent.
func Merge(segments []Segment, idA, idB string) []Segment {
	posA, posB := indexOf(segments, idA), indexOf(segments, idB)
	if posA < 0 || posB < 0 {
		return segments
	}
	if posA > posB {
		posA, posB = posB, posA
	}
	if posB-posA != 1 {
		return segments
	}

	first, second := segments[posA], segments[posB]

	merged := make([]conversation.Message, 0, len(first.Messages)+len(second.Messages))
	merged = append(merged, first.Messages...)
	merged = append(merged, second.Messages...)

	combined := Segment{
		ID:         uuid.NewString(),
		Title:      first.Title,
		Summary:    first.Summary,
		Tags:       tags.Generate(merged, tagPrefix(first.Tags)),
		Messages:   merged,
		StartIndex: first.StartIndex,
		EndIndex:   second.EndIndex,
		Confidence: first.Confidence,
		Method:     MethodManual,
	}

	result := make([]Segment, 0, len(segments)-1)
	result = append(result, segments[:posA]...)
	result = append(result, combined)
	result = append(result, segments[posB+1:]...)
	return result
}

// Split divides a segment in two at atMessageIndex (an original message
// index, which becomes the first message of the second half). Both halves
// get fresh IDs and freshly generated titles and tags; the first keeps
// the original summary, the second starts with an empty summary and zero
// confidence. No-op when the ID is unknown or the index does not fall
// strictly inside the segment's range.
func Split(segments []Segment, id string, atMessageIndex int) []Segment {
	pos := indexOf(segments, id)
	if pos < 0 {
		return segments
	}

	seg := segments[pos]
	local := atMessageIndex - seg.StartIndex
	if local <= 0 || local >= len(seg.Messages) {
		return segments
	}

	firstMsgs := seg.Messages[:local]
	secondMsgs := seg.Messages[local:]
	prefix := tagPrefix(seg.Tags)

	first := Segment{
		ID:         uuid.NewString(),
		Title:      title.Generate(firstMsgs),
		Summary:    seg.Summary,
		Tags:       tags.Generate(firstMsgs, prefix),
		Messages:   firstMsgs,
		StartIndex: seg.StartIndex,
		EndIndex:   seg.StartIndex + local - 1,
		Confidence: seg.Confidence,
		Method:     MethodManual,
	}
	second := Segment{
		ID:         uuid.NewString(),
		Title:      title.Generate(secondMsgs),
		Summary:    "",
		Tags:       tags.Generate(secondMsgs, prefix),
		Messages:   secondMsgs,
		StartIndex: atMessageIndex,
		EndIndex:   seg.EndIndex,
		Confidence: 0,
		Method:     MethodManual,
	}

	result := make([]Segment, 0, len(segments)+1)
	result = append(result, segments[:pos]...)
	result = append(result, first, second)
	result = append(result, segments[pos+1:]...)
	return result
}

// Rename replaces only the title of the matching segment, preserving its
// ID, messages and every other field. Idempotent; no-op on unknown IDs.
func Rename(segments []Segment, id, newTitle string) []Segment {
	result := make([]Segment, len(segments))
	copy(result, segments)
	for i := range result {
		if result[i].ID == id {
			result[i].Title = newTitle
		}
	}
	return result
}

func indexOf(segments []Segment, id string) int {
	for i := range segments {
		if segments[i].ID == id {
			return i
		}
	}
	return -1
}

// tagPrefix recovers the conversation's tag prefix from an existing tag
// list, so regenerated tags stay in the same namespace.
func tagPrefix(existing []string) string {
	if len(existing) == 0 {
		return "ai-chat"
	}
	first := existing[0]
	if idx := strings.IndexByte(first, '/'); idx > 0 {
		return first[:idx]
	}
	return first
}

package segment

import (
	"testing"

	"github.com/johns/chatsplit/internal/conversation"
)

func editFixture(t *testing.T) ([]conversation.Message, []Segment) {
	t.Helper()
	messages := twoTopicConversation()
	segments := Assemble(messages, DefaultConfig(Medium))
	if len(segments) != 2 {
		t.Fatalf("fixture produced %d segments, want 2", len(segments))
	}
	return messages, segments
}

func TestMerge_Adjacent(t *testing.T) {
	messages, segments := editFixture(t)
	first, second := segments[0], segments[1]

	merged := Merge(segments, first.ID, second.ID)
	if len(merged) != 1 {
		t.Fatalf("expected 1 segment after merge, got %d", len(merged))
	}
	checkPartition(t, messages, merged)

	got := merged[0]
	if got.ID == first.ID || got.ID == second.ID {
		t.Error("merged segment reused an input ID")
	}
	if got.Title != first.Title {
		t.Errorf("merged title = %q, want earlier segment's %q", got.Title, first.Title)
	}
	if got.Summary != first.Summary {
		t.Errorf("merged summary = %q, want earlier segment's", got.Summary)
	}
	if got.Confidence != first.Confidence {
		t.Errorf("merged confidence = %v, want %v", got.Confidence, first.Confidence)
	}
	if got.Method != MethodManual {
		t.Errorf("merged method = %q, want manual", got.Method)
	}
	if got.StartIndex != first.StartIndex || got.EndIndex != second.EndIndex {
		t.Errorf("merged range [%d,%d], want [%d,%d]",
			got.StartIndex, got.EndIndex, first.StartIndex, second.EndIndex)
	}
}

func TestMerge_OrderInsensitive(t *testing.T) {
	_, segments := editFixture(t)
	merged := Merge(segments, segments[1].ID, segments[0].ID)
	if len(merged) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(merged))
	}
	if merged[0].Title != segments[0].Title {
		t.Errorf("merged title = %q, want earlier segment's regardless of argument order", merged[0].Title)
	}
}

func TestMerge_NotAdjacent(t *testing.T) {
	messages, segments := editFixture(t)
	split := Split(segments, segments[0].ID, 2)
	if len(split) != 3 {
		t.Fatalf("setup split failed, got %d segments", len(split))
	}

	got := Merge(split, split[0].ID, split[2].ID)
	if len(got) != len(split) {
		t.Errorf("non-adjacent merge changed segment count: %d -> %d", len(split), len(got))
	}
	checkPartition(t, messages, got)
}

func TestMerge_UnknownID(t *testing.T) {
	_, segments := editFixture(t)
	got := Merge(segments, segments[0].ID, "nope")
	if len(got) != len(segments) {
		t.Errorf("merge with unknown ID changed segment count")
	}
}

func TestSplit_Inside(t *testing.T) {
	messages, segments := editFixture(t)
	target := segments[0]

	got := Split(segments, target.ID, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 segments after split, got %d", len(got))
	}
	checkPartition(t, messages, got)

	first, second := got[0], got[1]
	if first.StartIndex != target.StartIndex || first.EndIndex != 1 {
		t.Errorf("first half range [%d,%d], want [%d,1]", first.StartIndex, first.EndIndex, target.StartIndex)
	}
	if second.StartIndex != 2 || second.EndIndex != target.EndIndex {
		t.Errorf("second half range [%d,%d], want [2,%d]", second.StartIndex, second.EndIndex, target.EndIndex)
	}
	if first.ID == target.ID || second.ID == target.ID || first.ID == second.ID {
		t.Error("split halves must get fresh distinct IDs")
	}
	if first.Summary != target.Summary {
		t.Errorf("first half summary = %q, want original's", first.Summary)
	}
	if second.Summary != "" {
		t.Errorf("second half summary = %q, want empty", second.Summary)
	}
	if second.Confidence != 0 {
		t.Errorf("second half confidence = %v, want 0", second.Confidence)
	}
	if first.Method != MethodManual || second.Method != MethodManual {
		t.Error("split halves must have method manual")
	}
}

func TestSplit_AtStartIsNoOp(t *testing.T) {
	_, segments := editFixture(t)
	got := Split(segments, segments[1].ID, segments[1].StartIndex)
	if len(got) != len(segments) {
		t.Errorf("split at segment start changed segment count")
	}
}

func TestSplit_OutOfRange(t *testing.T) {
	_, segments := editFixture(t)
	if got := Split(segments, segments[0].ID, 99); len(got) != len(segments) {
		t.Errorf("split past segment end changed segment count")
	}
	if got := Split(segments, "nope", 2); len(got) != len(segments) {
		t.Errorf("split with unknown ID changed segment count")
	}
}

func TestMergeThenSplit_PreservesPartition(t *testing.T) {
	messages, segments := editFixture(t)
	cut := segments[1].StartIndex

	merged := Merge(segments, segments[0].ID, segments[1].ID)
	restored := Split(merged, merged[0].ID, cut)

	if len(restored) != 2 {
		t.Fatalf("expected 2 segments after merge+split, got %d", len(restored))
	}
	checkPartition(t, messages, restored)
	if restored[1].StartIndex != cut {
		t.Errorf("restored cut at %d, want %d", restored[1].StartIndex, cut)
	}
}

func TestRename(t *testing.T) {
	_, segments := editFixture(t)
	id := segments[0].ID

	renamed := Rename(segments, id, "Japan Trip Planning")
	if renamed[0].Title != "Japan Trip Planning" {
		t.Errorf("title = %q, want renamed", renamed[0].Title)
	}
	if renamed[0].ID != id {
		t.Error("rename must preserve the segment ID")
	}
	if renamed[0].Summary != segments[0].Summary || len(renamed[0].Messages) != len(segments[0].Messages) {
		t.Error("rename must not touch other fields")
	}
	if renamed[1].Title != segments[1].Title {
		t.Error("rename touched an unrelated segment")
	}

	again := Rename(renamed, id, "Japan Trip Planning")
	if again[0].Title != "Japan Trip Planning" || again[0].ID != id {
		t.Error("rename is not idempotent")
	}
}

func TestRename_UnknownID(t *testing.T) {
	_, segments := editFixture(t)
	got := Rename(segments, "nope", "anything")
	for i := range got {
		if got[i].Title != segments[i].Title {
			t.Errorf("segment %d title changed on unknown-ID rename", i)
		}
	}
}

func TestRename_DoesNotMutateInput(t *testing.T) {
	_, segments := editFixture(t)
	before := segments[0].Title
	Rename(segments, segments[0].ID, "Changed")
	if segments[0].Title != before {
		t.Error("rename mutated its input slice")
	}
}

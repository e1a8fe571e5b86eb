package title

import "testing"

func TestFirstSentence(t *testing.T) {
	got := FirstSentence("I need to refinance my mortgage. Rates dropped last week.")
	want := "I need to refinance my mortgage"
	if got != want {
		t.Errorf("FirstSentence = %q, want %q", got, want)
	}
}

func TestFirstSentence_ShortSentenceWidens(t *testing.T) {
	got := FirstSentence("Hi. I need help with my taxes this year")
	want := "Hi. I need help with my taxes this year"
	if got != want {
		t.Errorf("FirstSentence = %q, want the full line", got)
	}
}

func TestFirstSentence_FirstLineOnly(t *testing.T) {
	got := FirstSentence("how do I configure nginx\nsome unrelated second line")
	want := "how do I configure nginx"
	if got != want {
		t.Errorf("FirstSentence = %q, want %q", got, want)
	}
}

func TestStripFillerAndActions(t *testing.T) {
	cases := []struct{ in, want string }{
		{"can you help me write a cover letter", "cover letter"},
		{"ok great, explain the borrow checker", "borrow checker"},
		{"please summarize this article about inflation", "article about inflation"},
		{"tell me about index funds", "index funds"},
		{"compare option A and option B", "compare and"},
	}
	for _, c := range cases {
		if got := StripFillerAndActions(c.in); got != c.want {
			t.Errorf("StripFillerAndActions(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripMarkdown(t *testing.T) {
	got := StripMarkdown("**bold** and `code` plus [a link](https://example.com) and *em*")
	want := "bold and code plus a link and em"
	if got != want {
		t.Errorf("StripMarkdown = %q, want %q", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"the api design of grpc services", "The Api Design of Grpc Services"},
		{"working with the AWS CLI", "Working with the AWS CLI"},
		{"a plan for the week", "A Plan for the Week"},
	}
	for _, c := range cases {
		if got := TitleCase(c.in); got != c.want {
			t.Errorf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncateAtWord_ShortUnchanged(t *testing.T) {
	if got := truncateAtWord("short title", 72); got != "short title" {
		t.Errorf("truncateAtWord = %q, want unchanged", got)
	}
}

func TestTruncateAtWord_PrefersPhraseBoundary(t *testing.T) {
	in := "planning the spring garden beds, choosing companion plants and a watering schedule"
	got := truncateAtWord(in, 50)
	want := "planning the spring garden beds"
	if got != want {
		t.Errorf("truncateAtWord = %q, want %q", got, want)
	}
}

func TestTruncateAtWord_NeverMidWord(t *testing.T) {
	in := "reorganizing household finances around irregular freelance income streams"
	got := truncateAtWord(in, 40)
	if len(got) > 40 {
		t.Fatalf("result %d chars, cap 40", len(got))
	}
	for i := 0; i+len(got) <= len(in); i++ {
		if in[i:i+len(got)] == got {
			end := i + len(got)
			if end < len(in) && in[end] != ' ' {
				t.Errorf("truncateAtWord cut mid-word: %q", got)
			}
			break
		}
	}
}

func TestNearDuplicate(t *testing.T) {
	if !nearDuplicate("Postgres", "Postgress") {
		t.Error("expected typo variants to be near duplicates")
	}
	if nearDuplicate("Redis", "Rails") {
		t.Error("expected distinct names not to be near duplicates")
	}
	if !nearDuplicate("API", "api") {
		t.Error("expected short names to compare case-insensitively")
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"postgres", "postgress", 1},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

package title

import (
	"regexp"
	"sort"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
)

const (
	userEntityWeight = 3
	maxEntities      = 2
)

var (
	multiWordEntity = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	acronymEntity   = regexp.MustCompile(`\b[A-Z][A-Z0-9]{1,5}\b`)
)

// Words that are capitalized for grammatical rather than topical reasons.
var entityNoise = map[string]bool{
	"I": true, "OK": true, "TODO": true, "FYI": true, "PS": true,
	"AM": true, "PM": true, "THE": true, "AND": true,
}

// extractEntities finds capitalized multi-word names and acronyms across
// the segment, weighting user-authored text three times over assistant
// text and fuzzy-deduplicating near-identical spellings from typos.
// Returns up to two entities by weighted frequency.
func extractEntities(messages []conversation.Message) []string {
	counts := make(map[string]int)
	var order []string

	add := func(entity string, weight int) {
		entity = strings.TrimSpace(entity)
		if entity == "" || entityNoise[entity] {
			return
		}
		if counts[entity] == 0 {
			order = append(order, entity)
		}
		counts[entity] += weight
	}

	for _, m := range messages {
		weight := 1
		if m.Role == conversation.RoleUser {
			weight = userEntityWeight
		}
		for _, e := range multiWordEntity.FindAllString(m.Text, -1) {
			add(e, weight)
		}
		for _, e := range acronymEntity.FindAllString(m.Text, -1) {
			add(e, weight)
		}
	}

	order = dedupeFuzzy(order, counts)

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxEntities {
		order = order[:maxEntities]
	}
	return order
}

// dedupeFuzzy merges entities whose spellings are within edit distance 2
// of each other (typos like "Postgress"/"Postgres"), folding the counts
// into the more frequent spelling.
func dedupeFuzzy(entities []string, counts map[string]int) []string {
	var kept []string
	for _, e := range entities {
		merged := false
		for i, k := range kept {
			if !nearDuplicate(e, k) {
				continue
			}
			if counts[e] > counts[k] {
				counts[e] += counts[k]
				kept[i] = e
			} else {
				counts[k] += counts[e]
			}
			merged = true
			break
		}
		if !merged {
			kept = append(kept, e)
		}
	}
	return kept
}

func nearDuplicate(a, b string) bool {
	if len(a) < 5 || len(b) < 5 {
		return strings.EqualFold(a, b)
	}
	return levenshtein(strings.ToLower(a), strings.ToLower(b)) <= 2
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

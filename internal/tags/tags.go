// Package tags derives domain tags for a segment from a data-driven table
// of pattern families. Each family requires a minimum match count before
// it fires, so a single incidental mention never tags a segment.
package tags

import (
	"regexp"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
)

const maxTags = 5

type domainPattern struct {
	pattern    *regexp.Regexp
	tag        string
	minMatches int
}

var domainPatterns = []domainPattern{
	{regexp.MustCompile(`(?i)\b(python|javascript|typescript|java|rust|golang|ruby|swift|kotlin|php|csharp|c\+\+)\b`), "coding", 2},
	{regexp.MustCompile(`(?i)\bpython\b`), "coding/python", 2},
	{regexp.MustCompile(`(?i)\b(javascript|typescript)\b`), "coding/javascript", 2},
	{regexp.MustCompile(`(?i)\b(sql|postgres|mysql|sqlite|mongodb|database\s+(schema|design|query))\b`), "database", 2},
	{regexp.MustCompile(`(?i)\b(api\s+(endpoint|call|key)|rest\s*api|graphql|webhook|http\s+(request|response))\b`), "web", 2},
	{regexp.MustCompile(`(?i)\b(figma|wireframe|prototype|ui\s*/?\s*ux|user\s+interface|mockup|responsive\s+design)\b`), "design", 2},
	{regexp.MustCompile(`(?i)\b(essay|blog\s+post|proofread(ing)?|copywriting|thesis|dissertation|write\s+(a|an|my)\s+(blog|article|essay))\b`), "writing", 2},
	{regexp.MustCompile(`(?i)(function\s*\(|class\s+\w+\s*\{|import\s+\{|export\s+(default|const|function)|const\s+\w+\s*=|console\.log|stack\s*trace|\bcompiler\b|runtime\s+error)`), "coding", 3},
	{regexp.MustCompile(`(?i)\b(real\s*estate|property|mortgage|housing|rent(al)?|landlord|lease|condo|apartment)\b`), "real-estate", 2},
	{regexp.MustCompile(`(?i)\b(invest(ment|ing)?|portfolio|stock|crypto|dividend|roi|capital\s+gain)\b`), "finance", 2},
	{regexp.MustCompile(`(?i)\b(citizenship|passport|visa|immigra(tion|te)|residency|green\s*card|work\s*permit)\b`), "immigration", 2},
	{regexp.MustCompile(`(?i)\b(travel|flight|hotel|airbnb|destination|itinerary|vacation|trip)\b`), "travel", 2},
	{regexp.MustCompile(`(?i)\b(health(care)?|medical|doctor|hospital|insurance|wellness|therapy)\b`), "health", 2},
	{regexp.MustCompile(`(?i)\b(machine\s*learning|neural\s*network|deep\s*learning|nlp|transformer|gpt|llm|fine[\s-]*tun(e|ing))\b`), "ai-ml", 2},
}

// Generate scans all segment text against the domain pattern table and
// returns up to five tags namespaced under prefix. Emits the bare prefix
// when nothing matches. Deterministic and idempotent.
func Generate(messages []conversation.Message, prefix string) []string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.Text)
	}
	allText := sb.String()

	prefix = strings.TrimRight(prefix, "/")

	var matched []string
	seen := make(map[string]bool)

	for _, d := range domainPatterns {
		if len(matched) >= maxTags {
			break
		}
		if len(d.pattern.FindAllStringIndex(allText, -1)) < d.minMatches {
			continue
		}
		tag := prefix + "/" + d.tag
		if !seen[tag] {
			seen[tag] = true
			matched = append(matched, tag)
		}
	}

	if len(matched) == 0 {
		return []string{prefix}
	}
	return matched
}

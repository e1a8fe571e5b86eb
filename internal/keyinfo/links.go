package keyinfo

import (
	"net/url"
	"strings"

	"github.com/johns/chatsplit/internal/conversation"
)

// Query parameters that track clicks rather than identify content.
var trackingParams = map[string]bool{
	"utm_source": true, "utm_medium": true, "utm_campaign": true,
	"utm_term": true, "utm_content": true, "fbclid": true, "gclid": true,
	"ref": true, "source": true, "mc_cid": true, "mc_eid": true,
}

// Links collects outbound URLs across the segment, strips tracking
// parameters, normalizes trailing slashes, deduplicates, and renders
// each as a [domain](url) markdown link.
func Links(messages []conversation.Message) []string {
	seen := make(map[string]bool)
	var links []string

	for _, msg := range messages {
		for _, raw := range urlInText.FindAllString(msg.Text, -1) {
			cleaned := cleanURL(raw)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			links = append(links, formatMarkdownLink(cleaned))
		}
	}
	return links
}

func cleanURL(raw string) string {
	cleaned := strings.TrimRight(raw, ".)>,;:!?")

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return cleaned
	}

	query := parsed.Query()
	for key := range query {
		if trackingParams[key] {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()

	cleaned = parsed.String()
	if parsed.Path == "/" && parsed.RawQuery == "" && parsed.Fragment == "" {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}
	return cleaned
}

func formatMarkdownLink(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Hostname() == "" {
		return link
	}
	domain := strings.TrimPrefix(parsed.Hostname(), "www.")
	return "[" + domain + "](" + link + ")"
}

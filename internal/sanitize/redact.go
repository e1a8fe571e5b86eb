package sanitize

import (
	"regexp"
	"strings"
)

var wrapperTagPattern = regexp.MustCompile(
	`</?(?:citation|attachment|image|oai-citation|tool-result|tool-use|thinking|artifact)[^>]*>`,
)

// StripTags removes wrapper tags that chat exporters leave around
// message text.
func StripTags(text string) string {
	return strings.TrimSpace(wrapperTagPattern.ReplaceAllString(text, ""))
}

// Credential shapes that occasionally get pasted into chats and should
// never land in a note.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}\b`),
	regexp.MustCompile(`\bghp_[A-Za-z0-9]{36}\b`),
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|password)\s*[=:]\s*\S{8,}`),
}

// RedactSecrets replaces credential-looking strings with a placeholder.
func RedactSecrets(text string) string {
	for _, p := range secretPatterns {
		text = p.ReplaceAllString(text, "[redacted]")
	}
	return text
}

// Clean applies the full sanitize pass used before notes are written.
func Clean(text string) string {
	return RedactSecrets(StripTags(text))
}

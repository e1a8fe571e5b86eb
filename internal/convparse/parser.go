// Package convparse reads conversation export files into the message
// model the segmentation engine consumes. It accepts plain JSON exports
// and zstd-compressed ones, tolerates unknown fields, filters out system
// and tool turns, and assigns gap-free 0-based indices.
package convparse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/johns/chatsplit/internal/conversation"
)

type rawExport struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Source    string       `json:"source"`
	CreatedAt string       `json:"created_at"`
	Messages  []rawMessage `json:"messages"`
}

type rawMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Content   string `json:"content"` // alternate field name in some exports
	Timestamp string `json:"timestamp"`
}

// ParseFile reads a conversation export from disk. Files ending in .zst
// are decompressed transparently.
func ParseFile(path string) (*conversation.Conversation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	return Parse(r)
}

// Parse reads a JSON conversation export from a reader.
func Parse(r io.Reader) (*conversation.Conversation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	if len(raw.Messages) == 0 {
		return nil, fmt.Errorf("export contains no messages")
	}

	conv := &conversation.Conversation{
		ID:        raw.ID,
		Title:     raw.Title,
		Source:    raw.Source,
		CreatedAt: parseTime(raw.CreatedAt),
	}

	for _, rm := range raw.Messages {
		role := conversation.Role(strings.ToLower(strings.TrimSpace(rm.Role)))
		if role != conversation.RoleUser && role != conversation.RoleAssistant {
			continue // system/tool turns are not conversation content
		}
		text := rm.Text
		if text == "" {
			text = rm.Content
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		conv.Messages = append(conv.Messages, conversation.Message{
			Role:      role,
			Index:     len(conv.Messages),
			Text:      text,
			Timestamp: parseTime(rm.Timestamp),
		})
	}

	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("export contains no user or assistant messages")
	}
	return conv, nil
}

// parseTime accepts RFC 3339 and a couple of common export variants;
// anything unparseable becomes the zero time (timestamp absent).
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

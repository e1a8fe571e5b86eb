// Package importer wires the pipeline together: parse an export,
// segment it (LLM-assisted with heuristic fallback when enabled),
// sanitize, render notes, record the import, and archive the source.
package importer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johns/chatsplit/internal/archive"
	"github.com/johns/chatsplit/internal/config"
	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/convparse"
	"github.com/johns/chatsplit/internal/index"
	"github.com/johns/chatsplit/internal/keyinfo"
	"github.com/johns/chatsplit/internal/ollama"
	"github.com/johns/chatsplit/internal/render"
	"github.com/johns/chatsplit/internal/sanitize"
	"github.com/johns/chatsplit/internal/segment"
)

// Result holds the outcome of one import.
type Result struct {
	ConversationID string
	NotePaths      []string
	Segments       int
	UsedFallback   bool
	Skipped        bool
	Reason         string
}

// Importer processes conversation exports into segment notes.
type Importer struct {
	cfg    config.Config
	store  *index.Store
	logger *zap.Logger
}

// New creates an importer. store may be nil, in which case dedup and
// collision counting are skipped (useful in tests).
func New(cfg config.Config, store *index.Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{cfg: cfg, store: store, logger: logger}
}

// ImportFile processes one export file end to end.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	conv, err := convparse.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if conv.ID == "" {
		conv.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if im.store != nil {
		imported, err := im.store.Has(conv.ID)
		if err != nil {
			return nil, err
		}
		if imported {
			return &Result{ConversationID: conv.ID, Skipped: true, Reason: "already imported"}, nil
		}
	}

	for i := range conv.Messages {
		conv.Messages[i].Text = sanitize.Clean(conv.Messages[i].Text)
	}

	segCfg := im.cfg.SegmentConfig()
	segments, usedFallback := im.segmentConversation(ctx, conv.Messages, segCfg)
	if usedFallback {
		im.logger.Warn("llm segmentation unavailable, heuristic segments written",
			zap.String("conversation", conv.ID))
	}

	notePaths, err := im.writeNotes(conv, segments)
	if err != nil {
		return nil, err
	}

	if im.store != nil {
		if err := im.store.Record(conv, segments, notePaths, usedFallback); err != nil {
			return nil, fmt.Errorf("record import: %w", err)
		}
	}

	if im.cfg.Archive.Compress && !strings.HasSuffix(path, ".zst") {
		if _, err := archive.Archive(path, im.cfg.ArchiveDir()); err != nil {
			// Archive failure should not undo a completed import.
			im.logger.Warn("archive failed", zap.String("path", path), zap.Error(err))
		}
	}

	stats := conversation.ComputeStats(conv.Messages)
	im.logger.Info("imported conversation",
		zap.String("conversation", conv.ID),
		zap.Int("segments", len(segments)),
		zap.Int("messages", len(conv.Messages)),
		zap.Int("words", stats.TotalWords),
		zap.Duration("span", stats.Duration),
		zap.Bool("used_fallback", usedFallback))

	return &Result{
		ConversationID: conv.ID,
		NotePaths:      notePaths,
		Segments:       len(segments),
		UsedFallback:   usedFallback,
	}, nil
}

// segmentConversation picks the configured segmentation path. The LLM
// path reports fallback use; the heuristic path never falls back.
func (im *Importer) segmentConversation(ctx context.Context, messages []conversation.Message, segCfg segment.Config) ([]segment.Segment, bool) {
	if !im.cfg.Ollama.Enabled {
		return segment.Assemble(messages, segCfg), false
	}

	httpc := &http.Client{Timeout: time.Duration(im.cfg.Ollama.TimeoutSeconds) * time.Second}
	client := ollama.NewClient(im.cfg.Ollama.Endpoint, httpc)
	segmenter := ollama.NewSegmenter(client, im.cfg.Ollama.Model, im.logger)
	return segmenter.SegmentWithFallback(ctx, messages, segCfg)
}

func (im *Importer) writeNotes(conv *conversation.Conversation, segments []segment.Segment) ([]string, error) {
	notesDir := im.cfg.NotesDir()
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create notes dir: %w", err)
	}

	date := noteDate(conv)
	paths := make([]string, 0, len(segments))

	for i, seg := range segments {
		info := keyinfo.Extract(seg.Messages, seg.Tags)
		if seg.Summary != "" {
			info.Summary = seg.Summary
		}

		note := render.SegmentNote(render.NoteData{
			Date:              date,
			ConversationID:    conv.ID,
			ConversationTitle: conv.Title,
			Source:            conv.Source,
			SegmentNum:        i + 1,
			SegmentTotal:      len(segments),
			Seg:               seg,
			Info:              info,
			ShowTimestamps:    true,
		})

		path, err := im.notePath(notesDir, date, seg.Title)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
			return nil, fmt.Errorf("write note: %w", err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// notePath builds "{date}-{slug}.md", suffixing a counter when the slug
// is already taken in the catalog or on disk.
func (im *Importer) notePath(notesDir, date, segTitle string) (string, error) {
	slug := render.Slug(segTitle)
	base := date + "-" + slug

	taken := 0
	if im.store != nil {
		n, err := im.store.SlugCount(base)
		if err != nil {
			return "", err
		}
		taken = n
	}

	path := filepath.Join(notesDir, base+".md")
	for i := taken; ; i++ {
		if i > 0 {
			path = filepath.Join(notesDir, fmt.Sprintf("%s-%d.md", base, i+1))
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
}

func noteDate(conv *conversation.Conversation) string {
	if !conv.CreatedAt.IsZero() {
		return conv.CreatedAt.Format("2006-01-02")
	}
	for _, m := range conv.Messages {
		if m.HasTimestamp() {
			return m.Timestamp.Format("2006-01-02")
		}
	}
	return time.Now().Format("2006-01-02")
}

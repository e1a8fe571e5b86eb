// Package index maintains the catalog of imported conversations and
// their segments in a SQLite database inside the vault state directory.
// It exists so re-imports are detected and note names stay unique.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/johns/chatsplit/internal/conversation"
	"github.com/johns/chatsplit/internal/segment"
)

// Store wraps the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at dbPath, creating parent
// directories and the schema as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		title TEXT,
		source TEXT,
		segment_count INTEGER NOT NULL,
		used_fallback INTEGER NOT NULL DEFAULT 0,
		imported_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS segments (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id),
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		note_path TEXT,
		start_index INTEGER NOT NULL,
		end_index INTEGER NOT NULL,
		confidence REAL NOT NULL,
		method TEXT NOT NULL,
		tags TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_segments_conversation ON segments(conversation_id);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Has reports whether a conversation was already imported.
func (s *Store) Has(conversationID string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM conversations WHERE id = ?`, conversationID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query conversation: %w", err)
	}
	return n > 0, nil
}

// Record stores a conversation and its segments. notePaths pairs with
// segments by position and may be nil.
func (s *Store) Record(conv *conversation.Conversation, segments []segment.Segment, notePaths []string, usedFallback bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	fallback := 0
	if usedFallback {
		fallback = 1
	}
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO conversations (id, title, source, segment_count, used_fallback, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		conv.ID, conv.Title, conv.Source, len(segments), fallback, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM segments WHERE conversation_id = ?`, conv.ID); err != nil {
		return fmt.Errorf("clear old segments: %w", err)
	}

	for i, seg := range segments {
		notePath := ""
		if i < len(notePaths) {
			notePath = notePaths[i]
		}
		_, err = tx.Exec(
			`INSERT INTO segments (id, conversation_id, position, title, note_path, start_index, end_index, confidence, method, tags)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			seg.ID, conv.ID, i, seg.Title, notePath, seg.StartIndex, seg.EndIndex,
			seg.Confidence, string(seg.Method), strings.Join(seg.Tags, ","),
		)
		if err != nil {
			return fmt.Errorf("insert segment %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// SlugCount returns how many notes already use a slug, for collision
// suffixes in note naming.
func (s *Store) SlugCount(slug string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM segments WHERE note_path LIKE ?`, "%/"+slug+"%",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("query slug: %w", err)
	}
	return n, nil
}

package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johns/chatsplit/internal/config"
	"github.com/johns/chatsplit/internal/index"
)

const sampleExport = `{
	"id": "conv-42",
	"title": "Escrow Basics",
	"source": "chatgpt",
	"created_at": "2025-03-01T10:00:00Z",
	"messages": [
		{"role": "user", "text": "How do escrow accounts work for a mortgage?"},
		{"role": "assistant", "text": "An escrow account holds funds for taxes and insurance. I recommend reviewing the annual escrow analysis your mortgage servicer sends."},
		{"role": "user", "text": "Thanks, and my api_key=verysecretthing99 leaked into this chat."},
		{"role": "assistant", "text": "You should rotate that credential right away."}
	]
}`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.VaultPath = t.TempDir()
	cfg.InboxPath = filepath.Join(cfg.VaultPath, "inbox")
	cfg.Ollama.Enabled = false
	cfg.Archive.Compress = false
	return cfg
}

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	cfg := testConfig(t)
	path := writeExport(t, t.TempDir(), "export.json", sampleExport)

	im := New(cfg, nil, nil)
	result, err := im.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	if result.ConversationID != "conv-42" {
		t.Errorf("ConversationID = %q", result.ConversationID)
	}
	if result.Skipped || result.UsedFallback {
		t.Errorf("result = %+v", result)
	}
	if result.Segments < 1 || len(result.NotePaths) != result.Segments {
		t.Fatalf("result = %+v", result)
	}

	note, err := os.ReadFile(result.NotePaths[0])
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	text := string(note)
	if !strings.HasPrefix(text, "---\n") {
		t.Error("note missing frontmatter")
	}
	if !strings.Contains(text, "## Transcript") {
		t.Error("note missing transcript")
	}
	if strings.Contains(text, "verysecretthing99") {
		t.Error("secret not redacted before rendering")
	}
}

func TestImportFile_IDFromFilename(t *testing.T) {
	cfg := testConfig(t)
	export := strings.Replace(sampleExport, `"id": "conv-42",`, "", 1)
	path := writeExport(t, t.TempDir(), "my-chat.json", export)

	im := New(cfg, nil, nil)
	result, err := im.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if result.ConversationID != "my-chat" {
		t.Errorf("ConversationID = %q, want filename stem", result.ConversationID)
	}
}

func TestImportFile_SkipsAlreadyImported(t *testing.T) {
	cfg := testConfig(t)
	store, err := index.Open(filepath.Join(cfg.StateDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := writeExport(t, t.TempDir(), "export.json", sampleExport)
	im := New(cfg, store, nil)

	if _, err := im.ImportFile(context.Background(), path); err != nil {
		t.Fatalf("first import: %v", err)
	}
	result, err := im.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !result.Skipped {
		t.Fatal("expected second import to be skipped")
	}
}

func TestImportFile_ArchivesSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive.Compress = true
	path := writeExport(t, t.TempDir(), "export.json", sampleExport)

	im := New(cfg, nil, nil)
	if _, err := im.ImportFile(context.Background(), path); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	archived := filepath.Join(cfg.ArchiveDir(), "export.json.zst")
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archive not written: %v", err)
	}
}

func TestImportFile_BadExport(t *testing.T) {
	cfg := testConfig(t)
	path := writeExport(t, t.TempDir(), "bad.json", "not json at all")

	im := New(cfg, nil, nil)
	if _, err := im.ImportFile(context.Background(), path); err == nil {
		t.Fatal("expected error for malformed export")
	}
}

func TestImportFile_NoteNameCollision(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	first := writeExport(t, dir, "one.json", strings.Replace(sampleExport, "conv-42", "conv-a", 1))
	second := writeExport(t, dir, "two.json", strings.Replace(sampleExport, "conv-42", "conv-b", 1))

	im := New(cfg, nil, nil)
	r1, err := im.ImportFile(context.Background(), first)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	r2, err := im.ImportFile(context.Background(), second)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	for _, p1 := range r1.NotePaths {
		for _, p2 := range r2.NotePaths {
			if p1 == p2 {
				t.Errorf("note path collision: %s", p1)
			}
		}
	}
}

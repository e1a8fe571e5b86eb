package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/johns/chatsplit/internal/segment"
)

// Config holds all chatsplit configuration.
type Config struct {
	VaultPath   string `toml:"vault_path"`
	InboxPath   string `toml:"inbox_path"`
	TagPrefix   string `toml:"tag_prefix"`
	Granularity string `toml:"granularity"`

	// Weights overrides individual signal weights by name; unset signals
	// keep their defaults.
	Weights map[string]float64 `toml:"weights"`

	ContentType string `toml:"content_type"` // "chat" or "document"

	Ollama  OllamaConfig  `toml:"ollama"`
	Archive ArchiveConfig `toml:"archive"`
}

type OllamaConfig struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type ArchiveConfig struct {
	Compress bool `toml:"compress"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		VaultPath:   "~/obsidian/ai-chats",
		InboxPath:   "~/obsidian/ai-chats/inbox",
		TagPrefix:   "ai-chat",
		Granularity: string(segment.Medium),
		ContentType: "chat",
		Ollama: OllamaConfig{
			Enabled:        false,
			Endpoint:       "http://localhost:11434",
			Model:          "llama3.1",
			TimeoutSeconds: 60,
		},
		Archive: ArchiveConfig{
			Compress: true,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.VaultPath = expandHome(cfg.VaultPath)
	cfg.InboxPath = expandHome(cfg.InboxPath)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "chatsplit", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "chatsplit", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// NotesDir returns the directory segment notes are written to.
func (c Config) NotesDir() string {
	return filepath.Join(c.VaultPath, "Chats")
}

// StateDir returns the .chatsplit state directory inside the vault.
func (c Config) StateDir() string {
	return filepath.Join(c.VaultPath, ".chatsplit")
}

// ArchiveDir returns the directory processed exports are archived to.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.StateDir(), "archive")
}

// SegmentConfig assembles the engine configuration from the app config:
// granularity preset, content-type weighting, overrides and tag prefix.
func (c Config) SegmentConfig() segment.Config {
	sc := segment.DefaultConfig(segment.Granularity(c.Granularity))
	if c.ContentType == "document" {
		sc.Weights = segment.DocumentSignalWeights()
	}
	for name, w := range c.Weights {
		sc.Weights[name] = w
	}
	if c.TagPrefix != "" {
		sc.TagPrefix = c.TagPrefix
	}
	return sc
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/johns/chatsplit/internal/config"
	"github.com/johns/chatsplit/internal/importer"
	"github.com/johns/chatsplit/internal/index"
	"github.com/johns/chatsplit/internal/watch"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]
	debug := false
	args = stripFlag(args, "--debug", &debug)

	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	logger, err := newLogger(debug)
	if err != nil {
		fatal("init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	switch args[0] {
	case "import":
		if len(args) < 2 {
			fatal("usage: chatsplit import <export.json>")
		}
		runImport(cfg, logger, args[1])

	case "watch":
		runWatch(cfg, logger)

	case "version":
		fmt.Printf("chatsplit v%s\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		usage()
		os.Exit(1)
	}
}

func runImport(cfg config.Config, logger *zap.Logger, path string) {
	store, err := index.Open(catalogPath(cfg))
	if err != nil {
		fatal("open catalog: %v", err)
	}
	defer store.Close()

	im := importer.New(cfg, store, logger)
	result, err := im.ImportFile(context.Background(), path)
	if err != nil {
		fatal("import: %v", err)
	}

	if result.Skipped {
		fmt.Printf("skipped: %s\n", result.Reason)
		return
	}
	if result.UsedFallback {
		fmt.Println("note: LLM segmentation unavailable, heuristic segmentation used")
	}
	fmt.Printf("created %d notes for %s\n", result.Segments, result.ConversationID)
	for _, p := range result.NotePaths {
		fmt.Printf("  %s\n", p)
	}
}

func runWatch(cfg config.Config, logger *zap.Logger) {
	store, err := index.Open(catalogPath(cfg))
	if err != nil {
		fatal("open catalog: %v", err)
	}
	defer store.Close()

	im := importer.New(cfg, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(cfg.InboxPath, func(path string) {
		if _, err := im.ImportFile(ctx, path); err != nil {
			logger.Error("import failed", zap.String("path", path), zap.Error(err))
		}
	}, logger)

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		fatal("watch: %v", err)
	}
}

func catalogPath(cfg config.Config) string {
	return filepath.Join(cfg.StateDir(), "catalog.db")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func stripFlag(args []string, flag string, set *bool) []string {
	out := args[:0]
	for _, a := range args {
		if a == flag {
			*set = true
			continue
		}
		out = append(out, a)
	}
	return out
}

func usage() {
	fmt.Fprintf(os.Stderr, `chatsplit v%s - split AI chat exports into topic notes

Usage:
  chatsplit import <export.json>   Segment one export into notes
  chatsplit watch                  Watch the inbox dir for new exports
  chatsplit version                Print version
  chatsplit help                   Show this help

Flags:
  --debug    Verbose, human-readable logging

Configuration: ~/.config/chatsplit/config.toml
`, version)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "chatsplit: "+format+"\n", args...)
	os.Exit(1)
}

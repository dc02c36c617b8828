package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jotvault/jot"
	"github.com/jotvault/jot/internal/platform"
	"github.com/jotvault/jot/pkg/adapters/gemini"
	"github.com/jotvault/jot/pkg/adapters/pdf"
	"github.com/jotvault/jot/pkg/core"
	"github.com/jotvault/jot/pkg/notes"
)

// openRepo wires and hydrates the repository for the configured data
// directory. Flag > config file > default for the storage backend.
func openRepo(ctx context.Context) (*notes.Repository, platform.FileConfig, error) {
	cfg, err := platform.LoadConfig(dataDir)
	if err != nil {
		return nil, cfg, err
	}

	kind := storeKind
	if kind == "" {
		kind = cfg.Storage.Backend
	}
	if kind == "" {
		kind = jot.StoreFile
	}

	repo, err := jot.Open(ctx, dataDir,
		jot.WithStoreKind(kind),
		jot.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, cfg, err
	}
	return repo, cfg, nil
}

// newAssistant builds the Gemini assistant from config and env. The
// GEMINI_API_KEY environment variable must be set.
func newAssistant(cfg platform.FileConfig) (core.Assistant, error) {
	return gemini.NewAssistant(gemini.Config{
		Model:            cfg.Gemini.Model,
		MinContentLength: cfg.Gemini.MinContentLength,
		Logger:           slog.Default(),
	})
}

// newSession creates an editor session with the standard adapters.
func newSession(repo *notes.Repository, assistant core.Assistant) *notes.Session {
	return jot.NewSession(repo,
		jot.WithAssistant(assistant),
		jot.WithExporter(pdf.NewExporter()),
		jot.WithLogger(slog.Default()),
	)
}

// confirm asks a yes/no question on stdin. Anything but y/yes is no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// parseCategoryFlag resolves an optional --category value.
func parseCategoryFlag(value string) (core.Category, error) {
	if value == "" {
		return "", nil
	}
	return core.ParseCategory(value)
}

func printNote(n core.Note) {
	marker := " "
	if n.Favorite {
		marker = "*"
	}
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s %-36s  %-8s  %s\n", marker, n.ID, n.Category, title)
}

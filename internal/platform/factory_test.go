package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jotvault/jot/internal/platform"
	"github.com/jotvault/jot/pkg/core"
	"github.com/jotvault/jot/pkg/notes"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("File Store Round Trip", func(t *testing.T) {
		dataDir := t.TempDir()

		repo, err := platform.Open(ctx, dataDir)
		require.NoError(t, err)

		_, err = repo.Upsert(ctx, core.Note{ID: "1", Title: "hello", Category: core.CategoryIdeas})
		require.NoError(t, err)

		// A fresh open over the same directory sees the note.
		fresh, err := platform.Open(ctx, dataDir)
		require.NoError(t, err)
		got, ok := fresh.Get("1")
		require.True(t, ok)
		assert.Equal(t, "hello", got.Title)
	})

	t.Run("SQLite Store Round Trip", func(t *testing.T) {
		dataDir := t.TempDir()

		repo, err := platform.Open(ctx, dataDir, platform.WithStoreKind(platform.StoreSQLite))
		require.NoError(t, err)

		_, err = repo.Upsert(ctx, core.Note{ID: "1", Title: "hello"})
		require.NoError(t, err)

		fresh, err := platform.Open(ctx, dataDir, platform.WithStoreKind(platform.StoreSQLite))
		require.NoError(t, err)
		assert.Equal(t, 1, fresh.Len())
	})

	t.Run("Unknown Store Kind Fails", func(t *testing.T) {
		_, err := platform.Open(ctx, t.TempDir(), platform.WithStoreKind("s3"))
		assert.Error(t, err)
	})

	t.Run("Fails Open On Corrupt Blob", func(t *testing.T) {
		dataDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.json"), []byte("garbage"), 0644))

		repo, err := platform.Open(ctx, dataDir)
		require.NoError(t, err)
		assert.Equal(t, 0, repo.Len())
	})
}

func TestNewSession(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	clock := func() time.Time { return time.UnixMilli(42) }
	repo, err := platform.Open(ctx, dataDir, platform.WithClock(clock))
	require.NoError(t, err)

	session := platform.NewSession(repo,
		platform.WithClock(clock),
		platform.WithIDGenerator(func() string { return "fixed-id" }),
	)

	draft, err := session.OpenForCreate()
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", draft.ID)
	assert.Equal(t, int64(42), draft.UpdatedAt)
	assert.Equal(t, notes.StateDraftNew, session.State())
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing File Yields Zero Config", func(t *testing.T) {
		cfg, err := platform.LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.Storage.Backend)
	})

	t.Run("Parses Backend And Gemini Settings", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "storage:\n  backend: sqlite\ngemini:\n  model: gemini-flash-latest\n  min_content_length: 30\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, platform.ConfigFilename), []byte(yaml), 0644))

		cfg, err := platform.LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
		assert.Equal(t, "gemini-flash-latest", cfg.Gemini.Model)
		assert.Equal(t, 30, cfg.Gemini.MinContentLength)
	})

	t.Run("Malformed File Is An Error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, platform.ConfigFilename), []byte("\tnot yaml"), 0644))

		_, err := platform.LoadConfig(dir)
		assert.Error(t, err)
	})
}

package logger

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextHandlerLowercasesLevel(t *testing.T) {
	Level.Set(slog.LevelInfo)
	var buf bytes.Buffer
	log := New(&buf)

	log.Info("table state committed", "version", 3)
	log.Debug("hidden")

	out := buf.String()
	require.Contains(t, out, "level=info")
	require.Contains(t, out, "version=3")
	require.NotContains(t, out, "hidden")
}

func TestSetByName(t *testing.T) {
	t.Cleanup(func() { Level.Set(slog.LevelInfo) })

	Level.SetByName("DEBUG")
	require.True(t, Level.Enabled(slog.LevelDebug))

	Level.SetByName("warning")
	require.False(t, Level.Enabled(slog.LevelInfo))
	require.True(t, Level.Enabled(slog.LevelError))

	Level.SetByName("bogus")
	require.False(t, Level.Enabled(slog.LevelInfo), "unknown names keep the current level")
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "coltable.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	New(f).Warn("written")
	require.FileExists(t, path)
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/carelogin/internal/config"
)

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn", "json")
	log.Info().Msg("hidden")
	log.Warn().Str("attempt", "a1").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "shown", entry["message"])
	require.Equal(t, "a1", entry["attempt"])
	require.Equal(t, "carelogin", entry["app"])
}

func TestNewWriterBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "loud", "json")
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestNewWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info", "console")
	log.Info().Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carelogin.log")
	log, closer, err := New(config.LogConfig{Path: path, Level: "info", Format: "json"})
	require.NoError(t, err)
	log.Info().Msg("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written")
}

package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunLogsFailure(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	code := run(newRootCmd(), []string{"calibrate", "--env", "missing.env"})
	require.Equal(t, 1, code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "ERROR", entry["level"])
	require.Equal(t, "volsurf failed", entry["msg"])
	require.Contains(t, entry["err"], "payload")
}

func TestRunHelp(t *testing.T) {
	require.Equal(t, 0, run(newRootCmd(), []string{"--help"}))
}

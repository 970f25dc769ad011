package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", FileNameLog)
	logger, err := NewLogger(path, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, path, logger.Path())

	logger.Info("opened %s", "ride.csv")
	logger.Warning("backup of %s failed", "ride.csv")
	logger.Error("boom")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[INFO] opened ride.csv")
	assert.Contains(t, content, "[WARNING] backup of ride.csv failed")
	assert.Contains(t, content, "[ERROR] boom")
}

func TestLoggerRotatesOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileNameLog)
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	logger, err := NewLogger(path, 1, 1)
	require.NoError(t, err)
	logger.Info("fresh")
	require.NoError(t, logger.Close())

	rotated, err := filepath.Glob(filepath.Join(dir, "ridekeeper_*.log"))
	require.NoError(t, err)
	require.Len(t, rotated, 1)
	data, err := os.ReadFile(rotated[0])
	require.NoError(t, err)
	assert.Equal(t, "old line\n", string(data))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old line")
	assert.Contains(t, string(data), "fresh")
}

func TestFlushEarlyLogs(t *testing.T) {
	CaptureEarlyLog(SeverityWarning, "config dir %s missing", "/nowhere")

	path := filepath.Join(t.TempDir(), FileNameLog)
	logger, err := NewLogger(path, 1, 1)
	require.NoError(t, err)
	FlushEarlyLogs(logger)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARNING] config dir /nowhere missing")
	assert.Contains(t, string(data), "Flushing")
}

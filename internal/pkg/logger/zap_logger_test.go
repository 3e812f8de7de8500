package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.log")
	l := NewIsolatedLogger(path)

	l.Info("Hub", "Client registered", map[string]interface{}{"user_id": "u1"})
	l.Debug("Hub", "below file level", nil)
	l.Error("Hub", "boom", map[string]interface{}{"error": "broken pipe"})
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 2)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "Hub", lines[0]["module"])
	assert.Equal(t, "Client registered", lines[0]["message"])
	assert.Equal(t, "broken pipe", lines[1]["error_ref"])
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	l.Warn("Any", "dropped", nil)
	assert.NoError(t, l.Sync())
}

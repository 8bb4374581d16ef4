package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	sink, err := NewFileSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Append(testEntry("flight_time", 12)))
	failed := testEntry("per_diem", 3)
	failed.Success = false
	failed.Error = "rate table corrupt"
	require.NoError(t, sink.Append(failed))
	require.NoError(t, sink.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, "flight_time", entries[0].Stage)
	assert.Equal(t, "exec-1", entries[0].ExecutionID)
	assert.True(t, entries[0].Success)
	assert.Equal(t, "rate table corrupt", entries[1].Error)
}

func TestFileSinkAppendsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	first, err := NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, first.Append(testEntry("flight_time", 1)))
	require.NoError(t, first.Close())

	second, err := NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, second.Append(testEntry("duty_time", 2)))
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
}

func TestFileSinkOpenFailure(t *testing.T) {
	_, err := NewFileSink(filepath.Join(t.TempDir(), "missing", "audit.jsonl"))
	assert.Error(t, err)
}

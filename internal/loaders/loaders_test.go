package loaders

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadJSONKeepsNumberText(t *testing.T) {
	path := writeFile(t, "ann.json", `{"id": 1, "bbox": [0.48, 12]}`)

	v, err := ReadJSON(path)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), m["id"])

	bbox, ok := m["bbox"].([]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("0.48"), bbox[0])
}

func TestReadJSONMalformed(t *testing.T) {
	path := writeFile(t, "bad.json", `{"id":`)
	_, err := ReadJSON(path)
	assert.Error(t, err)
}

func TestReadJSONMissingFile(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestReadTextScalarsAndRows(t *testing.T) {
	path := writeFile(t, "labels.txt", "cat\n\n0 0.5 0.5 0.2 0.1\ndog\n")

	lines, err := ReadText(path)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "cat", lines[0])
	row, ok := lines[1].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"0", "0.5", "0.5", "0.2", "0.1"}, row)
	assert.Equal(t, "dog", lines[2])
}

func TestReadTextEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", "")
	lines, err := ReadText(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/lakegate/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeysFromFile_ValidJSON(t *testing.T) {
	t.Parallel()

	content := `[
		{"name": "default", "value": "q1w2e3r4t5y6"},
		{"name": "ingest-job", "value": "z9x8c7v6b5n4"}
	]`

	path := writeTestFile(t, content)

	keys, err := keybackend.LoadKeysFromFile(path)
	require.NoError(t, err)

	assert.Len(t, keys, 2)
	assert.Equal(t, "default", keys["q1w2e3r4t5y6"])
	assert.Equal(t, "ingest-job", keys["z9x8c7v6b5n4"])
}

func TestLoadKeysFromFile_EmptyArray(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, `[]`)

	keys, err := keybackend.LoadKeysFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLoadKeysFromFile_SkipsEmptyValues(t *testing.T) {
	t.Parallel()

	content := `[
		{"name": "no-value", "value": ""},
		{"name": "", "value": "unnamed"},
		{"name": "valid", "value": "valid_value"}
	]`

	path := writeTestFile(t, content)

	keys, err := keybackend.LoadKeysFromFile(path)
	require.NoError(t, err)

	assert.Len(t, keys, 2)
	assert.Equal(t, "default", keys["unnamed"])
	assert.Equal(t, "valid", keys["valid_value"])
}

func TestLoadKeysFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := keybackend.LoadKeysFromFile("/nonexistent/path/keys.json")
	assert.ErrorContains(t, err, "read keys file")
}

func TestLoadKeysFromFile_InvalidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not json"},
		{name: "json object instead of array", content: `{"name": "default", "value": "v"}`},
		{name: "malformed json", content: `[{"name": "default", "value": "v"`},
		{name: "array of strings", content: `["key1", "key2"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestFile(t, tt.content)

			_, err := keybackend.LoadKeysFromFile(path)
			assert.ErrorContains(t, err, "parse keys file")
		})
	}
}

func TestLoadKeysFromFile_DuplicateValues(t *testing.T) {
	t.Parallel()

	content := `[
		{"name": "first", "value": "DUPLICATE"},
		{"name": "second", "value": "DUPLICATE"}
	]`

	path := writeTestFile(t, content)

	keys, err := keybackend.LoadKeysFromFile(path)
	require.NoError(t, err)

	assert.Len(t, keys, 1)
	// Last one wins
	assert.Equal(t, "second", keys["DUPLICATE"])
}

// writeTestFile is a test helper that creates a temporary file with the given content
func writeTestFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/archive")
	assert.Equal(t, filepath.Join(home, "archive"), expanded)

	abs := expandPath("relative/path")
	assert.True(t, filepath.IsAbs(abs))
	assert.True(t, strings.HasSuffix(abs, filepath.Join("relative", "path")))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, ensureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on existing directories.
	assert.NoError(t, ensureDir(dir))
}

func TestRunSchemaCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.js")
	content := `window.YTD.tweets.part0 = [{"tweet": {"id_str": "1"}}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	sampleLimit = 10
	assert.NoError(t, runSchema(schemaCmd, []string{path}))
}

func TestRunSchemaCommandMissingFile(t *testing.T) {
	sampleLimit = 10
	err := runSchema(schemaCmd, []string{filepath.Join(t.TempDir(), "absent.js")})
	assert.Error(t, err)
}

func TestRunSplitCommandValidation(t *testing.T) {
	splitIn = ""
	splitOut = ""
	assert.Error(t, runSplit(splitCmd, nil))

	splitIn = "some.js"
	assert.Error(t, runSplit(splitCmd, nil))
}

func TestRunSplitCommand(t *testing.T) {
	inPath := filepath.Join(t.TempDir(), "tweets.js")
	content := `window.YTD.tweets.part0 = [{"tweet": {"id_str": "1"}}, {"tweet": {"id_str": "2"}}]`
	require.NoError(t, os.WriteFile(inPath, []byte(content), 0644))

	splitIn = inPath
	splitOut = t.TempDir()
	splitChunkSize = 1
	splitOverwrite = false
	require.NoError(t, runSplit(splitCmd, nil))

	entries, err := os.ReadDir(splitOut)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

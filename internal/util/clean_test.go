package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problems.txt")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCleanFileContent(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("سرقة\u200f كتاب\r\nتسريب مية")...)
	got, err := CleanFileContent(in, "test")
	require.NoError(t, err)
	assert.Equal(t, "سرقة كتاب\nتسريب مية", got)
}

func TestCleanFileContent_InvalidUTF8(t *testing.T) {
	got, err := CleanFileContent([]byte{'a', 0xff, 'b'}, "test")
	require.NoError(t, err)
	assert.Equal(t, "a\ufffdb", got)
}

func TestReadProblemLines(t *testing.T) {
	path := writeFile(t, []byte("سرقة كتاب\n\nالكمبيوتر مش شغال\n"))
	lines, err := ReadProblemLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"سرقة كتاب", "", "الكمبيوتر مش شغال"}, lines)

	empty, err := ReadProblemLines(writeFile(t, nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReadProblemLines_RejectsBinary(t *testing.T) {
	_, err := ReadProblemLines(writeFile(t, []byte{'a', 0, 'b'}))
	assert.Error(t, err)

	_, err = ReadProblemLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

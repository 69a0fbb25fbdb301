//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package crp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCorpusFormat(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "corpus.json")
	entries := []str.CorpusEntry{
		{ID: 2, Description: "курс python"},
		{ID: 1, Description: "<b> & данные"},
	}
	require.NoError(t, WriteCorpus(fn, entries))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)

	want := `[
    {
        "id": 2,
        "description": "курс python"
    },
    {
        "id": 1,
        "description": "<b> & данные"
    }
]
`
	assert.Equal(t, want, string(b))
}

func TestWriteCorpusEmpty(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, WriteCorpus(fn, nil))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(b)))
}

func TestReadCorpusRoundTripKeepsOrder(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "corpus.json")
	entries := []str.CorpusEntry{{ID: 9, Description: "ёж"}, {ID: 3, Description: ""}, {ID: 5, Description: "go"}}
	require.NoError(t, WriteCorpus(fn, entries))

	got, err := ReadCorpus(fn)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.Equal(t, []string{"ёж", "", "go"}, Descriptions(got))
}

func TestWriteCorpusFailureLeavesOldFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(fn, []byte("[]\n"), 0644))

	// a directory in the way of the rename
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0755))
	err := WriteCorpus(blocked, []str.CorpusEntry{{ID: 1, Description: "x"}})
	assert.Error(t, err)

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))

	left, err := filepath.Glob(filepath.Join(dir, ".corpus-*"))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestWriteCorpusMissingDir(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "nope", "corpus.json")
	assert.Error(t, WriteCorpus(fn, nil))
	_, err := os.Stat(fn)
	assert.True(t, os.IsNotExist(err))
}

func TestReadCorpusErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadCorpus(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id": 1`), 0644))
	_, err = ReadCorpus(bad)
	assert.Error(t, err)
}

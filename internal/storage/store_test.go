package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), "/media/u")
	require.NoError(t, err)
	return s
}

func TestPutAndPath(t *testing.T) {
	s := newTestStore(t)

	url, err := s.Put(7, "cat.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/u/7/cat.png", url)

	p, err := s.Path(7, "cat.png")
	require.NoError(t, err)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestPutOverwritesSameName(t *testing.T) {
	s := newTestStore(t)

	url1, err := s.Put(7, "cat.png", []byte("v1"))
	require.NoError(t, err)
	url2, err := s.Put(7, "cat.png", []byte("v2"))
	require.NoError(t, err)
	assert.Equal(t, url1, url2)

	p, err := s.Path(7, "cat.png")
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data, "later upload wins")
}

func TestPutRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	url, err := s.Put(7, "../../etc/passwd", []byte("nope"))
	require.NoError(t, err, "base name is extracted, not rejected")
	assert.Equal(t, "/media/u/7/passwd", url)

	_, err = s.Put(7, "", []byte("nope"))
	assert.Error(t, err)

	_, err = s.Path(7, "..")
	assert.Error(t, err)
}

func TestPathMissingBlob(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Path(7, "missing.png")
	assert.Error(t, err)
}

func TestAuthorsIsolated(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Put(1, "a.png", []byte("one"))
	require.NoError(t, err)
	_, err = s.Put(2, "a.png", []byte("two"))
	require.NoError(t, err)

	p1, err := s.Path(1, "a.png")
	require.NoError(t, err)
	p2, err := s.Path(2, "a.png")
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Dir(p1), filepath.Dir(p2))
}

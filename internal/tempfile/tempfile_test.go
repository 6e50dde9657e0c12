package tempfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stickyFs refuses to remove anything while sticky is true.
type stickyFs struct {
	afero.Fs
	sticky bool
}

func (f *stickyFs) Remove(name string) error {
	if f.sticky {
		return &os.PathError{Op: "remove", Path: name, Err: errors.New("device busy")}
	}
	return f.Fs.Remove(name)
}

func TestSet_WriteHTML(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/tmp", "chromepdf", nil)

	path, err := s.WriteHTML("<p>hello</p>")
	require.NoError(t, err)

	assert.Equal(t, ".html", filepath.Ext(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "chromepdf"))
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", string(data))
	assert.Equal(t, []string{path}, s.Paths())
}

func TestSet_Cleanup(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/tmp", "chromepdf", nil)

	a, err := s.WriteHTML("a")
	require.NoError(t, err)
	b, err := s.WriteHTML("b")
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	require.NoError(t, s.Cleanup())
	assert.Zero(t, s.Len())
	for _, p := range []string{a, b} {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, exists, "%s should be removed", p)
	}
}

func TestSet_CleanupToleratesMissingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/tmp", "chromepdf", nil)

	p, err := s.WriteHTML("gone")
	require.NoError(t, err)
	require.NoError(t, fs.Remove(p))

	assert.NoError(t, s.Cleanup())
	assert.Zero(t, s.Len())
}

func TestSet_CleanupKeepsFailures(t *testing.T) {
	fs := &stickyFs{Fs: afero.NewMemMapFs(), sticky: true}
	s := New(fs, "/tmp", "chromepdf", nil)

	p, err := s.WriteHTML("stuck")
	require.NoError(t, err)

	err = s.Cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device busy")
	assert.Equal(t, []string{p}, s.Paths())

	fs.sticky = false
	require.NoError(t, s.Cleanup())
	assert.Zero(t, s.Len())
}

func TestSet_CreateIsNotTracked(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/tmp", "chromepdf", nil)

	p, err := s.Create()
	require.NoError(t, err)

	assert.Zero(t, s.Len())
	exists, err := afero.Exists(fs, p)
	require.NoError(t, err)
	assert.True(t, exists)
}

// Package tempfile tracks temporary files that must outlive their creation
// but not the render call that created them.
package tempfile

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Set is a group of temporary files on one filesystem. Files that fail to
// be removed stay in the set so a later Cleanup can retry them.
//
// A Set is not safe for concurrent use.
type Set struct {
	fs     afero.Fs
	dir    string
	prefix string
	logger *zap.Logger
	paths  []string
}

// New returns an empty Set creating files in dir (os.TempDir when empty)
// with names starting with prefix.
func New(fs afero.Fs, dir, prefix string, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Set{fs: fs, dir: dir, prefix: prefix, logger: logger}
}

// WriteHTML stores content in a new file with a .html extension, which
// Chrome needs to load it as markup, and returns its path.
func (s *Set) WriteHTML(content string) (string, error) {
	f, err := afero.TempFile(s.fs, s.dir, s.prefix+"*.html")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	name := f.Name()
	s.paths = append(s.paths, name)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "writing temp file %s", name)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "closing temp file %s", name)
	}
	return name, nil
}

// Create makes an empty file outside the set and returns its path. The
// caller owns it.
func (s *Set) Create() (string, error) {
	f, err := afero.TempFile(s.fs, s.dir, s.prefix)
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "closing temp file %s", name)
	}
	return name, nil
}

// Paths returns the files currently tracked.
func (s *Set) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Len returns the number of files currently tracked.
func (s *Set) Len() int {
	return len(s.paths)
}

// Cleanup removes every tracked file. Files already gone count as removed.
// Failures are logged, kept for the next Cleanup and returned together.
func (s *Set) Cleanup() error {
	var result *multierror.Error
	var kept []string
	for _, p := range s.paths {
		if err := s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove temp file", zap.String("path", p), zap.Error(err))
			result = multierror.Append(result, err)
			kept = append(kept, p)
		}
	}
	s.paths = kept
	return result.ErrorOrNil()
}

package domain

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "mvnscan/internal/model"
)

// SourceEnumerator recursively lists source files below a directory root. A
// missing root is success with an empty result; an I/O failure while walking
// an existing tree is fatal.
type SourceEnumerator struct {
	logger  *slog.Logger
	exclude []*regexp.Regexp
}

// NewSourceEnumerator constructs a SourceEnumerator. Exclude patterns filter
// enumerated paths by regular expression match.
func NewSourceEnumerator(logger *slog.Logger, excludePatterns []string) (*SourceEnumerator, error) {
	exclude := make([]*regexp.Regexp, 0, len(excludePatterns))

	for _, pattern := range excludePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}

		exclude = append(exclude, re)
	}

	return &SourceEnumerator{logger: logger, exclude: exclude}, nil
}

// ListSources returns every non-directory entry below root whose name ends
// with ext, in lexical traversal order. The order is stable across runs over
// an unchanged tree.
func (e *SourceEnumerator) ListSources(root m.Path, ext string) ([]m.Path, error) {
	if _, err := os.Stat(string(root)); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var sources []m.Path

	err := filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			return nil
		}

		if e.excluded(path) {
			e.logger.Debug("excluding source file", "path", path)
			return nil
		}

		sources = append(sources, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, &m.FileSystemWalkError{Root: root, Err: err}
	}

	return sources, nil
}

func (e *SourceEnumerator) excluded(path string) bool {
	for _, re := range e.exclude {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

package store

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsPattern reports whether p contains glob metacharacters.
func IsPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// ResolvePaths expands a log path that may be a doublestar glob such as
// "logs/**/*.csv". A plain path is returned unchanged, whether or not it exists.
// A pattern matching nothing yields an error wrapping fs.ErrNotExist, so it
// reads like a log that was never written.
func ResolvePaths(pattern string) ([]string, error) {
	if !IsPattern(pattern) {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no log files match %q: %w", pattern, fs.ErrNotExist)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadPattern resolves pattern and loads every matching log.
func LoadPattern(pattern string) (*LoadResult, error) {
	paths, err := ResolvePaths(pattern)
	if err != nil {
		return nil, err
	}
	return LoadAll(paths)
}

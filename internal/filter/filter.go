// SPDX-License-Identifier: Apache-2.0

// Package filter implements the --include/--exclude/--timestamps-for glob
// filtering described in spec.md §6, matching GitTimes.is_filtered in the
// original implementation's test suite.
package filter

import (
	"path/filepath"

	"github.com/danwakefield/fnmatch"
)

// RelPath computes path relative to parentDir, matching GitTimes.relpath_for
// in the original implementation: equal paths render as the empty string,
// an empty or "." parentDir leaves path untouched, and a path outside
// parentDir renders as a "../"-prefixed relative path (which IsFiltered
// then drops).
func RelPath(path, parentDir string) string {
	if parentDir == "" || parentDir == "." {
		return path
	}
	if path == parentDir {
		return ""
	}

	rel, err := filepath.Rel(parentDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Options holds the three glob-pattern lists. TimestampsFor, when set, is an
// unconditional whitelist. Include, when set, is also a whitelist: a path
// must match at least one Include pattern to be kept. Exclude wins over
// Include: a path any Exclude pattern matches is dropped even if an Include
// pattern matches it too.
type Options struct {
	Include       []string
	Exclude       []string
	TimestampsFor []string
}

// IsFiltered reports whether relpath should be dropped from consideration.
// relpath is assumed already computed relative to the considered subtree
// (see the RelPath helper above); a path starting with "../" — i.e.
// outside the subtree — is always filtered, independent of the other
// rules.
func IsFiltered(relpath string, opts Options) bool {
	if hasDotDotPrefix(relpath) {
		return true
	}

	if len(opts.TimestampsFor) > 0 && !anyMatch(relpath, opts.TimestampsFor) {
		return true
	}

	if len(opts.Exclude) > 0 && anyMatch(relpath, opts.Exclude) {
		return true
	}

	return len(opts.Include) > 0 && !anyMatch(relpath, opts.Include)
}

func anyMatch(relpath string, patterns []string) bool {
	for _, pattern := range patterns {
		if fnmatch.Match(pattern, relpath, 0) {
			return true
		}
	}
	return false
}

func hasDotDotPrefix(relpath string) bool {
	return len(relpath) >= 3 && relpath[0] == '.' && relpath[1] == '.' && relpath[2] == '/'
}

// SPDX-License-Identifier: Apache-2.0

// Package gitmitcache implements the on-disk Attribution Cache (spec.md
// §4.E): a small bounded JSON sidecar file that memoizes a prior walk's
// result for a (subtree, sorted target paths) key, so a repeat run with an
// unchanged HEAD can skip the walker entirely.
package gitmitcache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// capacity is the maximum number of records kept in the cache file.
const capacity = 5

const fileName = "gitmit_cached_commit_times.json"

// Record is one cache entry. Field names match the JSON keys specified in
// spec.md §6 exactly: parent_dir, sorted_relpaths, commit, commit_times.
type Record struct {
	ParentDir      string           `json:"parent_dir"`
	SortedRelpaths []string         `json:"sorted_relpaths"`
	Commit         string           `json:"commit"`
	CommitTimes    map[string]int64 `json:"commit_times"`
}

// Location returns the cache file's path under gitDir (the repository's
// GIT_DIR, typically "<root>/.git").
func Location(gitDir string) string {
	return filepath.Join(gitDir, fileName)
}

// ReadAll returns every record in the cache file, or an empty slice if the
// file is missing, unreadable, or does not parse as a JSON array of
// records: the cache is tolerant by design (spec.md §4.E), never a source
// of fatal error.
func ReadAll(gitDir string) []Record {
	data, err := os.ReadFile(Location(gitDir))
	if err != nil {
		return nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Debug("cache file did not parse, treating as empty", "error", err.Error())
		return nil
	}
	return records
}

// Lookup scans records for one matching (parentDir, sortedRelpaths) exactly
// and returns it. The caller is responsible for deciding whether the
// record's Commit still matches the repository's current HEAD.
func Lookup(gitDir, parentDir string, sortedRelpaths []string) (Record, bool) {
	for _, r := range ReadAll(gitDir) {
		if r.ParentDir == parentDir && slices.Equal(r.SortedRelpaths, sortedRelpaths) {
			return r, true
		}
	}
	return Record{}, false
}

// Set inserts or updates a record. An existing record with a matching
// (parentDir, sortedRelpaths) is updated in place, preserving its position
// in the sequence; otherwise the record is appended, evicting the oldest
// entry if that pushes the sequence past capacity. Write failures
// (including a missing .git directory) are swallowed: the cache is an
// optimization, never a correctness dependency (spec.md §4.E, §7).
func Set(gitDir string, record Record) {
	if _, err := os.Stat(gitDir); err != nil {
		return
	}

	records := ReadAll(gitDir)

	updated := false
	for i, r := range records {
		if r.ParentDir == record.ParentDir && slices.Equal(r.SortedRelpaths, record.SortedRelpaths) {
			records[i] = record
			updated = true
			break
		}
	}
	if !updated {
		records = append(records, record)
		if len(records) > capacity {
			records = records[len(records)-capacity:]
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		slog.Debug("unable to marshal cache records", "error", err.Error())
		return
	}

	if err := os.WriteFile(Location(gitDir), data, 0o644); err != nil {
		slog.Debug("unable to write cache file", "error", err.Error())
	}
}

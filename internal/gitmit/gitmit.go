// SPDX-License-Identifier: Apache-2.0

// Package gitmit orchestrates the whole run: it collects tracked paths from
// the repository adapter, expands symlinks, applies the include/exclude/
// timestamps-for filters, builds the prefix tree, drives the history
// walker, and consults the Attribution Cache — playing the role of
// GitTimes.find in the original implementation's test suite.
package gitmit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gitmit/gitmit/internal/common/set"
	"github.com/gitmit/gitmit/internal/filter"
	"github.com/gitmit/gitmit/internal/gitmitcache"
	"github.com/gitmit/gitmit/internal/gitrepo"
	"github.com/gitmit/gitmit/internal/oid"
	"github.com/gitmit/gitmit/internal/prefixtree"
	"github.com/gitmit/gitmit/internal/symlink"
	"github.com/gitmit/gitmit/internal/treediff"
	"github.com/gitmit/gitmit/internal/walker"
)

// Options configures one run, gathering the flags described in
// SPEC_FULL.md §2.1.
type Options struct {
	RootFolder    string
	Consider      string
	Include       []string
	Exclude       []string
	TimestampsFor []string
	NoCache       bool
}

// Run computes the mapping of path (relative to Consider) to the epoch
// seconds of the commit that last changed it.
func Run(opts Options) (map[string]int64, error) {
	repo, err := gitrepo.Open(opts.RootFolder)
	if err != nil {
		return nil, fmt.Errorf("unable to open repository: %w", err)
	}

	head, err := repo.HeadOid()
	if err != nil {
		return nil, fmt.Errorf("unable to resolve HEAD: %w", err)
	}

	considerPrefix := oid.Split(filepath.ToSlash(filepath.Clean(opts.Consider)))

	allFiles, err := repo.AllFiles()
	if err != nil {
		return nil, fmt.Errorf("unable to list tracked files: %w", err)
	}

	filterOpts := filter.Options{Include: opts.Include, Exclude: opts.Exclude, TimestampsFor: opts.TimestampsFor}

	links, err := symlink.Expand(opts.RootFolder, filepath.Join(opts.RootFolder, opts.Consider))
	if err != nil {
		slog.Warn("unable to expand symlinks, continuing without them", "error", err.Error())
		links = nil
	}

	symlinkRelpaths := set.NewSet[string]()
	for _, link := range links {
		symlinkRelpaths.Add(link.Path)
	}

	// When Consider itself names a symlink, its own tracked blob (relpath
	// "") is wholly superseded by the expansion above and must not also
	// surface as a regular target under the empty key.
	if info, statErr := os.Lstat(filepath.Join(opts.RootFolder, opts.Consider)); statErr == nil && info.Mode()&os.ModeSymlink != 0 {
		symlinkRelpaths.Add("")
	}

	type regularTarget struct {
		full    oid.Path
		relpath string
	}

	var regulars []regularTarget
	for _, full := range allFiles {
		relPath, outside := stripPrefix(full, considerPrefix)
		if outside {
			continue
		}
		relStr := relPath.String()
		if symlinkRelpaths.Has(relStr) {
			continue // attributed via its target instead, below
		}
		if filter.IsFiltered(relStr, filterOpts) {
			continue
		}
		regulars = append(regulars, regularTarget{full: full, relpath: relStr})
	}

	type symlinkTarget struct {
		relpath string
		full    oid.Path
	}

	var symlinkTargets []symlinkTarget
	for _, link := range links {
		if filter.IsFiltered(link.Path, filterOpts) {
			continue
		}
		symlinkTargets = append(symlinkTargets, symlinkTarget{
			relpath: link.Path,
			full:    oid.Split(link.TargetPath),
		})
	}

	allTargets := make([]oid.Path, 0, len(regulars)+len(symlinkTargets))
	for _, r := range regulars {
		allTargets = append(allTargets, r.full)
	}
	for _, s := range symlinkTargets {
		allTargets = append(allTargets, s.full)
	}

	sortedRelpaths := make([]string, 0, len(regulars))
	for _, r := range regulars {
		sortedRelpaths = append(sortedRelpaths, r.relpath)
	}
	sort.Strings(sortedRelpaths)

	if !opts.NoCache {
		if record, ok := gitmitcache.Lookup(repo.GitDir(), opts.Consider, sortedRelpaths); ok && record.Commit == head.String() {
			slog.Debug("attribution cache hit", "consider", opts.Consider)
			return record.CommitTimes, nil
		}
	}

	tree := prefixtree.New()
	tree.Fill(allTargets)

	engine := treediff.New(repo)
	walked := walker.Walk(head, repo, engine, tree)

	output := map[string]int64{}
	for _, r := range regulars {
		if t, ok := walked[r.full.String()]; ok {
			output[r.relpath] = t
		}
	}
	for _, s := range symlinkTargets {
		if t, ok := walked[s.full.String()]; ok {
			output[s.relpath] = t
		}
	}

	if !opts.NoCache {
		gitmitcache.Set(repo.GitDir(), gitmitcache.Record{
			ParentDir:      opts.Consider,
			SortedRelpaths: sortedRelpaths,
			Commit:         head.String(),
			CommitTimes:    output,
		})
	}

	return output, nil
}

// stripPrefix returns full with prefix removed, and reports outside=true if
// full does not lie under prefix at all.
func stripPrefix(full, prefix oid.Path) (rel oid.Path, outside bool) {
	if len(prefix) > len(full) {
		return nil, true
	}
	for i, name := range prefix {
		if full[i] != name {
			return nil, true
		}
	}
	return full[len(prefix):], false
}

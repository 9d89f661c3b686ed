// SPDX-License-Identifier: Apache-2.0

// Package gitrepo is the read-only repository adapter (spec.md §4.B): it
// resolves the HEAD commit, lists the files tracked by the index, fetches
// tree entries by oid, and hands commits to the walker.
package gitrepo

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gitmit/gitmit/internal/oid"
	"github.com/gitmit/gitmit/internal/walker"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/jonboulle/clockwork"
)

const binary = "git"

// ErrRepositoryPathNotSpecified mirrors the teacher's sentinel for a
// missing repository path argument.
var ErrRepositoryPathNotSpecified = errors.New("repository path not specified")

// Repository is a thin wrapper locating a repository's GIT_DIR and
// providing read-only access to its object database through go-git.
type Repository struct {
	gitDirPath string
	goGit      *git.Repository
	clock      clockwork.Clock
}

// Open finds the GIT_DIR for repositoryPath (following the same
// `git rev-parse --git-dir` discovery the teacher's LoadRepository uses,
// which correctly handles worktrees, bare repos given via GIT_DIR, and
// repositories opened from a subdirectory) and opens it with go-git.
func Open(repositoryPath string) (*Repository, error) {
	if repositoryPath == "" {
		return nil, ErrRepositoryPathNotSpecified
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("unable to find Git binary, is Git installed? %w", err)
	}

	gitDirPath, err := gitDirFor(repositoryPath)
	if err != nil {
		return nil, fmt.Errorf("unable to identify git directory: %w", err)
	}

	goGit, err := git.PlainOpenWithOptions(gitDirPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("unable to open repository at %q: %w", gitDirPath, err)
	}

	return &Repository{gitDirPath: gitDirPath, goGit: goGit, clock: clockwork.NewRealClock()}, nil
}

func gitDirFor(repositoryPath string) (string, error) {
	cmd := exec.Command(binary, "-C", repositoryPath, "rev-parse", "--absolute-git-dir")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return filepath.Clean(strings.TrimSpace(string(out))), nil
}

// GitDir returns the resolved GIT_DIR path, used by the Attribution Cache
// to locate its sidecar file.
func (r *Repository) GitDir() string {
	return r.gitDirPath
}

// HeadOid resolves HEAD to its commit oid (spec.md §4.B `first_commit`).
func (r *Repository) HeadOid() (oid.Oid, error) {
	ref, err := r.goGit.Head()
	if err != nil {
		return oid.Zero, fmt.Errorf("unable to resolve HEAD: %w", err)
	}
	return ref.Hash(), nil
}

// AllFiles returns every path tracked in HEAD's index (spec.md §4.B
// `all_files`). Paths staged for deletion are absent from the index and so
// are absent here too; this mirrors the documented, intentional asymmetry
// versus working-tree deletions (spec.md §9 open question), which are not
// consulted at all since only the index is read.
func (r *Repository) AllFiles() ([]oid.Path, error) {
	idx, err := r.goGit.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("unable to read index: %w", err)
	}

	paths := make([]oid.Path, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		paths = append(paths, oid.Split(entry.Name))
	}
	return paths, nil
}

// EntriesInTree implements treediff.EntryReader. A tree oid that does not
// resolve to a tree object (corrupt history, or a path that was a blob at
// this oid) yields an empty result, never an error, per spec.md §7.
func (r *Repository) EntriesInTree(prefix oid.Path, treeOid oid.Oid) []oid.Entry {
	if treeOid.IsZero() {
		return nil
	}

	tree, err := object.GetTree(r.goGit.Storer, treeOid)
	if err != nil {
		slog.Warn("tree object did not resolve, treating as empty", "oid", treeOid.String(), "prefix", prefix.String())
		return nil
	}

	entries := make([]oid.Entry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, oid.Entry{
			Path:   prefix.Child(e.Name),
			IsTree: e.Mode == filemode.Dir,
			Oid:    e.Hash,
		})
	}
	return entries
}

// Commit implements walker.CommitSource over go-git's object store.
func (r *Repository) Commit(o oid.Oid) (walker.Commit, bool) {
	c, err := object.GetCommit(r.goGit.Storer, o)
	if err != nil {
		return walker.Commit{}, false
	}

	parents := make([]oid.Oid, len(c.ParentHashes))
	copy(parents, c.ParentHashes)

	return walker.Commit{
		Oid:        c.Hash,
		TreeOid:    c.TreeHash,
		Time:       c.Committer.When.Unix(),
		ParentOids: parents,
	}, true
}

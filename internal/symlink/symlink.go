// SPDX-License-Identifier: Apache-2.0

// Package symlink expands symlinks found in the working tree under the
// considered subtree into virtual path entries pointing at their resolved
// target, matching GitTimes.extra_symlinked_files in the original
// implementation's test suite.
package symlink

import (
	"os"
	"path/filepath"
)

// Link pairs a path within the considered subtree with the repository-root-
// relative path it ultimately resolves to, after following a chain of
// symlinks-to-symlinks. Path is relative to the considered subtree;
// TargetPath is relative to the repository root, since a symlink's target
// may well live outside the subtree (spec.md's "Symlink interface").
type Link struct {
	Path       string
	TargetPath string
}

// maxChainDepth bounds symlink-to-symlink resolution so a cycle on disk
// cannot hang the walk.
const maxChainDepth = 40

// Expand produces one Link for every path reached through a symlink that is
// either subtreeRoot itself (spec.md §8 scenario 3, "works with symlinks when
// the parent_dir is above the target of the symlink") or a direct child of
// subtreeRoot; beneath a symlinked directory, every file and nested symlink
// gets a Link. Plain subdirectories of subtreeRoot are not descended into,
// so a symlink inside one of them produces no Link. A plain file or
// directory that never passes through a symlink is left alone — it is
// already covered by the repository's ordinary tracked-file listing.
//
// Symlinks whose resolution leaves the repository, or that form a cycle,
// are skipped silently — spec.md §6 only promises attribution for symlinks
// that resolve to an in-repo path.
func Expand(repoRoot, subtreeRoot string) ([]Link, error) {
	info, err := os.Lstat(subtreeRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, ok := resolveChain(repoRoot, subtreeRoot)
		if !ok {
			return nil, nil
		}

		var links []Link
		walkResolved(repoRoot, target, "", &links)
		return links, nil
	}

	entries, err := os.ReadDir(subtreeRoot)
	if err != nil {
		return nil, err
	}

	var links []Link
	for _, entry := range entries {
		childPath := filepath.Join(subtreeRoot, entry.Name())

		childInfo, err := os.Lstat(childPath)
		if err != nil {
			continue
		}
		if childInfo.Mode()&os.ModeSymlink == 0 {
			continue
		}

		target, ok := resolveChain(repoRoot, childPath)
		if !ok {
			continue
		}

		targetInfo, err := os.Stat(filepath.Join(repoRoot, target))
		if err != nil {
			continue
		}
		if targetInfo.IsDir() {
			walkResolved(repoRoot, target, entry.Name(), &links)
			continue
		}

		links = append(links, Link{Path: filepath.ToSlash(entry.Name()), TargetPath: filepath.ToSlash(target)})
	}

	return links, nil
}

// walkResolved recursively lists every entry beneath the repository path
// repoRelDir (a directory reached by at least one symlink hop), appending a
// Link for each file or nested symlink found beneath it. prefix is the path,
// relative to the considered subtree, at which repoRelDir is mounted; it is
// extended by each path component as the walk descends.
func walkResolved(repoRoot, repoRelDir, prefix string, links *[]Link) {
	dir := filepath.Join(repoRoot, repoRelDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		childRepoRel := filepath.Join(repoRelDir, entry.Name())
		childPath := filepath.Join(repoRoot, childRepoRel)
		relPath := entry.Name()
		if prefix != "" {
			relPath = prefix + "/" + entry.Name()
		}

		info, err := os.Lstat(childPath)
		if err != nil {
			continue
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, ok := resolveChain(repoRoot, childPath)
			if !ok {
				continue
			}
			*links = append(*links, Link{Path: filepath.ToSlash(relPath), TargetPath: filepath.ToSlash(target)})
			continue
		}

		if info.IsDir() {
			walkResolved(repoRoot, childRepoRel, relPath, links)
			continue
		}

		*links = append(*links, Link{Path: filepath.ToSlash(relPath), TargetPath: filepath.ToSlash(childRepoRel)})
	}
}

// resolveChain follows a symlink (and any symlinks it points to, in turn)
// until it reaches a path inside repoRoot that is not itself a symlink,
// returning that path relative to repoRoot. The escape check is against
// repoRoot, not the considered subtree, since a symlink's final target is
// allowed to live anywhere else in the repository.
func resolveChain(repoRoot, path string) (string, bool) {
	current := path

	for i := 0; i < maxChainDepth; i++ {
		info, err := os.Lstat(current)
		if err != nil {
			return "", false
		}
		if info.Mode()&os.ModeSymlink == 0 {
			rel, err := filepath.Rel(repoRoot, current)
			if err != nil || hasDotDotPrefix(rel) {
				return "", false
			}
			return filepath.ToSlash(rel), true
		}

		target, err := os.Readlink(current)
		if err != nil {
			return "", false
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = filepath.Clean(target)
	}

	return "", false
}

func hasDotDotPrefix(p string) bool {
	p = filepath.ToSlash(p)
	return p == ".." || (len(p) >= 3 && p[:3] == "../")
}

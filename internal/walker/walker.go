// SPDX-License-Identifier: Apache-2.0

// Package walker drives the history walk described in spec.md §4.D: given a
// HEAD commit and a set of target paths (represented as a prefix tree), it
// visits commits and attributes each path to the first commit whose tree
// differs, under that path, from all of its parents.
package walker

import (
	"log/slog"

	"github.com/gitmit/gitmit/internal/datastructures"
	"github.com/gitmit/gitmit/internal/oid"
	"github.com/gitmit/gitmit/internal/prefixtree"
	"github.com/gitmit/gitmit/internal/treediff"
)

// Commit is the minimal view of a commit the walker needs.
type Commit struct {
	Oid        oid.Oid
	TreeOid    oid.Oid
	Time       int64 // committer time, unix epoch seconds
	ParentOids []oid.Oid
}

// CommitSource resolves a commit oid to its Commit record. Resolution
// failure (a corrupt or missing commit object) is not an error condition
// here; the walker treats it the same way it treats any other unresolved
// object, per spec.md §7: skip it and carry on.
type CommitSource interface {
	Commit(o oid.Oid) (Commit, bool)
}

// Result maps a path (rendered with Path.String) to the commit time it was
// last changed at.
type Result map[string]int64

// Walk performs the walk starting at head. It returns as soon as tree is
// empty, without visiting any further commits.
//
// Traversal order: commits are discovered by following parent links from
// head, and popped from a heap ordered by descending committer time. A
// commit only enters the heap once a child of it has been processed, so a
// commit is never visited before all commits that reach it through a
// shorter path have been — the same shape as gitea's getLastCommitForPaths,
// adapted here to drive the tree diff engine instead of per-path blob hash
// comparisons.
func Walk(head oid.Oid, source CommitSource, engine *treediff.Engine, tree *prefixtree.Tree) Result {
	result := Result{}
	if tree.Empty() {
		return result
	}

	seen := map[oid.Oid]bool{}
	heap := datastructures.NewHeap[oid.Oid](func(a, b any) bool {
		ca, _ := source.Commit(a.(oid.Oid))
		cb, _ := source.Commit(b.(oid.Oid))
		return ca.Time > cb.Time
	})
	heap.Push(head)

	for heap.Len() > 0 {
		if tree.Empty() {
			break
		}

		current := heap.Pop()
		if seen[current] {
			continue
		}
		seen[current] = true

		commit, ok := source.Commit(current)
		if !ok {
			slog.Warn("commit object did not resolve, skipping", "oid", current.String())
			continue
		}

		parentTrees := make([]oid.Oid, 0, len(commit.ParentOids))
		for _, p := range commit.ParentOids {
			if parent, ok := source.Commit(p); ok {
				parentTrees = append(parentTrees, parent.TreeOid)
			}
		}

		for _, path := range leavesChanged(engine, oid.Root(), commit.TreeOid, parentTrees, tree) {
			dir := path[:len(path)-1]
			file := path[len(path)-1]
			if tree.Remove(dir, file) {
				result[path.String()] = commit.Time
			}

			if tree.Empty() {
				break
			}
		}

		if tree.Empty() {
			break
		}

		for _, p := range commit.ParentOids {
			if !seen[p] {
				heap.Push(p)
			}
		}
	}

	return result
}

// leavesChanged recursively applies the tree diff engine starting at
// prefix, flattening every leaf change — including those nested under
// changed subtrees — into one slice of newly-changed paths. This is the
// consumer side of differences_between (spec.md §4.C): it recurses on
// leaf=false outputs and collects leaf=true outputs.
func leavesChanged(engine *treediff.Engine, prefix oid.Path, current oid.Oid, parents []oid.Oid, tree *prefixtree.Tree) []oid.Path {
	var leaves []oid.Path
	for _, change := range engine.Diff(prefix, current, parents, tree) {
		if !change.IsTree {
			leaves = append(leaves, change.Path)
			continue
		}
		leaves = append(leaves, leavesChanged(engine, change.Path, change.Oid, change.ParentOids, tree)...)
	}
	return leaves
}

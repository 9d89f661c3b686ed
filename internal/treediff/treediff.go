// SPDX-License-Identifier: Apache-2.0

// Package treediff answers, at each prefix of the working tree, which
// entries in a commit's tree are new or changed relative to every parent's
// tree at that same prefix (spec.md §4.C).
package treediff

import (
	"github.com/gitmit/gitmit/internal/oid"
	"github.com/gitmit/gitmit/internal/prefixtree"
)

// EntryReader resolves the immediate children of a tree object at a given
// prefix. Implementations must return an empty result (never an error) when
// treeOid does not resolve to a tree object; spec.md §7 classifies a
// corrupt/missing object as "treated as the empty set at that point in the
// walk", not a fatal condition.
type EntryReader interface {
	EntriesInTree(prefix oid.Path, treeOid oid.Oid) []oid.Entry
}

// Change is either a leaf attribution (IsTree=false: path was last changed
// in the current commit) or a directory that changed and still has
// unattributed targets beneath it, which the caller must recurse into by
// calling Diff again with its Path, Oid and ParentOids.
type Change struct {
	Path       oid.Path
	IsTree     bool
	Oid        oid.Oid
	ParentOids []oid.Oid // only set when IsTree; the parent trees to diff against one level down
}

// Engine computes tree diffs, memoizing entry sets by (prefix, tree oid) for
// the duration of one walk, per the design note in spec.md §9: merge
// commits re-query the same trees via multiple parents.
type Engine struct {
	reader EntryReader
	cache  map[string]*entrySet
}

func New(reader EntryReader) *Engine {
	return &Engine{reader: reader, cache: map[string]*entrySet{}}
}

func (e *Engine) entriesAt(prefix oid.Path, treeOid oid.Oid) *entrySet {
	key := prefix.Key() + "\x02" + treeOid.String()
	if cached, ok := e.cache[key]; ok {
		return cached
	}

	set := newEntrySet()
	for _, entry := range e.reader.EntriesInTree(prefix, treeOid) {
		set.Add(entry)
	}
	e.cache[key] = set
	return set
}

// Diff computes the set of entries at prefix that changed in current
// relative to every oid in parents, restricted to subtrees the prefix tree
// still cares about. If prefix is not tracked by tree, it returns nil
// immediately (spec.md §4.C step 1).
func (e *Engine) Diff(prefix oid.Path, current oid.Oid, parents []oid.Oid, tree *prefixtree.Tree) []Change {
	if !tree.Contains(prefix) {
		return nil
	}

	currentEntries := e.entriesAt(prefix, current)

	unionParents := newEntrySet()
	for _, p := range parents {
		unionParents.Extend(e.entriesAt(prefix, p))
	}

	changed := currentEntries.Minus(unionParents)

	out := make([]Change, 0, len(changed.Entries()))
	for _, entry := range changed.Entries() {
		if !entry.IsTree {
			out = append(out, Change{Path: entry.Path, IsTree: false, Oid: entry.Oid})
			continue
		}

		if !tree.Contains(entry.Path) {
			continue
		}

		// Collect only the parent oids that were themselves trees at this
		// path; a parent where the path was a blob (or absent) contributes
		// nothing to the recursion, which is how a blob-to-tree replacement
		// across a merge does not poison the diff.
		childParents := make([]oid.Oid, 0, len(parents))
		for _, p := range parents {
			parentEntries := e.entriesAt(prefix, p)
			if treeOid, ok := parentEntries.HasPathAsTree(entry.Path); ok {
				childParents = append(childParents, treeOid)
			}
		}

		out = append(out, Change{Path: entry.Path, IsTree: true, Oid: entry.Oid, ParentOids: childParents})
	}

	return out
}

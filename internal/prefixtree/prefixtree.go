// SPDX-License-Identifier: Apache-2.0

// Package prefixtree tracks the set of still-unattributed target paths as a
// directory-structured trie, so the walker can cheaply ask "does this
// subtree still contain anything we care about?" and cheaply remove a path
// once it has been attributed to a commit.
package prefixtree

import "github.com/gitmit/gitmit/internal/oid"

// node is one folder in the tree. The root node has an empty name and a nil
// parent. A child at key k inside parent p always satisfies
// child.name.Equal(p.name.Child(k)).
//
// parent is a plain pointer, not a weak reference. Go's tracing collector
// reclaims the parent<->child cycle once both the flat cache and the root's
// folders map stop referencing a node, so there is nothing here that a
// refcounted implementation would need a weak pointer to avoid.
type node struct {
	name    oid.Path
	files   map[string]struct{}
	folders map[string]*node
	parent  *node
}

func newNode(name oid.Path, parent *node) *node {
	return &node{name: name, folders: map[string]*node{}, parent: parent}
}

func (n *node) empty() bool {
	return len(n.files) == 0 && len(n.folders) == 0
}

// Tree is the prefix tree described in spec.md §4.A. The zero value is not
// usable; construct one with New.
type Tree struct {
	root  *node
	cache map[string]*node
}

// New returns an empty prefix tree.
func New() *Tree {
	return &Tree{
		root:  newNode(oid.Root(), nil),
		cache: map[string]*node{},
	}
}

// Fill inserts every path in paths into the tree. A path with zero
// components is ignored (there is no file named by the empty path).
func (t *Tree) Fill(paths []oid.Path) {
	for _, p := range paths {
		t.insert(p)
	}
}

func (t *Tree) insert(p oid.Path) {
	if len(p) == 0 {
		return
	}

	dir := p[:len(p)-1]
	file := p[len(p)-1]

	cur := t.root
	t.cacheNode(cur)
	for i, name := range dir {
		next, ok := cur.folders[name]
		if !ok {
			next = newNode(oid.Path(dir[:i+1]), cur)
			cur.folders[name] = next
		}
		cur = next
		t.cacheNode(cur)
	}

	if cur.files == nil {
		cur.files = map[string]struct{}{}
	}
	cur.files[file] = struct{}{}
}

func (t *Tree) cacheNode(n *node) {
	t.cache[n.name.Key()] = n
}

// Contains reports whether prefix still names a folder (including the root,
// for the empty path) that holds at least one remaining target, in O(1).
func (t *Tree) Contains(prefix oid.Path) bool {
	_, ok := t.cache[prefix.Key()]
	return ok
}

// Remove deletes file from the folder at prefix. It reports whether the
// file was present. If removing it empties the folder, the folder is
// collapsed out of its parent and the flat cache, and the collapse repeats
// up the ancestor chain until a non-empty ancestor is reached.
func (t *Tree) Remove(prefix oid.Path, file string) bool {
	n, ok := t.cache[prefix.Key()]
	if !ok {
		return false
	}
	if _, ok := n.files[file]; !ok {
		return false
	}

	delete(n.files, file)
	if len(n.files) == 0 {
		n.files = nil
	}

	t.collapse(n)
	return true
}

// collapse removes n, and any ancestor that becomes empty as a result, from
// the cache and from its parent's folders map. The root is never removed
// from its parent (it has none) but is removed from the cache once empty,
// which is what makes Contains(Root()) report false on a fully-drained
// tree.
func (t *Tree) collapse(n *node) {
	for n != nil && n.empty() {
		delete(t.cache, n.name.Key())
		parent := n.parent
		if parent != nil {
			for k, child := range parent.folders {
				if child == n {
					delete(parent.folders, k)
					break
				}
			}
		}
		n = parent
	}
}

// Empty reports whether the tree holds no remaining targets at all. This is
// the walker's termination condition.
func (t *Tree) Empty() bool {
	return len(t.cache) == 0
}

// ChildNames returns the folder names and file names directly beneath
// prefix that are still tracked, or (nil, nil, false) if prefix is not a
// known folder.
func (t *Tree) ChildNames(prefix oid.Path) (folders []string, files []string, ok bool) {
	n, found := t.cache[prefix.Key()]
	if !found {
		return nil, nil, false
	}
	for name := range n.folders {
		folders = append(folders, name)
	}
	for name := range n.files {
		files = append(files, name)
	}
	return folders, files, true
}

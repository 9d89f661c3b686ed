// SPDX-License-Identifier: Apache-2.0

// Package oid defines the identifiers the history walker operates on: the
// 20-byte SHA-1 object id and the path-component tuple used to address a
// location inside a tree.
package oid

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Oid is a git object identifier. It is a type alias over go-git's own hash
// type so that repository-adapter code can pass values returned by go-git
// straight through without conversion, while the rest of the walker only
// ever depends on this package.
type Oid = plumbing.Hash

// Zero is the all-zero oid, used as a sentinel for "no object" (for example,
// a parent tree oid when a parent did not have a tree at a given path).
var Zero = plumbing.ZeroHash

// Path is a tuple of non-empty path components. The zero value, an empty
// slice, denotes the subtree root. Equality of two Paths must be checked
// with Equal; Go's slice equality is not usable directly.
type Path []string

// Root is the empty path, denoting the subtree root.
func Root() Path { return nil }

// Child returns a new Path with name appended, leaving the receiver
// unmodified.
func (p Path) Child(name string) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = name
	return child
}

// Equal reports whether two paths have the same components in the same
// order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path using POSIX separators. This is a rendering
// convention only; it is not part of Path's identity.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Key returns a string suitable for use as a map key, uniquely identifying
// the path's sequence of components. It uses a separator ("\x00") that
// cannot appear in a path component, so it never collides across different
// component splits.
func (p Path) Key() string {
	return strings.Join(p, "\x00")
}

// Split breaks a POSIX-style relative path string into a Path. Empty
// components (from a leading, trailing, or doubled separator) are dropped.
func Split(rel string) Path {
	if rel == "" {
		return Root()
	}
	parts := strings.Split(rel, "/")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Entry is a (Path, is_tree, Oid) triple as defined in the data model: two
// entries are equal iff all three fields match, and an entry with
// IsTree=true is always distinct from one with IsTree=false at the same
// path, even if their Oid happened to collide.
type Entry struct {
	Path   Path
	IsTree bool
	Oid    Oid
}

// Key returns a string uniquely identifying the entry for use as a set
// member key (see the entrySet type in internal/treediff).
func (e Entry) Key() string {
	kind := "b"
	if e.IsTree {
		kind = "t"
	}
	return e.Path.Key() + "\x01" + kind + "\x01" + e.Oid.String()
}

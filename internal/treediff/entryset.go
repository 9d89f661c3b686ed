// SPDX-License-Identifier: Apache-2.0

package treediff

import "github.com/gitmit/gitmit/internal/oid"

// entrySet holds a tree-entry set (spec.md §3): the direct children of one
// subtree at one commit. It follows the shape of internal/common/set.Set,
// adapted to store oid.Entry values (which are not themselves cmp.Ordered,
// so they cannot use that generic directly) keyed by their Key().
type entrySet struct {
	contents map[string]oid.Entry
}

func newEntrySet() *entrySet {
	return &entrySet{contents: map[string]oid.Entry{}}
}

func (s *entrySet) Add(e oid.Entry) {
	s.contents[e.Key()] = e
}

func (s *entrySet) Has(e oid.Entry) bool {
	_, ok := s.contents[e.Key()]
	return ok
}

// HasPathAsTree reports whether the set contains an entry at path with
// IsTree set, and returns its oid if so.
func (s *entrySet) HasPathAsTree(p oid.Path) (oid.Oid, bool) {
	for _, e := range s.contents {
		if e.IsTree && e.Path.Equal(p) {
			return e.Oid, true
		}
	}
	return oid.Zero, false
}

// Extend adds every entry of other into s, mutating s in place. This is the
// union operation used to build union_parent_entries in spec.md §4.C.
func (s *entrySet) Extend(other *entrySet) {
	for k, e := range other.contents {
		s.contents[k] = e
	}
}

// Minus returns a new set containing entries of s whose key does not appear
// in other: this is the `current_entries - union_parent_entries` set
// difference spec.md §4.C calls `changes`.
func (s *entrySet) Minus(other *entrySet) *entrySet {
	diff := newEntrySet()
	for k, e := range s.contents {
		if _, ok := other.contents[k]; !ok {
			diff.Add(e)
		}
	}
	return diff
}

func (s *entrySet) Entries() []oid.Entry {
	out := make([]oid.Entry, 0, len(s.contents))
	for _, e := range s.contents {
		out = append(out, e)
	}
	return out
}

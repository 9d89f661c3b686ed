// SPDX-License-Identifier: Apache-2.0

package gitmitcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadAllOnMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, ReadAll(dir))
}

func TestReadAllOnMalformedJSONIsEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(Location(dir), []byte("not json"), 0o644))
	assert.Empty(t, ReadAll(dir))
}

func TestReadAllOnWrongShapeIsEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(Location(dir), []byte(`{"not": "a list"}`), 0o644))
	assert.Empty(t, ReadAll(dir))
}

func TestSetSilentlyNoOpsWithoutGitDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	Set(dir, Record{ParentDir: "."})
	_, err := os.Stat(Location(dir))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	record := Record{ParentDir: ".", SortedRelpaths: []string{"a", "b"}, Commit: "deadbeef", CommitTimes: map[string]int64{"a": 100}}

	Set(dir, record)

	got, ok := Lookup(dir, ".", []string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, record, got)
}

func TestUpdateInPlacePreservesPosition(t *testing.T) {
	dir := t.TempDir()

	Set(dir, Record{ParentDir: "one", SortedRelpaths: []string{"a"}, Commit: "c1"})
	Set(dir, Record{ParentDir: "two", SortedRelpaths: []string{"a"}, Commit: "c2"})
	Set(dir, Record{ParentDir: "one", SortedRelpaths: []string{"a"}, Commit: "c1-updated"})

	records := ReadAll(dir)
	assert.Len(t, records, 2)
	assert.Equal(t, "c1-updated", records[0].Commit)
	assert.Equal(t, "c2", records[1].Commit)
}

func TestSixthInsertEvictsOldest(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 5; i++ {
		Set(dir, Record{ParentDir: string(rune('a' + i)), SortedRelpaths: []string{"x"}, Commit: "c"})
	}
	Set(dir, Record{ParentDir: "sixth", SortedRelpaths: []string{"x"}, Commit: "c"})

	records := ReadAll(dir)
	assert.Len(t, records, 5)
	assert.Equal(t, "b", records[0].ParentDir) // "a" was evicted
	assert.Equal(t, "sixth", records[4].ParentDir)
}

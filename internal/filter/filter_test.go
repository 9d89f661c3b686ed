// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoFiltersKeepsEverythingInsideSubtree(t *testing.T) {
	assert.False(t, IsFiltered("a/b.go", Options{}))
}

func TestOutsideSubtreeIsAlwaysFiltered(t *testing.T) {
	assert.True(t, IsFiltered("../a/b.go", Options{}))
}

func TestExcludeWinsOverAMatchingInclude(t *testing.T) {
	opts := Options{Exclude: []string{"some*"}, Include: []string{"something"}}
	assert.True(t, IsFiltered("something", opts))
	assert.True(t, IsFiltered("someother", opts))
}

func TestExcludeDropsWhatIncludeDoesNotRescue(t *testing.T) {
	opts := Options{Exclude: []string{"vendor/*"}, Include: []string{"*.go"}}
	assert.True(t, IsFiltered("vendor/a.go", opts))
}

func TestIncludeAloneIsAWhitelist(t *testing.T) {
	opts := Options{Include: []string{"*.go"}}
	assert.False(t, IsFiltered("a.go", opts))
	assert.True(t, IsFiltered("a.py", opts))
}

func TestTimestampsForIsAnIndependentWhitelist(t *testing.T) {
	opts := Options{TimestampsFor: []string{"docs/*"}}
	assert.False(t, IsFiltered("docs/readme.md", opts))
	assert.True(t, IsFiltered("src/main.go", opts))
}

func TestRelPathWithNoParentDirIsUnchanged(t *testing.T) {
	assert.Equal(t, "a/b", RelPath("a/b", ""))
	assert.Equal(t, "a/b", RelPath("a/b", "."))
}

func TestRelPathEqualToParentDirIsEmpty(t *testing.T) {
	assert.Equal(t, "", RelPath("/repo/sub", "/repo/sub"))
}

func TestRelPathOutsideParentDirHasDotDotPrefix(t *testing.T) {
	assert.Equal(t, "../other/file", RelPath("/repo/other/file", "/repo/sub"))
}

// internal/catalog/index_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "cleancode", NormalizeKey("Clean Code"))
	assert.Equal(t, "cleancode", NormalizeKey("  clean   CODE "))
	assert.Equal(t, "cienanosdesoledad", NormalizeKey("Cien años de soledad"))
	assert.Equal(t, NormalizeKey("Café"), NormalizeKey("cafe"))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestSearchIndexAddRemove(t *testing.T) {
	index := NewSearchIndex()
	index.Add(testItem("I1", "Clean Code"))
	index.Add(testItem("I2", "clean code")) // same normalized key

	assert.Equal(t, []string{"I1", "I2"}, index.ExactMatch("CLEAN CODE"))
	assert.Equal(t, 1, index.Keys())

	index.Remove(testItem("I1", "Clean Code"))
	assert.Equal(t, []string{"I2"}, index.ExactMatch("clean code"))

	// Dropping the last id must drop the bucket, not leave it empty.
	index.Remove(testItem("I2", "clean code"))
	assert.Nil(t, index.ExactMatch("clean code"))
	assert.Equal(t, 0, index.Keys())
}

func TestSearchIndexRename(t *testing.T) {
	index := NewSearchIndex()
	index.Add(testItem("I1", "Old Title"))
	index.Add(testItem("I2", "Old Title"))

	index.Rename("Old Title", "New Title", "I1")

	assert.Equal(t, []string{"I1"}, index.ExactMatch("new title"))
	// I2 still shares the old key, so the old bucket survives without I1.
	assert.Equal(t, []string{"I2"}, index.ExactMatch("old title"))
}

func TestSubstringSearchCombinesCriteriaWithAND(t *testing.T) {
	items := []Item{
		testItemFull("I1", "Python Crash Course", "Eric Matthes", "Programming"),
		testItemFull("I2", "Cien años de soledad", "Gabriel García Márquez", "Novel"),
		testItemFull("I3", "Clean Code", "Robert C. Martin", "Engineering"),
	}
	index := NewSearchIndex()

	got := index.Substring(items, Query{Author: "martin"})
	require.Len(t, got, 1)
	assert.Equal(t, "I3", got[0].ID)

	got = index.Substring(items, Query{Category: "program", Title: "python"})
	require.Len(t, got, 1)
	assert.Equal(t, "I1", got[0].ID)

	// Criteria AND together: a title that matches nothing filters everything.
	got = index.Substring(items, Query{Category: "program", Title: "soledad"})
	assert.Empty(t, got)

	// A zero query does not filter.
	got = index.Substring(items, Query{})
	assert.Len(t, got, 3)
}

func TestSubstringSearchOrdering(t *testing.T) {
	items := []Item{
		testItemFull("I2", "B Title", "X", "beta"),
		testItemFull("I3", "A Title", "X", "alpha"),
		testItemFull("I1", "A Title", "X", "alpha"),
	}
	index := NewSearchIndex()

	// Default: scan order is preserved.
	got := index.Substring(items, Query{Author: "x"})
	assert.Equal(t, []string{"I2", "I3", "I1"}, itemIDs(got))

	got = index.Substring(items, Query{Author: "x", SortBy: SortByID})
	assert.Equal(t, []string{"I1", "I2", "I3"}, itemIDs(got))

	// Stable sort with id tiebreak.
	got = index.Substring(items, Query{Author: "x", SortBy: SortByTitle})
	assert.Equal(t, []string{"I1", "I3", "I2"}, itemIDs(got))

	got = index.Substring(items, Query{Author: "x", SortBy: SortByCategory})
	assert.Equal(t, []string{"I1", "I3", "I2"}, itemIDs(got))
}

func testItemFull(id, title, author, category string) Item {
	item := testItem(id, title)
	item.Author = author
	item.Category = category
	return item
}

func itemIDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

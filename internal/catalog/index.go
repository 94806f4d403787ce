// internal/catalog/index.go
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes, so
// "Café" and "Cafe" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey folds case and strips diacritics and whitespace so lookups
// are accent-, case- and spacing-insensitive.
func NormalizeKey(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), "")
}

// SearchIndex maps normalized title keys to the set of item ids sharing that
// key. It is kept in lock-step with EntityStore mutations by the service.
type SearchIndex struct {
	buckets map[string]map[string]struct{}
}

// NewSearchIndex creates an empty SearchIndex.
func NewSearchIndex() *SearchIndex {
	return &SearchIndex{buckets: make(map[string]map[string]struct{})}
}

// Add inserts the item id under its normalized title key.
func (x *SearchIndex) Add(item Item) {
	key := NormalizeKey(item.Title)
	bucket, exists := x.buckets[key]
	if !exists {
		bucket = make(map[string]struct{})
		x.buckets[key] = bucket
	}
	bucket[item.ID] = struct{}{}
}

// Remove drops the item id from its title bucket, deleting the bucket when
// it becomes empty so no dangling keys remain.
func (x *SearchIndex) Remove(item Item) {
	key := NormalizeKey(item.Title)
	bucket, exists := x.buckets[key]
	if !exists {
		return
	}
	delete(bucket, item.ID)
	if len(bucket) == 0 {
		delete(x.buckets, key)
	}
}

// Rename moves an id from the old title's bucket to the new title's bucket.
// Both maps are patched before control returns, so callers never observe an
// intermediate state.
func (x *SearchIndex) Rename(oldTitle, newTitle, id string) {
	x.Remove(Item{ID: id, Title: oldTitle})
	x.Add(Item{ID: id, Title: newTitle})
}

// ExactMatch returns the ids indexed under the normalized form of key,
// sorted for determinism. The result is a copy.
func (x *SearchIndex) ExactMatch(key string) []string {
	bucket, exists := x.buckets[NormalizeKey(key)]
	if !exists {
		return nil
	}
	ids := make([]string, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Keys returns the number of distinct normalized keys currently indexed.
func (x *SearchIndex) Keys() int { return len(x.buckets) }

// SortKey selects an explicit result ordering for Search.
type SortKey string

const (
	// SortNone keeps the scan order, which is the store's insertion order.
	SortNone SortKey = ""
	// SortByID orders results by item id.
	SortByID SortKey = "id"
	// SortByTitle orders results by title, ties broken by id.
	SortByTitle SortKey = "title"
	// SortByCategory orders results by category, ties broken by id.
	SortByCategory SortKey = "category"
)

// Query is a partial-match search over descriptive fields. Each present
// criterion is matched independently by case-insensitive substring
// containment; multiple criteria combine with AND. Absent criteria do not
// filter.
type Query struct {
	Title    string
	Author   string
	Category string
	SortBy   SortKey
}

// IsZero reports whether no criterion is set.
func (q Query) IsZero() bool {
	return q.Title == "" && q.Author == "" && q.Category == ""
}

func (q Query) matches(item Item) bool {
	return containsFold(item.Title, q.Title) &&
		containsFold(item.Author, q.Author) &&
		containsFold(item.Category, q.Category)
}

func containsFold(field, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

// Substring is the fallback linear scan used when no exact-key bucket can
// answer the query. It filters the given items in place-order, so passing an
// insertion-ordered snapshot yields insertion-ordered results.
func (x *SearchIndex) Substring(items []Item, q Query) []Item {
	matched := make([]Item, 0)
	for _, item := range items {
		if q.matches(item) {
			matched = append(matched, item)
		}
	}
	sortItems(matched, q.SortBy)
	return matched
}

func sortItems(items []Item, key SortKey) {
	switch key {
	case SortByID:
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	case SortByTitle:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Title != items[j].Title {
				return items[i].Title < items[j].Title
			}
			return items[i].ID < items[j].ID
		})
	case SortByCategory:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Category != items[j].Category {
				return items[i].Category < items[j].Category
			}
			return items[i].ID < items[j].ID
		})
	}
}

package ops

import (
	"strings"
	"sync"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/errors"
)

// CategoryFilter restricts a filter to one category, or to none with FilterAll.
type CategoryFilter string

// FilterAll matches every category.
const FilterAll CategoryFilter = "all"

// matches reports whether an entry of category c passes the filter.
// A filter value outside the enumeration fails closed: it matches nothing.
func (f CategoryFilter) matches(c catalog.Category) bool {
	if f == FilterAll {
		return true
	}
	want := catalog.Category(f)
	if !want.Valid() {
		return false
	}
	return c == want
}

// Label returns the display label for the filter.
func (f CategoryFilter) Label() string {
	if f == FilterAll {
		return "All Tools"
	}
	return catalog.Category(f).Label()
}

// ParseCategoryFilter parses a user-supplied category selector.
// Matching is case-insensitive; "" and "all" select every category.
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == string(FilterAll) {
		return FilterAll, nil
	}
	if catalog.Category(v).Valid() {
		return CategoryFilter(v), nil
	}
	return "", errors.NewInvalidCategory(s, categoryNames())
}

// categoryNames returns the known category values in display order.
func categoryNames() []string {
	names := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		names[i] = string(c)
	}
	return names
}

// Filter returns the entries matching both query and category, in their
// original order. The query is trimmed and matched case-insensitively as a
// substring of the entry name, description, any parameter name or
// description, or any example. An empty query matches every entry.
//
// Filter has no side effects and never fails; the result is always a new slice.
func Filter(entries []catalog.Entry, query string, category CategoryFilter) []catalog.Entry {
	fold := catalog.NewFolder()
	q := fold(strings.TrimSpace(query))

	result := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if !category.matches(e.Category) {
			continue
		}
		if q != "" && !matchesText(e, q, fold) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// matchesText reports whether the folded query q occurs in any searchable field of e.
func matchesText(e catalog.Entry, q string, fold func(string) string) bool {
	if strings.Contains(fold(e.Name), q) || strings.Contains(fold(e.Description), q) {
		return true
	}
	for _, p := range e.Parameters {
		if strings.Contains(fold(p.Name), q) || strings.Contains(fold(p.Description), q) {
			return true
		}
	}
	for _, ex := range e.Examples {
		if strings.Contains(fold(ex), q) {
			return true
		}
	}
	return false
}

// Memo caches the most recent Filter result for a fixed catalog.
// It is safe for concurrent use. Returned slices are shared and must not be modified.
type Memo struct {
	entries []catalog.Entry

	mu       sync.Mutex
	ok       bool
	query    string
	category CategoryFilter
	result   []catalog.Entry
}

// NewMemo creates a Memo over entries.
func NewMemo(entries []catalog.Entry) *Memo {
	return &Memo{entries: entries}
}

// Filter returns Filter(entries, query, category), reusing the previous
// result when the arguments are unchanged.
func (m *Memo) Filter(query string, category CategoryFilter) []catalog.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ok && m.query == query && m.category == category {
		return m.result
	}
	m.result = Filter(m.entries, query, category)
	m.query = query
	m.category = category
	m.ok = true
	return m.result
}

package ops

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/errors"
)

// MaxQueryLength bounds the query accepted from the CLI, web and MCP surfaces.
const MaxQueryLength = 500

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query    string // optional; empty matches everything
	Category string // optional; "", "all" or a category name
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items         []catalog.Entry `json:"items"`
	Showing       int             `json:"showing"`
	Total         int             `json:"total"`
	Query         string          `json:"query,omitempty"`
	Category      CategoryFilter  `json:"category"`
	CategoryLabel string          `json:"category_label"`
}

// Search validates raw user input and runs Filter over entries.
// Unlike Filter, it rejects an unknown category with INVALID_CATEGORY.
func Search(entries []catalog.Entry, input SearchInput) (*SearchOutput, error) {
	query, category, err := parseSearchInput(input)
	if err != nil {
		return nil, err
	}
	return newSearchOutput(Filter(entries, query, category), len(entries), query, category), nil
}

// Search is Search over the memo's catalog, reusing the last result when
// the parsed arguments repeat.
func (m *Memo) Search(input SearchInput) (*SearchOutput, error) {
	query, category, err := parseSearchInput(input)
	if err != nil {
		return nil, err
	}
	return newSearchOutput(m.Filter(query, category), len(m.entries), query, category), nil
}

func parseSearchInput(input SearchInput) (string, CategoryFilter, error) {
	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return "", "", errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength))
	}

	category, err := ParseCategoryFilter(input.Category)
	if err != nil {
		return "", "", err
	}
	return query, category, nil
}

func newSearchOutput(items []catalog.Entry, total int, query string, category CategoryFilter) *SearchOutput {
	return &SearchOutput{
		Items:         items,
		Showing:       len(items),
		Total:         total,
		Query:         query,
		Category:      category,
		CategoryLabel: category.Label(),
	}
}

// Summary describes the result the way the tools tab shows it, e.g.
// `Showing 2 of 15 tools matching "edit" in File Operations`.
func (o *SearchOutput) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d tools", o.Showing, o.Total)
	if o.Query != "" {
		fmt.Fprintf(&b, " matching %q", o.Query)
	}
	if o.Category != FilterAll {
		fmt.Fprintf(&b, " in %s", o.CategoryLabel)
	}
	return b.String()
}

package ops

import (
	"strings"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/errors"
)

// Find returns the entry named name. An exact match wins; otherwise the
// first case-insensitive match is returned.
func Find(entries []catalog.Entry, name string) (*catalog.Entry, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.NewInvalidRequest("tool name is required")
	}

	for i := range entries {
		if entries[i].Name == trimmed {
			return &entries[i], nil
		}
	}

	want := catalog.Normalize(trimmed)
	for i := range entries {
		if catalog.Normalize(entries[i].Name) == want {
			return &entries[i], nil
		}
	}
	return nil, errors.NewNotFound("tool", trimmed)
}

// CategorySummary is one row of the category listing.
type CategorySummary struct {
	Category catalog.Category `json:"category"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
}

// CategoriesOutput contains the result of the Categories operation.
type CategoriesOutput struct {
	Categories []CategorySummary `json:"categories"`
	Total      int               `json:"total"`
}

// CountByCategory counts entries per category, in display order. Every known
// category is listed, including empty ones.
func CountByCategory(entries []catalog.Entry) *CategoriesOutput {
	counts := make(map[catalog.Category]int, len(catalog.Categories))
	for _, e := range entries {
		counts[e.Category]++
	}

	rows := make([]CategorySummary, len(catalog.Categories))
	for i, c := range catalog.Categories {
		rows[i] = CategorySummary{
			Category: c,
			Label:    c.Label(),
			Count:    counts[c],
		}
	}
	return &CategoriesOutput{
		Categories: rows,
		Total:      len(entries),
	}
}

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold applies locale-independent Unicode case folding to s.
// Casers are stateful, so each call builds its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NewFolder returns a folding function backed by a single Caser, for callers
// that fold many strings in one pass. The function must stay on one goroutine.
func NewFolder() func(string) string {
	return cases.Fold().String
}

// Normalize trims s and case-folds it. Used for lookups by name or id.
func Normalize(s string) string {
	return Fold(strings.TrimSpace(s))
}

package catalog

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/refdeck/internal/errors"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// document is the top-level shape of a catalog YAML file.
type document struct {
	Tools []Entry `yaml:"tools"`
}

var (
	defaultOnce    sync.Once
	defaultEntries []Entry
	defaultErr     error
)

// Default returns the built-in catalog, parsed and validated once per process.
// The returned slice is shared; callers must not modify it.
func Default() ([]Entry, error) {
	defaultOnce.Do(func() {
		defaultEntries, defaultErr = Parse(embeddedCatalog)
	})
	return defaultEntries, defaultErr
}

// Load reads a catalog from a YAML file. An empty path returns Default().
func Load(path string) ([]Entry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes catalog YAML and validates it. Unknown fields are rejected.
func Parse(data []byte) ([]Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewInvalidCatalog("catalog is empty")
		}
		return nil, errors.NewInvalidCatalog(fmt.Sprintf("decode catalog: %v", err))
	}

	for i := range doc.Tools {
		normalizeEntry(&doc.Tools[i])
	}
	if err := Validate(doc.Tools); err != nil {
		return nil, err
	}
	return doc.Tools, nil
}

// normalizeEntry replaces nil sequences with empty ones so JSON output is
// stable ([] rather than null).
func normalizeEntry(e *Entry) {
	if e.Parameters == nil {
		e.Parameters = []Parameter{}
	}
	if e.Limitations == nil {
		e.Limitations = []string{}
	}
	if e.Examples == nil {
		e.Examples = []string{}
	}
}

// Validate checks the catalog invariants:
//   - at least one entry
//   - entry names are non-empty and unique
//   - every category is known
//   - parameter names are non-empty and unique within their entry
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return errors.NewInvalidCatalog("catalog has no entries")
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return errors.NewInvalidCatalog(fmt.Sprintf("entry %d has an empty name", i))
		}
		if seen[e.Name] {
			return errors.NewInvalidCatalog(fmt.Sprintf("duplicate entry name %q", e.Name))
		}
		seen[e.Name] = true

		if !e.Category.Valid() {
			return errors.NewInvalidCatalog(fmt.Sprintf("entry %q has unknown category %q", e.Name, e.Category))
		}

		params := make(map[string]bool, len(e.Parameters))
		for _, p := range e.Parameters {
			if p.Name == "" {
				return errors.NewInvalidCatalog(fmt.Sprintf("entry %q has a parameter with an empty name", e.Name))
			}
			if params[p.Name] {
				return errors.NewInvalidCatalog(fmt.Sprintf("entry %q has duplicate parameter %q", e.Name, p.Name))
			}
			params[p.Name] = true
		}
	}
	return nil
}

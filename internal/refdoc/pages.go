// Package refdoc holds the static reference pages shown next to the tool
// catalog: overview, behaviors, system prompt, runtime and limitations.
// Pages are markdown files compiled into the binary.
package refdoc

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/hpungsan/refdeck/internal/errors"
)

//go:embed pages/*.md
var pageFS embed.FS

// Page is one static reference page.
type Page struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"-"`
}

// Headings returns the titles of the page's second-level sections.
func (p *Page) Headings() []string {
	return SectionTitles(p.Sections, 2)
}

// Intro returns the text between the page title and the first section.
func (p *Page) Intro() string {
	if len(p.Sections) == 0 {
		return strings.TrimSpace(p.Markdown)
	}
	first := p.Sections[0]
	if first.Level != 1 {
		return strings.TrimSpace(p.Markdown[:first.HeaderStart])
	}
	end := len(p.Markdown)
	if len(p.Sections) > 1 {
		end = p.Sections[1].HeaderStart
	}
	return strings.TrimSpace(p.Markdown[first.ContentStart:end])
}

// pageMeta lists pages in navigation order.
var pageMeta = []struct {
	id    string
	title string
}{
	{"overview", "Overview"},
	{"behaviors", "Behaviors"},
	{"systemprompt", "System Prompt"},
	{"environment", "Runtime"},
	{"limitations", "Limitations"},
}

var (
	loadOnce sync.Once
	pages    []*Page
	byID     map[string]*Page
	loadErr  error
)

func load() {
	pages = make([]*Page, 0, len(pageMeta))
	byID = make(map[string]*Page, len(pageMeta))
	for _, m := range pageMeta {
		data, err := pageFS.ReadFile("pages/" + m.id + ".md")
		if err != nil {
			loadErr = fmt.Errorf("read page %s: %w", m.id, err)
			return
		}
		text := string(data)
		p := &Page{
			ID:       m.id,
			Title:    m.title,
			Markdown: text,
			Sections: ParseSections(text),
		}
		pages = append(pages, p)
		byID[m.id] = p
	}
}

// All returns every page in navigation order.
func All() ([]*Page, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, errors.NewInternal(loadErr)
	}
	return pages, nil
}

// IDs returns the page ids in navigation order.
func IDs() []string {
	ids := make([]string, len(pageMeta))
	for i, m := range pageMeta {
		ids[i] = m.id
	}
	return ids
}

// Lookup returns the page with the given id (case-insensitive).
func Lookup(id string) (*Page, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, errors.NewInternal(loadErr)
	}
	key := strings.ToLower(strings.TrimSpace(id))
	if key == "" {
		return nil, errors.NewInvalidRequest("page id is required")
	}
	p, ok := byID[key]
	if !ok {
		return nil, errors.NewNotFound("page", id)
	}
	return p, nil
}

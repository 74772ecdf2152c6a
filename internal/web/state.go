package web

import (
	"net/http"
	"net/url"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/ops"
	"github.com/hpungsan/refdeck/internal/refdoc"
)

// TabTools is the id of the tools tab. Every other tab is a refdoc page.
const TabTools = "tools"

// ViewState is the per-request UI state: which tab is open and, on the tools
// tab, the search text and category selection. It is rebuilt from the URL on
// every request.
type ViewState struct {
	Tab      string
	Query    string
	Category ops.CategoryFilter
}

// readViewState builds the tools tab state from the query string.
// The category is returned raw so the caller can report an invalid one.
func readViewState(r *http.Request) (ViewState, string) {
	q := r.URL.Query()
	return ViewState{
		Tab:      TabTools,
		Query:    q.Get("q"),
		Category: ops.FilterAll,
	}, q.Get("category")
}

// URL returns the tools tab URL that reproduces this state.
func (s ViewState) URL() string {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Category != "" && s.Category != ops.FilterAll {
		v.Set("category", string(s.Category))
	}
	if len(v) == 0 {
		return "/tools"
	}
	return "/tools?" + v.Encode()
}

// WithCategory returns a copy of s with a different category.
func (s ViewState) WithCategory(c string) ViewState {
	s.Category = ops.CategoryFilter(c)
	return s
}

// categoryButtons returns "All Tools" followed by each category in display order.
func categoryButtons(active ops.CategoryFilter) []CategoryButton {
	buttons := make([]CategoryButton, 0, len(catalog.Categories)+1)
	buttons = append(buttons, CategoryButton{
		Value:  string(ops.FilterAll),
		Label:  ops.FilterAll.Label(),
		Active: active == ops.FilterAll,
	})
	for _, c := range catalog.Categories {
		buttons = append(buttons, CategoryButton{
			Value:  string(c),
			Label:  c.Label(),
			Active: active == ops.CategoryFilter(c),
		})
	}
	return buttons
}

// navItems returns the tabs in navigation order. An unknown active id
// highlights the overview tab.
func navItems(active string) []NavItem {
	pages, err := refdoc.All()
	if err != nil {
		pages = nil
	}

	items := make([]NavItem, 0, len(pages)+1)
	for _, p := range pages {
		items = append(items, NavItem{ID: p.ID, Label: p.Title, Href: "/" + p.ID})
		// tools sits right after the overview
		if p.ID == "overview" {
			items = append(items, NavItem{ID: TabTools, Label: "Tools", Href: "/tools"})
		}
	}

	found := false
	for i := range items {
		if items[i].ID == active {
			items[i].Active = true
			found = true
		}
	}
	if !found && len(items) > 0 {
		items[0].Active = true
	}
	return items
}

package web

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/errors"
	"github.com/hpungsan/refdeck/internal/ops"
	"github.com/hpungsan/refdeck/internal/refdoc"
)

// Handlers contains HTTP route handlers for the web viewer.
type Handlers struct {
	entries  []catalog.Entry
	memo     *ops.Memo
	renderer *Renderer
	logger   *log.Logger
}

// NewHandlers creates the handlers over a loaded catalog.
func NewHandlers(entries []catalog.Entry, renderer *Renderer, logger *log.Logger) *Handlers {
	return &Handlers{
		entries:  entries,
		memo:     ops.NewMemo(entries),
		renderer: renderer,
		logger:   logger,
	}
}

// HandleTools handles GET /tools, the searchable tool list.
func (h *Handlers) HandleTools(w http.ResponseWriter, r *http.Request) {
	state, rawCategory := readViewState(r)

	result, err := h.memo.Search(ops.SearchInput{Query: state.Query, Category: rawCategory})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	state.Query = result.Query
	state.Category = result.Category
	h.logger.Debug("search", "query", result.Query, "category", result.Category, "showing", result.Showing)

	data := ToolsPageData{
		PageData:   h.renderer.pageData("Tools", TabTools),
		State:      state,
		Result:     result,
		Categories: categoryButtons(state.Category),
	}

	// If htmx targets #results, render only the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "tools", "tool-results", data)
		return
	}

	h.renderer.renderPage(w, r, "tools", data)
}

// HandleTool handles GET /tools/{name}, a single expanded tool card.
func (h *Handlers) HandleTool(w http.ResponseWriter, r *http.Request) {
	entry, err := ops.Find(h.entries, r.PathValue("name"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, entry)
		return
	}

	h.renderer.renderPage(w, r, "tool", ToolPageData{
		PageData: h.renderer.pageData(entry.Name, TabTools),
		Entry:    *entry,
	})
}

// HandlePage handles GET /{page}, a static reference page.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	page, err := refdoc.Lookup(r.PathValue("page"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "page", DocPageData{
		PageData:     h.renderer.pageData(page.Title, page.ID),
		Page:         page,
		RenderedHTML: h.renderer.renderMarkdown(page.Markdown),
		Sections:     levelSections(page.Sections, 2),
		Copyable:     page.ID == "systemprompt",
	})
}

// HandleRaw handles GET /pages/{page}/raw, the page markdown as a download.
func (h *Handlers) HandleRaw(w http.ResponseWriter, r *http.Request) {
	page, err := refdoc.Lookup(r.PathValue("page"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="refdeck-%s.md"`, page.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page.Markdown))
}

// HandleAPITools handles GET /api/tools, the filter result as JSON.
func (h *Handlers) HandleAPITools(w http.ResponseWriter, r *http.Request) {
	state, rawCategory := readViewState(r)

	result, err := h.memo.Search(ops.SearchInput{Query: state.Query, Category: rawCategory})
	if err != nil {
		h.renderer.renderJSONError(w, h.renderer.docsError(err))
		return
	}
	h.logger.Debug("api search", "query", result.Query, "category", result.Category, "showing", result.Showing)
	renderJSON(w, http.StatusOK, result)
}

// HandleNotFound handles any unmatched route.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderError(w, r, errors.NewNotFound("page", r.URL.Path))
}

// levelSections returns the sections at the given heading level.
func levelSections(sections []refdoc.Section, level int) []refdoc.Section {
	var out []refdoc.Section
	for _, s := range sections {
		if s.Level == level {
			out = append(out, s)
		}
	}
	return out
}

package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/errors"
	"github.com/hpungsan/refdeck/internal/ops"
	"github.com/hpungsan/refdeck/internal/refdoc"
)

// NavItem is one tab in the top navigation.
type NavItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     []NavItem
}

// CategoryButton is one category selector on the tools tab.
type CategoryButton struct {
	Value  string
	Label  string
	Active bool
}

// ToolsPageData is the template data for the tools tab.
type ToolsPageData struct {
	PageData
	State      ViewState
	Result     *ops.SearchOutput
	Categories []CategoryButton
}

// ToolPageData is the template data for a single tool card.
type ToolPageData struct {
	PageData
	Entry catalog.Entry
}

// cardData feeds the shared tool-card template.
type cardData struct {
	Entry catalog.Entry
	Open  bool
}

// DocPageData is the template data for a static reference page.
type DocPageData struct {
	PageData
	Page         *refdoc.Page
	RenderedHTML template.HTML
	Sections     []refdoc.Section
	Copyable     bool
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	logger    *log.Logger
	markdown  goldmark.Markdown
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, logger *log.Logger) *Renderer {
	funcMap := template.FuncMap{
		"requiredText": requiredText,
		"lower":        strings.ToLower,
		"card": func(e catalog.Entry, open bool) cardData {
			return cardData{Entry: e, Open: open}
		},
	}

	// Layout and the shared card partial form the base of every page
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html", "card.html"))

	pages := map[string]string{
		"tools": "tools.html",
		"tool":  "tool.html",
		"page":  "page.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
		logger:    logger,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
// For htmx requests, only the "content" block is rendered to avoid duplicating the layout.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	block := "layout"
	if req != nil && isHTMX(req) {
		block = "content"
	}
	r.renderBlock(w, status, name, block, data)
}

// renderBlock renders a specific named block from a page template.
// Used for htmx partial swaps that target a sub-section of the page.
func (r *Renderer) renderBlock(w http.ResponseWriter, status int, page, block string, data any) {
	t, ok := r.templates[page]
	if !ok {
		r.logger.Error("template not found", "template", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.logger.Error("template execution failed", "template", page, "block", block, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	dErr := r.docsError(err)
	status := dErr.Status
	message := dErr.Message

	// htmx request: return HTML fragment
	if isHTMX(req) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `<div class="error-message">%s</div>`, template.HTMLEscapeString(message))
		return
	}

	if wantsJSON(req) {
		r.renderJSONError(w, dErr)
		return
	}

	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData:   r.pageData(fmt.Sprintf("Error %d", status), ""),
		StatusCode: status,
		Message:    message,
	})
}

// renderJSONError writes the JSON error envelope.
func (r *Renderer) renderJSONError(w http.ResponseWriter, dErr *errors.DocsError) {
	renderJSON(w, dErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(dErr.Code),
			"message": dErr.Message,
			"status":  dErr.Status,
		},
	})
}

// docsError unwraps err into a DocsError, logging anything internal.
func (r *Renderer) docsError(err error) *errors.DocsError {
	var dErr *errors.DocsError
	if !stderrors.As(err, &dErr) {
		dErr = errors.NewInternal(err)
	}
	if dErr.Status >= 500 {
		r.logger.Error("request failed", "code", dErr.Code, "details", dErr.Details)
	}
	return dErr
}

// pageData builds the common page fields with active set as the highlighted tab.
func (r *Renderer) pageData(title, active string) PageData {
	return PageData{
		Title:   title,
		Version: r.version,
		Nav:     navItems(active),
	}
}

// renderMarkdown converts markdown text to HTML. Heading ids match refdoc anchors.
func (r *Renderer) renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(md), &buf); err != nil {
		r.logger.Warn("markdown conversion failed", "err", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(md) + "</pre>")
	}
	return template.HTML(buf.String())
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

func isHTMX(req *http.Request) bool {
	return req.Header.Get("HX-Request") == "true"
}

func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

func requiredText(required bool) string {
	if required {
		return "required"
	}
	return "optional"
}

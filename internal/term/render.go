// Package term renders catalog entries, search results and reference pages
// for a terminal.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/ops"
)

// EmptyResults is shown when a search matches nothing.
const EmptyResults = "No tools found matching your criteria"

// Renderer turns markdown and catalog data into styled terminal text.
type Renderer struct {
	md *glamour.TermRenderer

	title   lipgloss.Style
	name    lipgloss.Style
	badge   lipgloss.Style
	muted   lipgloss.Style
	summary lipgloss.Style
}

// NewRenderer creates a Renderer. style is "auto" or anything glamour accepts
// as a style path ("dark", "light", "notty", or a JSON file). width <= 0
// disables word wrap.
func NewRenderer(style string, width int) (*Renderer, error) {
	var opts []glamour.TermRendererOption
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	return &Renderer{
		md: md,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		name: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")),
		summary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Italic(true),
	}, nil
}

// Markdown renders a markdown document.
func (r *Renderer) Markdown(text string) (string, error) {
	out, err := r.md.Render(text)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Tool renders the full card for one entry.
func (r *Renderer) Tool(e catalog.Entry) (string, error) {
	return r.Markdown(EntryMarkdown(e))
}

// Results renders a search result as a compact list headed by its summary.
func (r *Renderer) Results(out *ops.SearchOutput) string {
	var sb strings.Builder
	sb.WriteString(r.summary.Render(out.Summary()))
	sb.WriteString("\n\n")

	if len(out.Items) == 0 {
		sb.WriteString(r.muted.Render(EmptyResults))
		sb.WriteString("\n")
		return sb.String()
	}

	width := 0
	for _, e := range out.Items {
		width = max(width, lipgloss.Width(e.Name))
	}
	for _, e := range out.Items {
		name := r.name.Width(width).Render(e.Name)
		badge := r.badge.Render("[" + e.Category.Label() + "]")
		required := r.muted.Render(fmt.Sprintf("%d required", e.RequiredCount()))
		fmt.Fprintf(&sb, "  %s  %s  %s\n", name, badge, required)
		fmt.Fprintf(&sb, "  %s\n", r.muted.Render(e.Description))
	}
	return sb.String()
}

// Categories renders the category listing with counts.
func (r *Renderer) Categories(out *ops.CategoriesOutput) string {
	var sb strings.Builder
	sb.WriteString(r.title.Render("Categories"))
	sb.WriteString("\n\n")

	width := 0
	for _, c := range out.Categories {
		width = max(width, lipgloss.Width(c.Label))
	}
	for _, c := range out.Categories {
		label := r.name.Width(width).Render(c.Label)
		fmt.Fprintf(&sb, "  %s  %s  %d\n", label, r.badge.Render(string(c.Category)), c.Count)
	}
	fmt.Fprintf(&sb, "\n%s\n", r.summary.Render(fmt.Sprintf("%d tools", out.Total)))
	return sb.String()
}

// Pages renders the page listing, each id and title followed by its description.
func (r *Renderer) Pages(pages []ops.PageSummary) string {
	var sb strings.Builder
	width := 0
	for _, p := range pages {
		width = max(width, lipgloss.Width(p.ID))
	}
	for _, p := range pages {
		fmt.Fprintf(&sb, "  %s  %s\n", r.name.Width(width).Render(p.ID), r.badge.Render(p.Title))
		if p.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", r.muted.Render(p.Description))
		}
	}
	return sb.String()
}

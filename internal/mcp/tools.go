package mcp

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/refdeck/internal/ops"
	"github.com/hpungsan/refdeck/internal/refdoc"
)

var searchToolDef = mcp.NewTool("docs_search",
	mcp.WithDescription("Search the tool catalog. Matches the query case-insensitively against tool names, "+
		"descriptions, parameter names and descriptions, and examples. Results keep catalog order. "+
		"Omit both arguments to list every tool."),
	mcp.WithString("query",
		mcp.Description("Free-text query; surrounding whitespace is ignored, empty matches everything"),
		mcp.MaxLength(ops.MaxQueryLength),
	),
	mcp.WithString("category",
		mcp.Description("Restrict results to one category"),
		mcp.Enum("all", "core", "file", "development", "search"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var getToolToolDef = mcp.NewTool("docs_get_tool",
	mcp.WithDescription("Get the full documentation card for one tool: parameters, return value, usage, limitations and examples."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Tool name, e.g. \"Grep\" (case-insensitive)"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var listCategoriesToolDef = mcp.NewTool("docs_list_categories",
	mcp.WithDescription("List the tool categories in display order with their labels and tool counts."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var readPageToolDef = mcp.NewTool("docs_read_page",
	mcp.WithDescription("Read a static reference page as markdown, with its section headings. Pages: "+
		strings.Join(refdoc.IDs(), ", ")+"."),
	mcp.WithString("page",
		mcp.Required(),
		mcp.Description("Page id"),
		mcp.Enum(refdoc.IDs()...),
	),
	mcp.WithString("section",
		mcp.Description("Section title or anchor; returns only that section and its subsections"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var listPagesToolDef = mcp.NewTool("docs_list_pages",
	mcp.WithDescription("List the static reference pages with their titles and one-line descriptions."),
	mcp.WithReadOnlyHintAnnotation(true),
)

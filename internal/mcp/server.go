package mcp

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"docs_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"docs_get_tool": {
		def:     getToolToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetTool },
	},
	"docs_list_categories": {
		def:     listCategoriesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListCategories },
	},
	"docs_read_page": {
		def:     readPageToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReadPage },
	},
	"docs_list_pages": {
		def:     listPagesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListPages },
	},
}

// AllToolNames returns every tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the docs tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(entries []catalog.Entry, cfg *config.Config, version string, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"refdeck",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(entries)

	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", "tools", unknown, "known", AllToolNames())
	}

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			logger.Debug("tool disabled", "tool", name)
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(entries []catalog.Entry, cfg *config.Config, version string, logger *log.Logger) error {
	s := NewServer(entries, cfg, version, logger)
	return server.ServeStdio(s)
}

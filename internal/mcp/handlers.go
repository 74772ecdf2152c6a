package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/errors"
	"github.com/hpungsan/refdeck/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	entries []catalog.Entry
	memo    *ops.Memo
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(entries []catalog.Entry) *Handlers {
	return &Handlers{entries: entries, memo: ops.NewMemo(entries)}
}

// SearchRequest represents the arguments for docs_search.
type SearchRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
}

// GetToolRequest represents the arguments for docs_get_tool.
type GetToolRequest struct {
	Name string `json:"name"`
}

// ReadPageRequest represents the arguments for docs_read_page.
type ReadPageRequest struct {
	Page    string `json:"page"`
	Section string `json:"section,omitempty"`
}

// HandleSearch handles the docs_search tool.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.memo.Search(ops.SearchInput{Query: args.Query, Category: args.Category})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGetTool handles the docs_get_tool tool.
func (h *Handlers) HandleGetTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[GetToolRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	entry, err := ops.Find(h.entries, args.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(entry)
}

// HandleListCategories handles the docs_list_categories tool.
func (h *Handlers) HandleListCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.CountByCategory(h.entries))
}

// HandleReadPage handles the docs_read_page tool.
func (h *Handlers) HandleReadPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[ReadPageRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	page, err := ops.ReadPage(args.Page, args.Section)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(page)
}

// HandleListPages handles the docs_list_pages tool.
func (h *Handlers) HandleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := ops.ListPages()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"pages": pages})
}

// errorResult converts an error into an MCP error result.
// Wrapped errors keep their wrapper context in the message.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var dErr *errors.DocsError
	if stderrors.As(err, &dErr) {
		message := strings.TrimSuffix(err.Error(), dErr.Error()) + dErr.Message
		errorObj := map[string]any{
			"code":    dErr.Code,
			"message": message,
			"status":  dErr.Status,
		}
		// INTERNAL details can carry file paths and other local state
		if dErr.Code != errors.ErrInternal && dErr.Details != nil {
			errorObj["details"] = dErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult wraps data as a JSON tool result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

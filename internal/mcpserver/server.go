// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the Notion writing tools for LLM integration via stdio
// or streamable HTTP transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/pagewriter"
)

// Server wraps the MCP server with the Notion tools.
type Server struct {
	mcp    *server.MCPServer
	writer *pagewriter.Service
}

// New creates a new MCP server with all tools registered.
func New(writer *pagewriter.Service) *Server {
	s := &Server{writer: writer}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool("create_notion_page",
		mcp.WithDescription("Create a Notion page under the configured parent page. "+
			"The content is stored as a single paragraph without markup parsing; "+
			"use write_to_notion for structured content."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new page")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Raw text content of the page")),
	), s.createNotionPage)

	s.mcp.AddTool(mcp.NewTool("write_to_notion",
		mcp.WithDescription("Write plain-text content to a Notion page, creating the page when "+
			"no page with the given title exists. Read the markup rules first via the "+
			"get_text_format tool or the ansuz://text-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the target page")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Plain-text content following the text format")),
		mcp.WithString("parent_id", mcp.Description("Optional parent page ID for a newly created page (defaults to the configured parent)")),
		mcp.WithString("mode", mcp.Description("Write mode for existing pages: 'replace' or 'append' (default 'replace')")),
	), s.writeToNotion)

	s.mcp.AddTool(mcp.NewTool("append_to_notion",
		mcp.WithDescription("Append plain-text content to a Notion page, creating the page when "+
			"no page with the given title exists."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the target page")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Plain-text content following the text format")),
		mcp.WithString("parent_id", mcp.Description("Optional parent page ID for a newly created page")),
	), s.appendToNotion)

	s.mcp.AddTool(mcp.NewTool("get_text_format",
		mcp.WithDescription("Returns the plain-text format the writing tools parse into Notion blocks. "+
			"Call this before writing structured content."),
	), s.getTextFormat)

	s.mcp.AddTool(mcp.NewTool("search_notion_pages",
		mcp.WithDescription("Search for Notion pages by title or content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotionPages)

	s.mcp.AddTool(mcp.NewTool("get_notion_page_content",
		mcp.WithDescription("Read a Notion page's blocks back as plain text."),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page to read")),
	), s.getNotionPageContent)

	s.mcp.AddTool(mcp.NewTool("test_connection",
		mcp.WithDescription("Verify the MCP connection is working."),
	), s.testConnection)

	// Resource: plain-text format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://text-format", "Text Format Contract",
			mcp.WithResourceDescription("Plain-text markup understood by the writing tools."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTextFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// HTTPHandler returns the streamable HTTP transport for the server,
// served at path.
func (s *Server) HTTPHandler(path string) http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(path))
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// writeResponse is the JSON reply of the write and append tools.
type writeResponse struct {
	Status  pagewriter.Status `json:"status"`
	Message string            `json:"message"`
	PageID  string            `json:"page_id"`
	PageURL string            `json:"page_url"`
}

type searchResponse struct {
	Query        string        `json:"query"`
	TotalResults int           `json:"total_results"`
	Pages        []models.Page `json:"pages"`
}

func (s *Server) createNotionPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ref, err := s.writer.CreatePlain(ctx, title, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error creating Notion page: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Notion page '%s' created successfully! URL: %s", title, ref.URL)), nil
}

func (s *Server) writeToNotion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parentID := ""
	if p, pErr := req.RequireString("parent_id"); pErr == nil {
		parentID = p
	}
	modeArg := ""
	if m, mErr := req.RequireString("mode"); mErr == nil {
		modeArg = m
	}
	mode, err := pagewriter.ParseMode(modeArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.writer.Write(ctx, pagewriter.WriteRequest{
		Title:    title,
		Content:  content,
		ParentID: parentID,
		Mode:     mode,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error writing to Notion: %v", err)), nil
	}
	return writeResult(title, res), nil
}

func (s *Server) appendToNotion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parentID := ""
	if p, pErr := req.RequireString("parent_id"); pErr == nil {
		parentID = p
	}

	res, err := s.writer.Write(ctx, pagewriter.WriteRequest{
		Title:    title,
		Content:  content,
		ParentID: parentID,
		Mode:     pagewriter.ModeAppend,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error appending to Notion: %v", err)), nil
	}
	return writeResult(title, res), nil
}

func (s *Server) searchNotionPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pages, err := s.writer.SearchPages(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error searching Notion pages: %v", err)), nil
	}
	if pages == nil {
		pages = []models.Page{}
	}
	out, _ := json.MarshalIndent(searchResponse{
		Query:        query,
		TotalResults: len(pages),
		Pages:        pages,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getNotionPageContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pc, err := s.writer.ReadPage(ctx, pageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error getting Notion page content: %v", err)), nil
	}
	out, _ := json.MarshalIndent(pc, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getTextFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TextFormatContract), nil
}

func (s *Server) testConnection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("MCP connection is working! Server is responding to tool calls."), nil
}

func (s *Server) readTextFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://text-format",
			MIMEType: "text/markdown",
			Text:     TextFormatContract,
		},
	}, nil
}

// writeResult renders the shared success reply of write_to_notion and
// append_to_notion.
func writeResult(title string, res *pagewriter.WriteResult) *mcp.CallToolResult {
	message := fmt.Sprintf("Appended content to existing Notion page '%s'", title)
	if res.Status == pagewriter.StatusCreated {
		message = fmt.Sprintf("Created new Notion page '%s'", title)
	}
	out, _ := json.MarshalIndent(writeResponse{
		Status:  res.Status,
		Message: message,
		PageID:  res.PageID,
		PageURL: res.PageURL,
	}, "", "  ")
	return mcp.NewToolResultText(string(out))
}

// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Othala tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/othala/internal/relocate"
	"github.com/starford/othala/internal/settings"
	"github.com/starford/othala/internal/vault"
)

// Server wraps the MCP server with Othala tools.
type Server struct {
	mcp      *server.MCPServer
	vault    *vault.Vault
	reloc    *relocate.Service
	settings *settings.Store
}

// New creates a new MCP server with all Othala tools registered.
func New(v *vault.Vault, reloc *relocate.Service, store *settings.Store) *Server {
	s := &Server{vault: v, reloc: reloc, settings: store}

	s.mcp = server.NewMCPServer(
		"Othala",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("relocate_embeds",
		mcp.WithDescription("Move every attachment a note embeds into a sibling folder named "+
			"after the note. Markdown embeds (transclusions) stay put; references matching the "+
			"configured exclusion string are skipped. Idempotent. Read the "+
			"othala://attachment-layout resource for the resulting layout."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.relocateEmbeds)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List indexed notes, optionally filtered by tag."),
		mcp.WithString("tag", mcp.Description("Optional tag to filter by")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through notes content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all notes that link to the specified file."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file to find backlinks for")),
	), s.getBacklinks)

	s.mcp.AddTool(mcp.NewTool("get_settings",
		mcp.WithDescription("Return the current relocation settings."),
	), s.getSettings)

	s.mcp.AddTool(mcp.NewTool("set_exclude",
		mcp.WithDescription("Set the exclusion string: attachments whose path or name contains "+
			"it (case-insensitive) are never relocated. Empty disables exclusion."),
		mcp.WithString("exclude", mcp.Required(), mcp.Description("Substring to exclude, or empty")),
	), s.setExclude)

	// Resource: attachment layout contract.
	s.mcp.AddResource(
		mcp.NewResource("othala://attachment-layout", "Attachment Layout Contract",
			mcp.WithResourceDescription("How relocated attachments are laid out next to their notes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLayoutResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) relocateEmbeds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.reloc.Relocate(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("moved %d attachment(s) to %s", res.Moved, res.Folder)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, content, err := s.vault.GetNote(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := ""
	if v, err := req.RequireString("tag"); err == nil {
		tag = v
	}

	notes, _, err := s.vault.ListNotes(0, 0, tag, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var paths []string
	for _, n := range notes {
		paths = append(paths, n.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.vault.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := s.vault.ResolveLink(path, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if f == nil {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	bl, err := s.vault.Backlinks(f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(bl) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(strings.Join(bl, "\n")), nil
}

func (s *Server) getSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.settings.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(cfg, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) setExclude(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exclude, err := req.RequireString("exclude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := s.settings.Current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.ExcludeString = exclude
	if err := s.settings.Save(cfg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("excludeString set to %q", exclude)), nil
}

func (s *Server) readLayoutResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "othala://attachment-layout",
			MIMEType: "text/markdown",
			Text:     AttachmentLayoutContract,
		},
	}, nil
}

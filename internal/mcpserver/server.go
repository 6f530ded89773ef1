// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the hunts catalog as tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thorcollective/hearth/internal/apperr"
	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/models"
	"github.com/thorcollective/hearth/internal/report"
)

// Server wraps the MCP server with catalog tools. All tools read from
// the shared snapshot store, so they see the same catalog state as the
// REST API.
type Server struct {
	mcp   *server.MCPServer
	store *catalog.Store

	sourceBaseURL string
}

// New creates a new MCP server with all catalog tools registered.
func New(store *catalog.Store, sourceBaseURL string) *Server {
	s := &Server{store: store, sourceBaseURL: sourceBaseURL}

	s.mcp = server.NewMCPServer(
		"HEARTH",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_hunts",
		mcp.WithDescription("Search the hunts catalog by keyword. Matches id, title, tactic, notes, tags, and submitter; title matches rank first."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchHunts)

	s.mcp.AddTool(mcp.NewTool("get_hunt",
		mcp.WithDescription("Fetch one hunt record by id (e.g. F001, E042, A003)."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Hunt id")),
	), s.getHunt)

	s.mcp.AddTool(mcp.NewTool("hunt_stats",
		mcp.WithDescription("Catalog statistics: totals per category, top tactics, and contributor counts."),
	), s.huntStats)

	s.mcp.AddTool(mcp.NewTool("list_tactics",
		mcp.WithDescription("List the MITRE ATT&CK tactics present in the catalog."),
	), s.listTactics)

	s.mcp.AddTool(mcp.NewTool("generate_report",
		mcp.WithDescription("Generate a pre-filled PEAK-style threat hunting notebook for one hunt."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Hunt id")),
	), s.generateReport)

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

// snapshot returns the current catalog or a tool error while it has not
// loaded yet.
func (s *Server) snapshot() (*catalog.Snapshot, *mcp.CallToolResult) {
	if !s.store.Ready() {
		return nil, mcp.NewToolResultError(apperr.ErrNotReady.Error())
	}
	return s.store.Current(), nil
}

func (s *Server) searchHunts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, errResult := s.snapshot()
	if errResult != nil {
		return errResult, nil
	}

	results := catalog.Search(snap, query, 20)
	if len(results) == 0 {
		return mcp.NewToolResultText("no hunts matched"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getHunt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, errResult := s.snapshot()
	if errResult != nil {
		return errResult, nil
	}

	hunt, found := snap.Get(id)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(hunt, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) huntStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := s.snapshot()
	if errResult != nil {
		return errResult, nil
	}
	out, _ := json.MarshalIndent(catalog.Stats(snap), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTactics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := s.snapshot()
	if errResult != nil {
		return errResult, nil
	}
	tactics := snap.Tactics()
	if len(tactics) == 0 {
		tactics = models.CanonicalTactics
	}
	return mcp.NewToolResultText(strings.Join(tactics, "\n")), nil
}

func (s *Server) generateReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, errResult := s.snapshot()
	if errResult != nil {
		return errResult, nil
	}

	hunt, found := snap.Get(id)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	doc, err := report.Generate(hunt, s.sourceBaseURL)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc), nil
}

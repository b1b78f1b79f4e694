// ABOUTME: MCP server setup for the lifting log store.
// ABOUTME: Wraps the MCP server with repository and reconciler access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/liftlog/internal/catalog"
	"github.com/harperreed/liftlog/internal/storage"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer  *mcp.Server
	repo       storage.Repository
	reconciler *catalog.Reconciler
}

// NewServer creates a new MCP server over the given repository. The
// reconciler may be nil when no exercise source is configured; the
// sync_exercises tool then reports that to the caller.
func NewServer(repo storage.Repository, reconciler *catalog.Reconciler) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "liftlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		repo:       repo,
		reconciler: reconciler,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

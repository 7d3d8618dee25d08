// Package mcpserver exposes a booking session over MCP so an agent can fill
// in the wizard the same way a person would through the TUI.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/mirrorbook/internal/handoff"
	"github.com/mark3labs/mirrorbook/internal/journal"
	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/mark3labs/mirrorbook/internal/lookup"
	"github.com/mark3labs/mirrorbook/internal/wizard"
)

// Deps are the session components the tools operate on. Lookup and Journal
// are optional.
type Deps struct {
	Controller *wizard.Controller
	Dispatcher *handoff.Dispatcher
	Lookup     *lookup.Service
	Journal    *journal.Journal
}

// Server is an embedded MCP HTTP server for one booking session.
type Server struct {
	deps Deps

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex

	// opMu serializes tool calls; the controller is not safe for concurrent use.
	opMu sync.Mutex
}

// New creates a server. It is not listening until Start.
func New(deps Deps) *Server {
	s := &Server{deps: deps}
	s.mcpServer = server.NewMCPServer(
		"mirrorbook",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server, for transports other than HTTP.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Start listens on 127.0.0.1:port (a random port when port is 0) and serves
// /mcp in the background. It returns the bound port.
func (s *Server) Start(ctx context.Context, port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return 0, fmt.Errorf("listening for MCP: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{Handler: mux}
	s.httpServer = mcpHandler

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server listening on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("stopping MCP server: %w", err)
	}
	s.httpServer = nil
	s.stdServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}

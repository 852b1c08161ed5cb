package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/drivelink/internal/services/mcp/domain"
	"github.com/louisbranch/drivelink/internal/services/registration"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "drivelink"
	serverVersion = "0.1.0"

	// TransportStdio serves MCP over stdin/stdout.
	TransportStdio = "stdio"
	// TransportHTTP serves MCP over the streamable HTTP transport.
	TransportHTTP = "http"

	defaultHTTPAddr = "localhost:8081"
)

// Config holds MCP service configuration.
type Config struct {
	Transport    string
	HTTPAddr     string
	Registration registration.Settings
}

// Server wraps the MCP server and its registered tools.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer builds an MCP server with the registration tools.
func NewServer(settings registration.Settings) (*Server, error) {
	client, err := settings.NewClient()
	if err != nil {
		return nil, fmt.Errorf("build registration client: %w", err)
	}
	return newServer(domain.RegisterDeps{
		Client:         client,
		RedirectPolicy: settings.RedirectPolicy(),
		Copy:           settings.Copy(),
	}), nil
}

func newServer(deps domain.RegisterDeps) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	mcp.AddTool(mcpServer, domain.RegisterUserTool(), domain.RegisterUserHandler(deps))
	return &Server{mcpServer: mcpServer}
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	transport := strings.TrimSpace(cfg.Transport)
	if transport == "" {
		transport = TransportStdio
	}
	if transport != TransportStdio && transport != TransportHTTP {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := NewServer(cfg.Registration)
	if err != nil {
		return err
	}
	if transport == TransportHTTP {
		httpAddr := strings.TrimSpace(cfg.HTTPAddr)
		if httpAddr == "" {
			httpAddr = defaultHTTPAddr
		}
		return server.ListenAndServe(ctx, httpAddr)
	}
	log.Printf("mcp serving transport=%s", TransportStdio)
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP session on transport until the peer
// disconnects or ctx ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

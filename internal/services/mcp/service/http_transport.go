package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/louisbranch/drivelink/internal/platform/httpx"
	"github.com/louisbranch/drivelink/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const mcpPath = "/mcp"

// Handler returns the streamable HTTP endpoint at /mcp plus /healthz.
func (s *Server) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(mcpPath, streamable)
	mux.Handle("/healthz", httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteText(w, http.StatusOK, "ok")
	}), httpx.AllowMethods(http.MethodGet, http.MethodHead)))
	return httpx.Chain(mux, httpx.RecoverPanic(), httpx.RequestID("mcp"))
}

// ListenAndServe listens on addr and serves Handler until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.serveListener(ctx, listener)
}

func (s *Server) serveListener(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	log.Printf("mcp serving transport=%s addr=%s path=%s", TransportHTTP, listener.Addr(), mcpPath)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

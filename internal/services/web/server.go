package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/drivelink/internal/platform/i18n"
	"github.com/louisbranch/drivelink/internal/platform/timeouts"
	"github.com/louisbranch/drivelink/internal/services/registration"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr     string
	Registration registration.Settings
}

// Server hosts the registration form.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	client, err := config.Registration.NewClient()
	if err != nil {
		return nil, fmt.Errorf("build registration client: %w", err)
	}
	defaultLang, _ := i18n.ParseTag(config.Registration.Lang)
	handler, err := NewHandler(HandlerConfig{
		Client:         client,
		RedirectPolicy: config.Registration.RedirectPolicy(),
		Metrics:        NewMetrics(),
		DefaultLang:    defaultLang,
	})
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Listen binds the server address without serving. It lets callers learn the
// bound address before ListenAndServe when HTTPAddr uses port 0.
func (s *Server) Listen() (net.Addr, error) {
	if s == nil {
		return nil, errors.New("web server is nil")
	}
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	s.listener = listener
	return listener.Addr(), nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight registrations
// finish before the process exits.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	addr, err := s.Listen()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening addr=%s", addr)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
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

// Close stops the server immediately.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		log.Printf("close http server: %v", err)
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

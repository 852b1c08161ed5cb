// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/drivelink/internal/platform/cmd"
	"github.com/louisbranch/drivelink/internal/services/mcp/service"
	"github.com/louisbranch/drivelink/internal/services/registration"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr     string `env:"DRIVELINK_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport    string `env:"DRIVELINK_MCP_TRANSPORT" envDefault:"stdio"`
	Registration registration.Settings
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return parseConfig(fs, args, nil)
}

func parseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFrom(&cfg, environ); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	cfg.Registration.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			Transport:    cfg.Transport,
			HTTPAddr:     cfg.HTTPAddr,
			Registration: cfg.Registration,
		})
	})
}

package mcp

import (
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := parseConfig(fs, nil, map[string]string{})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.Registration.BackendURL != "http://localhost:3000" {
		t.Fatalf("expected default backend url, got %q", cfg.Registration.BackendURL)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	environ := map[string]string{
		"DRIVELINK_MCP_HTTP_ADDR": "env-http",
		"DRIVELINK_MCP_TRANSPORT": "http",
		"DRIVELINK_BACKEND_URL":   "https://env.example.com",
	}
	args := []string{"-http-addr", "flag-http", "-backend-url", "https://flag.example.com"}
	cfg, err := parseConfig(fs, args, environ)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.Registration.BackendURL != "https://flag.example.com" {
		t.Fatalf("expected flag backend url, got %q", cfg.Registration.BackendURL)
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	t.Setenv("DRIVELINK_OTEL_ENABLED", "false")

	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("Run() error = %v, want unsupported transport", err)
	}
}

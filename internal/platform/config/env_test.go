package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Addr    string        `env:"DRIVELINK_TEST_ADDR" envDefault:"localhost:3000"`
	Hosts   []string      `env:"DRIVELINK_TEST_HOSTS" envSeparator:","`
	Timeout time.Duration `env:"DRIVELINK_TEST_TIMEOUT" envDefault:"0s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:3000" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "localhost:3000")
	}
	if cfg.Timeout != 0 {
		t.Fatalf("Timeout = %v, want 0", cfg.Timeout)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DRIVELINK_TEST_TIMEOUT", "not-a-duration")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromUsesExplicitEnvironment(t *testing.T) {
	t.Setenv("DRIVELINK_TEST_ADDR", "process:1")

	var cfg envTestConfig
	err := ParseEnvFrom(&cfg, map[string]string{
		"DRIVELINK_TEST_ADDR":  "map:2",
		"DRIVELINK_TEST_HOSTS": "accounts.google.com,example.com",
	})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "map:2" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "map:2")
	}
	if len(cfg.Hosts) != 2 || cfg.Hosts[0] != "accounts.google.com" || cfg.Hosts[1] != "example.com" {
		t.Fatalf("Hosts = %v, want [accounts.google.com example.com]", cfg.Hosts)
	}
}

func TestParseEnvFromNilMapUsesDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, nil); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:3000" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "localhost:3000")
	}
}

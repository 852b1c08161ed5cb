package registration

import (
	"flag"
	"testing"
	"time"

	"github.com/louisbranch/drivelink/internal/platform/config"
)

func TestSettingsDefaults(t *testing.T) {
	var settings Settings
	if err := config.ParseEnvFrom(&settings, map[string]string{}); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if settings.BackendURL != DefaultBackendURL {
		t.Fatalf("BackendURL = %q, want %q", settings.BackendURL, DefaultBackendURL)
	}
	if len(settings.AllowedRedirectSchemes) != 2 {
		t.Fatalf("AllowedRedirectSchemes = %v, want [https http]", settings.AllowedRedirectSchemes)
	}
	if len(settings.AllowedRedirectHosts) != 0 {
		t.Fatalf("AllowedRedirectHosts = %v, want empty", settings.AllowedRedirectHosts)
	}
	if settings.Timeout != 0 {
		t.Fatalf("Timeout = %v, want 0", settings.Timeout)
	}
	if got := settings.Copy().Error("x"); got != "Error: x" {
		t.Fatalf("Copy().Error() = %q, want %q", got, "Error: x")
	}
}

func TestSettingsOverrides(t *testing.T) {
	var settings Settings
	err := config.ParseEnvFrom(&settings, map[string]string{
		"DRIVELINK_BACKEND_URL":              "https://api.example.com",
		"DRIVELINK_REDIRECT_ALLOWED_HOSTS":   "accounts.google.com",
		"DRIVELINK_REDIRECT_ALLOWED_SCHEMES": "https",
		"DRIVELINK_REGISTER_TIMEOUT":         "3s",
		"DRIVELINK_LANG":                     "pt-BR",
	})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	client, err := settings.NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := client.Endpoint(); got != "https://api.example.com/api/v1/user/register" {
		t.Fatalf("Endpoint() = %q", got)
	}
	if client.httpClient.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", client.httpClient.Timeout)
	}
	if err := settings.RedirectPolicy().Check("http://accounts.google.com/"); err == nil {
		t.Fatal("expected http to be rejected")
	}
	if err := settings.RedirectPolicy().Check("https://accounts.google.com/"); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if got := settings.Copy().Redirecting(); got != "Redirecionando para o Google..." {
		t.Fatalf("Copy().Redirecting() = %q", got)
	}
}

func TestSettingsBindFlags(t *testing.T) {
	t.Parallel()

	settings := Settings{BackendURL: DefaultBackendURL, Lang: "en-US"}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	settings.BindFlags(fs)
	if err := fs.Parse([]string{"-backend-url", "https://api.example.com", "-lang", "pt-BR", "-timeout", "2s"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if settings.BackendURL != "https://api.example.com" || settings.Lang != "pt-BR" || settings.Timeout != 2*time.Second {
		t.Fatalf("settings = %+v", settings)
	}
}

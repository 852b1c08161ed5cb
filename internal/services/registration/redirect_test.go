package registration

import (
	"errors"
	"testing"
)

func TestRedirectPolicyCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy RedirectPolicy
		target string
		ok     bool
	}{
		{name: "zero policy https", target: "https://accounts.google.com/o/oauth2/auth", ok: true},
		{name: "zero policy http", target: "http://localhost:3000/callback", ok: true},
		{name: "relative", target: "/oauth/start", ok: false},
		{name: "javascript", target: "javascript:alert(1)", ok: false},
		{name: "data", target: "data:text/html,hi", ok: false},
		{name: "unparseable", target: "https://exa mple.com/%zz", ok: false},
		{
			name:   "https only rejects http",
			policy: RedirectPolicy{AllowedSchemes: []string{"HTTPS"}},
			target: "http://accounts.google.com/",
			ok:     false,
		},
		{
			name:   "exact host",
			policy: RedirectPolicy{AllowedHosts: []string{"Accounts.Google.com"}},
			target: "https://accounts.google.com/o/oauth2/auth",
			ok:     true,
		},
		{
			name:   "host mismatch",
			policy: RedirectPolicy{AllowedHosts: []string{"accounts.google.com"}},
			target: "https://accounts.google.com.evil.test/",
			ok:     false,
		},
		{
			name:   "subdomain wildcard",
			policy: RedirectPolicy{AllowedHosts: []string{".google.com"}},
			target: "https://accounts.google.com:443/x",
			ok:     true,
		},
		{
			name:   "wildcard apex",
			policy: RedirectPolicy{AllowedHosts: []string{".google.com"}},
			target: "https://google.com/x",
			ok:     true,
		},
		{
			name:   "wildcard lookalike",
			policy: RedirectPolicy{AllowedHosts: []string{".google.com"}},
			target: "https://evilgoogle.com/x",
			ok:     false,
		},
		{
			name:   "blank entries ignored",
			policy: RedirectPolicy{AllowedSchemes: []string{" "}, AllowedHosts: []string{""}},
			target: "https://example.com/x",
			ok:     true,
		},
	}
	for _, tc := range tests {
		err := tc.policy.Check(tc.target)
		if tc.ok && err != nil {
			t.Fatalf("%s: Check(%q) error = %v", tc.name, tc.target, err)
		}
		if !tc.ok && !errors.Is(err, ErrRedirectNotAllowed) {
			t.Fatalf("%s: Check(%q) error = %v, want ErrRedirectNotAllowed", tc.name, tc.target, err)
		}
	}
}

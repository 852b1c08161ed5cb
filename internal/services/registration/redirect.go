package registration

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var defaultRedirectSchemes = []string{"https", "http"}

// RedirectPolicy decides which hand-off targets a Form follows.
//
// The zero value accepts any absolute http or https URL. AllowedHosts entries
// match a host exactly; an entry starting with "." also matches subdomains.
type RedirectPolicy struct {
	AllowedSchemes []string
	AllowedHosts   []string
}

// Check reports whether target may be navigated to. Rejections wrap
// ErrRedirectNotAllowed.
func (p RedirectPolicy) Check(target string) error {
	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedirectNotAllowed, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URL", ErrRedirectNotAllowed, target)
	}

	scheme := strings.ToLower(parsed.Scheme)
	schemes := normalizeList(p.AllowedSchemes)
	if len(schemes) == 0 {
		schemes = defaultRedirectSchemes
	}
	if !slices.Contains(schemes, scheme) {
		return fmt.Errorf("%w: scheme %q", ErrRedirectNotAllowed, scheme)
	}

	hosts := normalizeList(p.AllowedHosts)
	if len(hosts) == 0 {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range hosts {
		if host == allowed {
			return nil
		}
		if strings.HasPrefix(allowed, ".") && (strings.HasSuffix(host, allowed) || host == allowed[1:]) {
			return nil
		}
	}
	return fmt.Errorf("%w: host %q", ErrRedirectNotAllowed, host)
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

package web

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/louisbranch/drivelink/internal/platform/i18n"
)

// relayJar carries one browser request's cookies to the backend and collects
// the cookies the backend sets so they can be relayed back to the browser.
// Only URLs on the backend's host and port see or set cookies; a redirect to
// any other host gets none and its Set-Cookie headers are dropped.
type relayJar struct {
	backend  *url.URL
	mu       sync.Mutex
	outgoing []*http.Cookie
	received []*http.Cookie
}

func newRelayJar(r *http.Request, backend *url.URL) *relayJar {
	jar := &relayJar{backend: backend}
	for _, cookie := range r.Cookies() {
		if cookie.Name == i18n.LangCookieName {
			continue
		}
		jar.outgoing = append(jar.outgoing, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return jar
}

// Cookies returns the browser cookies plus anything the backend set during
// this exchange, with later values replacing earlier ones by name.
func (j *relayJar) Cookies(u *url.URL) []*http.Cookie {
	if !j.matches(u) {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	merged := make([]*http.Cookie, 0, len(j.outgoing)+len(j.received))
	index := make(map[string]int, len(j.outgoing)+len(j.received))
	add := func(name, value string) {
		if i, ok := index[name]; ok {
			merged[i] = &http.Cookie{Name: name, Value: value}
			return
		}
		index[name] = len(merged)
		merged = append(merged, &http.Cookie{Name: name, Value: value})
	}
	for _, cookie := range j.outgoing {
		add(cookie.Name, cookie.Value)
	}
	for _, cookie := range j.received {
		if cookie.MaxAge < 0 {
			continue
		}
		add(cookie.Name, cookie.Value)
	}
	return merged
}

func (j *relayJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if !j.matches(u) {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, cookie := range cookies {
		if cookie == nil || cookie.Name == "" {
			continue
		}
		clone := *cookie
		j.received = append(j.received, &clone)
	}
}

// relay writes the backend's cookies to the browser. The backend's Domain
// attribute does not apply to this origin, so relayed cookies are host-only.
func (j *relayJar) relay(w http.ResponseWriter) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, cookie := range j.received {
		clone := *cookie
		clone.Domain = ""
		if clone.Path == "" {
			clone.Path = "/"
		}
		clone.Raw = ""
		clone.Unparsed = nil
		http.SetCookie(w, &clone)
	}
}

func (j *relayJar) matches(u *url.URL) bool {
	if u == nil || j.backend == nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), j.backend.Hostname()) && effectivePort(u) == effectivePort(j.backend)
}

func effectivePort(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	if strings.EqualFold(u.Scheme, "https") {
		return "443"
	}
	return "80"
}

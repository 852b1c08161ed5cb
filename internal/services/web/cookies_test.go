package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestRelayJarMergesByName(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "old"})
	req.AddCookie(&http.Cookie{Name: "drivelink_lang", Value: "en-US"})
	backend := mustParseURL(t, "http://backend.test/api/v1/user/register")
	jar := newRelayJar(req, backend)

	jar.SetCookies(backend, []*http.Cookie{
		{Name: "session", Value: "new"},
		{Name: "gone", Value: "", MaxAge: -1},
		nil,
		{Name: ""},
	})

	cookies := jar.Cookies(backend)
	if len(cookies) != 1 {
		t.Fatalf("Cookies() = %v, want one cookie", cookies)
	}
	if cookies[0].Name != "session" || cookies[0].Value != "new" {
		t.Fatalf("Cookies()[0] = %s=%s, want session=new", cookies[0].Name, cookies[0].Value)
	}
}

func TestRelayJarRelaysHostOnly(t *testing.T) {
	t.Parallel()

	backend := mustParseURL(t, "https://backend.test/api/v1/user/register")
	jar := newRelayJar(httptest.NewRequest(http.MethodPost, "/register", nil), backend)
	jar.SetCookies(backend, []*http.Cookie{
		{Name: "oauth_state", Value: "s1", Domain: "backend.test", Secure: true},
		{Name: "gone", Value: "", MaxAge: -1, Path: "/auth"},
	})

	rr := httptest.NewRecorder()
	jar.relay(rr)
	cookies := rr.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("relayed = %v, want two cookies", cookies)
	}
	if cookies[0].Domain != "" || cookies[0].Path != "/" || !cookies[0].Secure {
		t.Fatalf("relayed cookie = %+v, want host-only secure cookie at /", cookies[0])
	}
	if cookies[1].Path != "/auth" || cookies[1].MaxAge >= 0 {
		t.Fatalf("relayed deletion = %+v", cookies[1])
	}
}

func TestRelayJarScopesCookiesToBackendHost(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "secret"})
	jar := newRelayJar(req, mustParseURL(t, "http://backend.test:3000/api/v1/user/register"))

	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "backend path", url: "http://backend.test:3000/oauth/start", want: 1},
		{name: "host case", url: "http://BACKEND.test:3000/", want: 1},
		{name: "other port", url: "http://backend.test:4000/", want: 0},
		{name: "default port", url: "http://backend.test/", want: 0},
		{name: "other host", url: "http://tracker.test:3000/", want: 0},
	}
	for _, tc := range tests {
		if got := jar.Cookies(mustParseURL(t, tc.url)); len(got) != tc.want {
			t.Fatalf("%s: Cookies(%s) = %v, want %d cookies", tc.name, tc.url, got, tc.want)
		}
	}
	if got := jar.Cookies(nil); len(got) != 0 {
		t.Fatalf("Cookies(nil) = %v, want none", got)
	}

	jar.SetCookies(mustParseURL(t, "http://tracker.test:3000/"), []*http.Cookie{{Name: "tracker", Value: "t1"}})
	jar.SetCookies(nil, []*http.Cookie{{Name: "orphan", Value: "o1"}})
	rr := httptest.NewRecorder()
	jar.relay(rr)
	if got := rr.Result().Cookies(); len(got) != 0 {
		t.Fatalf("relayed = %v, want none from other hosts", got)
	}
}

func TestEffectivePortDefaultsByScheme(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"http://a.test/":       "80",
		"https://a.test/":      "443",
		"https://a.test:8443/": "8443",
	}
	for raw, want := range tests {
		if got := effectivePort(mustParseURL(t, raw)); got != want {
			t.Fatalf("effectivePort(%s) = %q, want %q", raw, got, want)
		}
	}
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return u
}

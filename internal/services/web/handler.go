package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/drivelink/internal/platform/httpx"
	"github.com/louisbranch/drivelink/internal/platform/i18n"
	"github.com/louisbranch/drivelink/internal/services/registration"
	"golang.org/x/text/language"
)

// HandlerConfig holds the dependencies of the registration handler.
type HandlerConfig struct {
	Client         *registration.Client
	RedirectPolicy registration.RedirectPolicy
	Metrics        *Metrics
	// DefaultLang is used when the request states no language preference.
	DefaultLang language.Tag
	Logger      *log.Logger
}

type handler struct {
	client      *registration.Client
	backend     *url.URL
	policy      registration.RedirectPolicy
	metrics     *Metrics
	defaultLang language.Tag
	logger      *log.Logger
}

// NewHandler builds the web routes.
func NewHandler(config HandlerConfig) (http.Handler, error) {
	if config.Client == nil {
		return nil, errors.New("registration client is required")
	}
	backend, err := url.Parse(config.Client.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("parse backend endpoint: %w", err)
	}
	if config.Metrics == nil {
		config.Metrics = NewMetrics()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	h := &handler{
		client:      config.Client,
		backend:     backend,
		policy:      config.RedirectPolicy,
		metrics:     config.Metrics,
		defaultLang: i18n.Normalize(config.DefaultLang),
		logger:      config.Logger,
	}

	readOnly := httpx.AllowMethods(http.MethodGet, http.MethodHead)
	mux := http.NewServeMux()
	mux.Handle("/", httpx.Chain(http.HandlerFunc(h.handleIndex), readOnly))
	mux.Handle("/register", httpx.Chain(http.HandlerFunc(h.handleRegister),
		httpx.AllowMethods(http.MethodGet, http.MethodHead, http.MethodPost)))
	mux.Handle("/healthz", httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteText(w, http.StatusOK, "ok")
	}), readOnly))
	mux.Handle("/metrics", httpx.Chain(config.Metrics.Handler(), readOnly))

	return httpx.Chain(mux, httpx.RecoverPanic(), httpx.RequestID("web")), nil
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, h.resolveLanguage(w, r), http.StatusOK, "", "")
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	tag := h.resolveLanguage(w, r)
	if r.Method != http.MethodPost {
		h.render(w, r, tag, http.StatusOK, "", "")
		return
	}

	status := registration.NewCopy(tag)
	if err := r.ParseForm(); err != nil {
		h.metrics.observe(outcomeInvalid)
		h.render(w, r, tag, http.StatusBadRequest, "", status.Error(err.Error()))
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if strings.TrimSpace(email) == "" || password == "" {
		h.metrics.observe(outcomeInvalid)
		message := status.Error(i18n.LocalizeText(i18n.Printer(tag), i18n.KeyRequiredFields, "email and password are required"))
		h.render(w, r, tag, http.StatusBadRequest, email, message)
		return
	}

	jar := newRelayJar(r, h.backend)
	form, err := registration.NewForm(
		h.client.WithJar(jar),
		registration.NavigatorFunc(func(context.Context, string) error { return nil }),
		registration.WithCopy(status),
		registration.WithRedirectPolicy(h.policy),
		registration.WithLogger(h.logger),
	)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer form.Close()
	form.SetEmail(email)
	form.SetPassword(password)

	outcome, err := form.Submit(r.Context())
	if err != nil {
		h.logger.Printf("registration submit request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.metrics.observe(string(outcome.Kind))
	h.logger.Printf("registration submitted request_id=%s outcome=%s", httpx.RequestIDFrom(r), outcome.Kind)

	jar.relay(w)
	if outcome.Kind == registration.OutcomeRedirect {
		httpx.WriteSeeOther(w, r, outcome.RedirectURL)
		return
	}
	h.render(w, r, tag, http.StatusOK, email, form.State().StatusMessage)
}

// resolveLanguage picks the request locale and persists an explicit choice.
func (h *handler) resolveLanguage(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := i18n.ResolveTagWithFallback(r, h.defaultLang)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return tag
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, tag language.Tag, status int, email, statusMessage string) {
	w.Header().Set("Cache-Control", "no-store")
	templ.Handler(registerPage(newRegisterPage(tag, email, statusMessage)), templ.WithStatus(status)).ServeHTTP(w, r)
}

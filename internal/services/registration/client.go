package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"
)

const (
	// RegisterPath is the backend route that accepts registrations.
	RegisterPath = "/api/v1/user/register"
	// DefaultBackendURL is the backend origin used when none is configured.
	DefaultBackendURL = "http://localhost:3000"

	maxResponseBytes = 1 << 20
	tracerName       = "github.com/louisbranch/drivelink/internal/services/registration"
)

// Request is the JSON body posted to the backend.
type Request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result is a decoded 2xx reply.
type Result struct {
	StatusCode int
	// RedirectURL is the non-empty string "redirect_url" field, if any.
	RedirectURL string
	Body        []byte
}

// Registrar submits registration requests.
type Registrar interface {
	Register(ctx context.Context, req Request) (Result, error)
}

// Client posts registration requests to the backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer
}

type clientOptions struct {
	httpClient *http.Client
	jar        http.CookieJar
	timeout    time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*clientOptions)

// WithHTTPClient sets the base HTTP client. It is copied, never mutated.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithCookieJar sets the jar that carries credentials to and from the backend.
func WithCookieJar(jar http.CookieJar) ClientOption {
	return func(o *clientOptions) {
		o.jar = jar
	}
}

// WithTimeout bounds each request. Zero keeps the transport defaults.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// NewClient builds a client for the backend at baseURL. Unless a jar is
// supplied, the client keeps cookies in an in-memory jar.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	endpoint, err := resolveEndpoint(baseURL)
	if err != nil {
		return nil, err
	}

	var options clientOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	httpClient := &http.Client{}
	if options.httpClient != nil {
		clone := *options.httpClient
		httpClient = &clone
	}
	switch {
	case options.jar != nil:
		httpClient.Jar = options.jar
	case httpClient.Jar == nil:
		jar, err := NewCookieJar()
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}
	if options.timeout > 0 {
		httpClient.Timeout = options.timeout
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// NewCookieJar returns an empty in-memory jar that scopes cookies with the
// public suffix list.
func NewCookieJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return jar, nil
}

// Endpoint returns the absolute registration URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// WithJar returns a copy of c that shares its transport but keeps cookies in
// jar. The web surface uses it to scope credentials to one browser request.
func (c *Client) WithJar(jar http.CookieJar) *Client {
	clone := *c
	httpClient := *c.httpClient
	httpClient.Jar = jar
	clone.httpClient = &httpClient
	return &clone
}

// Register posts req and classifies the reply. Non-2xx replies return a
// *ServerError; failures before any reply and replies over 1 MiB return a
// *TransportError.
func (c *Client) Register(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "registration.register", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.full", c.endpoint),
	)

	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode registration request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build registration request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &TransportError{Err: err}
		recordSpanError(span, transportErr)
		return Result{}, transportErr
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		transportErr := &TransportError{Err: fmt.Errorf("read registration response: %w", err)}
		recordSpanError(span, transportErr)
		return Result{}, transportErr
	}
	if len(body) > maxResponseBytes {
		transportErr := &TransportError{Err: fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxResponseBytes)}
		recordSpanError(span, transportErr)
		return Result{}, transportErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		serverErr := newServerError(resp.StatusCode, body)
		recordSpanError(span, serverErr)
		return Result{}, serverErr
	}

	return Result{
		StatusCode:  resp.StatusCode,
		RedirectURL: redirectURLFrom(body),
		Body:        body,
	}, nil
}

func resolveEndpoint(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBackendURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend url: %w", err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if (scheme != "http" && scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("backend url %q must be an absolute http(s) URL", baseURL)
	}
	return parsed.JoinPath(RegisterPath).String(), nil
}

func redirectURLFrom(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	raw, ok := fields["redirect_url"]
	if !ok {
		return ""
	}
	var target string
	if err := json.Unmarshal(raw, &target); err != nil {
		return ""
	}
	return target
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		span.SetStatus(codes.Error, serverErr.Error())
		return
	}
	span.SetStatus(codes.Error, "transport failure")
}

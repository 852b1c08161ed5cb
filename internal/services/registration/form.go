package registration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// State is a snapshot of one form instance.
type State struct {
	Email         string
	Password      string
	Submitting    bool
	StatusMessage string
}

// OutcomeKind classifies how a submission ended.
type OutcomeKind string

const (
	// OutcomeRedirect means the user was handed off to the redirect URL.
	OutcomeRedirect OutcomeKind = "redirect"
	// OutcomeUnexpected means a 2xx reply carried no redirect URL.
	OutcomeUnexpected OutcomeKind = "unexpected"
	// OutcomeFailed covers transport errors, non-2xx replies, rejected
	// redirect targets and navigation errors.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of one submission.
type Outcome struct {
	Kind        OutcomeKind
	RedirectURL string
	Message     string
	// Err is the underlying failure for OutcomeFailed.
	Err error
}

// Navigator performs the hand-off to a redirect URL.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

// Navigate calls f.
func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}

// FormOption customizes a Form.
type FormOption func(*Form)

// WithCopy sets the status message copy.
func WithCopy(c Copy) FormOption {
	return func(f *Form) {
		f.copy = c
	}
}

// WithRedirectPolicy sets the policy applied to hand-off targets.
func WithRedirectPolicy(policy RedirectPolicy) FormOption {
	return func(f *Form) {
		f.policy = policy
	}
}

// WithLogger sets where failures are traced. Defaults to log.Default().
func WithLogger(logger *log.Logger) FormOption {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Form is one registration form instance.
type Form struct {
	registrar Registrar
	navigator Navigator
	copy      Copy
	policy    RedirectPolicy
	logger    *log.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	closed bool
}

// NewForm builds an idle form that submits through registrar and hands off
// through navigator.
func NewForm(registrar Registrar, navigator Navigator, opts ...FormOption) (*Form, error) {
	if registrar == nil {
		return nil, errors.New("registrar is required")
	}
	if navigator == nil {
		return nil, errors.New("navigator is required")
	}
	f := &Form{
		registrar: registrar,
		navigator: navigator,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// SetEmail records user input for the email field.
func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Email = email
}

// SetPassword records user input for the password field.
func (f *Form) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Password = password
}

// State returns a snapshot of the form.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed && !f.state.Submitting
}

// Submit sends the current email and password to the backend and updates the
// status message from the reply. It returns ErrSubmitInFlight while another
// submission is pending and ErrFormClosed after Close; every other failure is
// reported through the returned Outcome.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Outcome{}, ErrFormClosed
	}
	if f.state.Submitting {
		f.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	f.state.Submitting = true
	f.state.StatusMessage = ""
	req := Request{Email: f.state.Email, Password: f.state.Password}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	defer func() {
		cancel()
		f.mu.Lock()
		f.state.Submitting = false
		f.cancel = nil
		f.mu.Unlock()
	}()

	return f.submit(ctx, req), nil
}

// Close tears the form down. An in-flight request is aborted and later
// submissions fail with ErrFormClosed.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *Form) submit(ctx context.Context, req Request) Outcome {
	result, err := f.registrar.Register(ctx, req)
	if err != nil {
		return f.fail(err)
	}
	if result.RedirectURL == "" {
		message := f.copy.Unexpected(result.Body)
		f.setStatus(message)
		return Outcome{Kind: OutcomeUnexpected, Message: message}
	}

	if err := f.policy.Check(result.RedirectURL); err != nil {
		return f.fail(err)
	}
	message := f.copy.Redirecting()
	f.setStatus(message)
	if err := f.navigator.Navigate(ctx, result.RedirectURL); err != nil {
		return f.fail(fmt.Errorf("navigate: %w", err))
	}
	return Outcome{Kind: OutcomeRedirect, RedirectURL: result.RedirectURL, Message: message}
}

func (f *Form) fail(err error) Outcome {
	f.logger.Printf("registration error: %v", err)
	message := f.copy.Error(failureDetail(err))
	f.setStatus(message)
	return Outcome{Kind: OutcomeFailed, Message: message, Err: err}
}

func (f *Form) setStatus(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.StatusMessage = message
}

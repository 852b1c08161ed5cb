package registration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSubmitInFlight rejects a submission while another one is pending on
	// the same form.
	ErrSubmitInFlight = errors.New("registration already in flight")
	// ErrFormClosed rejects submissions on a form that was torn down.
	ErrFormClosed = errors.New("registration form closed")
	// ErrRedirectNotAllowed marks a hand-off target rejected by RedirectPolicy.
	ErrRedirectNotAllowed = errors.New("redirect target not allowed")
	// ErrResponseTooLarge marks a backend reply that exceeds the read limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// TransportError reports that no response reached the client.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "registration transport failed"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ServerError reports a non-2xx reply from the backend.
type ServerError struct {
	StatusCode int
	// Detail is the human-readable "detail" field of the reply, when present.
	Detail string
	Body   []byte
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

func newServerError(statusCode int, body []byte) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Detail:     detailFrom(body),
		Body:       body,
	}
}

// detailFrom extracts the "detail" field of a JSON object body. Strings are
// returned verbatim; other JSON values (validation lists, objects) are
// returned compacted so the user still sees what the server said.
func detailFrom(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	raw, ok := fields["detail"]
	if !ok {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return ""
	}
	return compact.String()
}

// failureDetail picks the text shown after "Error: " for err.
func failureDetail(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Detail != "" {
		return serverErr.Detail
	}
	return err.Error()
}

package registration

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/louisbranch/drivelink/internal/platform/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Copy renders the status messages a Form shows. The zero value renders the
// English source strings.
type Copy struct {
	printer *message.Printer
}

// NewCopy returns status copy for the supported locale closest to tag.
func NewCopy(tag language.Tag) Copy {
	return Copy{printer: i18n.Printer(tag)}
}

// Redirecting is shown right before the hand-off.
func (c Copy) Redirecting() string {
	return i18n.LocalizeText(c.printer, i18n.KeyStatusRedirecting, "Redirecting to Google...")
}

// Unexpected labels a 2xx body that carries no redirect URL.
func (c Copy) Unexpected(body []byte) string {
	return i18n.Localize(c.printer, i18n.KeyStatusUnexpected, "Unexpected response:\n%s", prettyBody(body))
}

// Error formats a failure detail.
func (c Copy) Error(detail string) string {
	return i18n.Localize(c.printer, i18n.KeyStatusError, "Error: %s", detail)
}

// prettyBody renders body as two-space indented JSON in its original key
// order. Number spellings and duplicate keys are kept exactly as the backend
// sent them. Bodies that are not JSON are rendered as a JSON string literal.
func prettyBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		var out bytes.Buffer
		if err := json.Indent(&out, trimmed, "", "  "); err == nil {
			return out.String()
		}
	}
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(string(body)); err != nil {
		return string(body)
	}
	return strings.TrimSuffix(out.String(), "\n")
}

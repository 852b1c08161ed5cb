package registration

import (
	"flag"
	"time"

	"github.com/louisbranch/drivelink/internal/platform/i18n"
)

// Settings holds the backend and hand-off configuration every surface shares.
type Settings struct {
	BackendURL             string        `env:"DRIVELINK_BACKEND_URL" envDefault:"http://localhost:3000"`
	AllowedRedirectHosts   []string      `env:"DRIVELINK_REDIRECT_ALLOWED_HOSTS" envSeparator:","`
	AllowedRedirectSchemes []string      `env:"DRIVELINK_REDIRECT_ALLOWED_SCHEMES" envDefault:"https,http" envSeparator:","`
	Timeout                time.Duration `env:"DRIVELINK_REGISTER_TIMEOUT" envDefault:"0s"`
	Lang                   string        `env:"DRIVELINK_LANG" envDefault:"en-US"`
}

// BindFlags registers the flags that override the environment values.
func (s *Settings) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&s.BackendURL, "backend-url", s.BackendURL, "registration backend base URL")
	fs.StringVar(&s.Lang, "lang", s.Lang, "language for status messages (en-US, pt-BR)")
	fs.DurationVar(&s.Timeout, "timeout", s.Timeout, "registration request timeout (0 disables)")
}

// RedirectPolicy returns the configured hand-off policy.
func (s Settings) RedirectPolicy() RedirectPolicy {
	return RedirectPolicy{
		AllowedSchemes: s.AllowedRedirectSchemes,
		AllowedHosts:   s.AllowedRedirectHosts,
	}
}

// NewClient builds a backend client from the settings.
func (s Settings) NewClient(opts ...ClientOption) (*Client, error) {
	all := make([]ClientOption, 0, len(opts)+1)
	all = append(all, WithTimeout(s.Timeout))
	all = append(all, opts...)
	return NewClient(s.BackendURL, all...)
}

// Copy returns status copy for the configured language.
func (s Settings) Copy() Copy {
	tag, _ := i18n.ParseTag(s.Lang)
	return NewCopy(tag)
}

// Package register parses register command flags and submits one
// registration from the terminal.
package register

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	entrypoint "github.com/louisbranch/drivelink/internal/platform/cmd"
	"github.com/louisbranch/drivelink/internal/services/registration"
)

// ErrUsage marks invalid invocations.
var ErrUsage = errors.New("usage")

// ErrNotRedirected reports a successful reply that carried no hand-off URL.
var ErrNotRedirected = errors.New("registration did not return a redirect URL")

// ErrRegistrationFailed reports a submission that failed before any hand-off.
var ErrRegistrationFailed = errors.New("registration failed")

// Config holds register command configuration.
type Config struct {
	Email        string `env:"DRIVELINK_REGISTER_EMAIL"`
	Password     string `env:"DRIVELINK_REGISTER_PASSWORD"`
	Registration registration.Settings
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return parseConfig(fs, args, nil)
}

func parseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFrom(&cfg, environ); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Email, "email", cfg.Email, "account email address")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "account password (prefer DRIVELINK_REGISTER_PASSWORD)")
	cfg.Registration.BindFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Email) == "" || cfg.Password == "" {
		return Config{}, fmt.Errorf("%w: email and password are required", ErrUsage)
	}
	return cfg, nil
}

// Run submits the registration. The hand-off URL is printed to out; status
// messages and the error trace go to errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRegister, func(ctx context.Context) error {
		client, err := cfg.Registration.NewClient()
		if err != nil {
			return err
		}
		form, err := registration.NewForm(
			client,
			registration.NavigatorFunc(func(_ context.Context, target string) error {
				_, err := fmt.Fprintln(out, target)
				return err
			}),
			registration.WithCopy(cfg.Registration.Copy()),
			registration.WithRedirectPolicy(cfg.Registration.RedirectPolicy()),
			registration.WithLogger(log.New(errOut, log.Prefix(), log.Flags())),
		)
		if err != nil {
			return err
		}
		defer form.Close()
		form.SetEmail(cfg.Email)
		form.SetPassword(cfg.Password)

		outcome, err := form.Submit(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(errOut, outcome.Message)
		switch outcome.Kind {
		case registration.OutcomeRedirect:
			return nil
		case registration.OutcomeFailed:
			return fmt.Errorf("%w: %w", ErrRegistrationFailed, outcome.Err)
		default:
			return fmt.Errorf("%w: outcome %s", ErrNotRedirected, outcome.Kind)
		}
	})
}

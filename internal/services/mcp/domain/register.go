package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/drivelink/internal/services/registration"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterUserToolName is the MCP name of the registration tool.
const RegisterUserToolName = "register_user"

// RegisterUserInput represents the MCP tool input for registering a user.
type RegisterUserInput struct {
	Email    string `json:"email" jsonschema:"email address of the account to register"`
	Password string `json:"password" jsonschema:"password of the account to register"`
}

// RegisterUserResult represents the MCP tool output for registering a user.
type RegisterUserResult struct {
	Outcome     string `json:"outcome" jsonschema:"how the registration ended: redirect, unexpected or failed"`
	RedirectURL string `json:"redirect_url,omitempty" jsonschema:"consent URL the user must open to finish registration"`
	Message     string `json:"message" jsonschema:"status message shown to the user"`
}

// RegisterDeps holds what the register_user handler needs.
type RegisterDeps struct {
	Client         *registration.Client
	RedirectPolicy registration.RedirectPolicy
	Copy           registration.Copy
	Logger         *log.Logger
}

// RegisterUserTool defines the MCP tool schema for registering a user.
func RegisterUserTool() *mcp.Tool {
	return &mcp.Tool{
		Name: RegisterUserToolName,
		Description: "Registers an account with the backend and returns the consent URL " +
			"the user must open to finish signing up with Google.",
	}
}

// RegisterUserHandler submits one registration per call. The consent URL is
// returned to the caller instead of being opened, and each call gets its own
// cookie jar so credentials never leak between callers.
func RegisterUserHandler(deps RegisterDeps) mcp.ToolHandlerFor[RegisterUserInput, RegisterUserResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RegisterUserInput) (*mcp.CallToolResult, RegisterUserResult, error) {
		if deps.Client == nil {
			return nil, RegisterUserResult{}, errors.New("registration client is not configured")
		}
		if strings.TrimSpace(input.Email) == "" || input.Password == "" {
			return nil, RegisterUserResult{}, errors.New("email and password are required")
		}

		jar, err := registration.NewCookieJar()
		if err != nil {
			return nil, RegisterUserResult{}, err
		}
		var handedOff string
		form, err := registration.NewForm(
			deps.Client.WithJar(jar),
			registration.NavigatorFunc(func(_ context.Context, target string) error {
				handedOff = target
				return nil
			}),
			registration.WithCopy(deps.Copy),
			registration.WithRedirectPolicy(deps.RedirectPolicy),
			registration.WithLogger(deps.Logger),
		)
		if err != nil {
			return nil, RegisterUserResult{}, fmt.Errorf("create registration form: %w", err)
		}
		defer form.Close()
		form.SetEmail(input.Email)
		form.SetPassword(input.Password)

		outcome, err := form.Submit(ctx)
		if err != nil {
			return nil, RegisterUserResult{}, fmt.Errorf("register user: %w", err)
		}
		return nil, RegisterUserResult{
			Outcome:     string(outcome.Kind),
			RedirectURL: handedOff,
			Message:     outcome.Message,
		}, nil
	}
}

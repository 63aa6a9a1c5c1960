package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AuthInput defines the input schema for the mixamo_auth tool.
type AuthInput struct {
	Action string `json:"action,omitempty" jsonschema:"Action to perform: status (default), set_token or clear"`
	Token  string `json:"token,omitempty" jsonschema:"Bearer token from the Mixamo browser session, required for set_token"`
}

// authStatus is the JSON payload returned by the status action.
type authStatus struct {
	Authenticated bool   `json:"authenticated"`
	Valid         *bool  `json:"valid,omitempty"`
	TokenPath     string `json:"token_path,omitempty"`
}

// NewAuthHandler creates the mixamo_auth tool handler.
// Manages the persisted access token: inspect, replace or remove it.
func NewAuthHandler(deps *Dependencies) mcp.ToolHandlerFor[AuthInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AuthInput) (*mcp.CallToolResult, any, error) {
		switch input.Action {
		case "", "status":
			status := authStatus{Authenticated: deps.Client.HasToken()}
			if deps.Tokens != nil {
				status.TokenPath = deps.Tokens.Path()
			}
			if status.Authenticated {
				valid := deps.Client.ValidateToken(ctx) == nil
				status.Valid = &valid
			}
			return JSONResult(status), nil, nil

		case "set_token":
			if input.Token == "" {
				return ErrorResult("Token cannot be empty",
					"Copy the Bearer token from a logged-in mixamo.com browser session"), nil, nil
			}
			if deps.Tokens != nil {
				if err := deps.Tokens.Save(input.Token); err != nil {
					deps.Logger.Error("saving token failed", "error", err)
					return ErrorResult("Failed to save token: "+err.Error(), ""), nil, nil
				}
			}
			deps.Client.SetToken(input.Token)

			if err := deps.Client.ValidateToken(ctx); err != nil {
				deps.Logger.Warn("saved token failed validation", "error", err)
				return ErrorResult("Token saved but failed validation",
					"The token may be expired; grab a fresh one from the browser"), nil, nil
			}
			deps.Logger.Info("token saved and validated")
			return TextResult("Token saved and validated"), nil, nil

		case "clear":
			if deps.Tokens != nil {
				if err := deps.Tokens.Clear(); err != nil {
					return ErrorResult("Failed to remove token: "+err.Error(), ""), nil, nil
				}
			}
			deps.Client.SetToken("")
			return TextResult("Token removed"), nil, nil

		default:
			return ErrorResult("Unknown action: "+input.Action,
				"Valid actions are status, set_token and clear"), nil, nil
		}
	}
}

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/tool"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"google.golang.org/genai"
)

// Lookup is the slice of the account use case this tool needs.
type Lookup interface {
	Get(ctx context.Context, userID string) (*model.Account, error)
}

// Tool implements get_user_account_info. The caller's identity comes
// from the session context, never from tool arguments.
type Tool struct {
	lookup Lookup
}

// New creates the get_user_account_info tool
func New(lookup Lookup) *Tool {
	return &Tool{lookup: lookup}
}

// Prompt returns additional information to be added to the system prompt
func (t *Tool) Prompt(ctx context.Context) string {
	return `When a user asks about their account details (subscription tier, email address, or other stored profile information), use the get_user_account_info tool. The user's identity is determined from the session.`
}

// Spec returns the tool specification for Gemini function calling
func (t *Tool) Spec() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "get_user_account_info",
				Description: "Retrieves account information (name, email, subscription tier) for the current user. Use when the user asks about their specific account details.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{},
				},
			},
		},
	}
}

// Execute runs the tool. The result is always a user-facing string;
// store failures are logged here and reduced to a generic apology.
func (t *Tool) Execute(ctx context.Context, fc genai.FunctionCall) (*genai.FunctionResponse, error) {
	logger := logging.From(ctx)
	session := tool.SessionFrom(ctx)

	logger.Info("looking up account info", "identity", session.Identity)

	if session.Identity == "" {
		logger.Warn("no participant identity in session")
		return response(fc, "Sorry, I couldn't verify your identity for this session."), nil
	}

	record, err := t.lookup.Get(ctx, session.Identity)
	switch {
	case err == nil:
		return response(fc, formatAccount(session.Identity, record)), nil

	case errors.Is(err, model.ErrAccountNotFound):
		return response(fc, fmt.Sprintf("I couldn't find an account associated with the ID: %s.", session.Identity)), nil

	default:
		logger.Error("account lookup failed", "identity", session.Identity, "error", err)
		return response(fc, "Sorry, I encountered an issue trying to retrieve your account details. Please try again later."), nil
	}
}

// formatAccount renders the fixed four-line account summary. Missing
// fields become "N/A" here at the formatting boundary.
func formatAccount(userID string, record *model.Account) string {
	return fmt.Sprintf("Okay, I found these details for user %s:\nName: %s\nEmail: %s\nSubscription: %s",
		userID,
		orNA(record.FullName),
		orNA(record.Email),
		orNA(record.SubscriptionTier),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func response(fc genai.FunctionCall, result string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		Name:     fc.Name,
		Response: map[string]any{"result": result},
	}
}

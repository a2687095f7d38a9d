package account_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/tool"
	"github.com/instavoice/assistant/pkg/tool/account"
)

type mockLookup struct {
	account *model.Account
	err     error
	calls   int
}

func (m *mockLookup) Get(ctx context.Context, userID string) (*model.Account, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

func sessionCtx(identity string) context.Context {
	return tool.WithSession(context.Background(), tool.Session{
		Identity:  identity,
		SessionID: "room-1",
	})
}

func result(t *testing.T, resp *genai.FunctionResponse) string {
	t.Helper()
	gt.NotNil(t, resp)
	text, ok := resp.Response["result"].(string)
	gt.True(t, ok)
	return text
}

func TestAccountSchema(t *testing.T) {
	spec := account.New(nil).Spec()
	gt.NotNil(t, spec)
	gt.Equal(t, len(spec.FunctionDeclarations), 1)

	decl := spec.FunctionDeclarations[0]
	gt.Equal(t, decl.Name, "get_user_account_info")
	gt.NotEqual(t, decl.Description, "")
	gt.Equal(t, len(decl.Parameters.Required), 0)
}

func TestAccountFound(t *testing.T) {
	lookup := &mockLookup{
		account: &model.Account{
			UserID:           "user_exists_123",
			FullName:         "Real User",
			Email:            "real_user@example.com",
			SubscriptionTier: "Gold Tier",
		},
	}

	resp, err := account.New(lookup).Execute(sessionCtx("user_exists_123"), genai.FunctionCall{
		Name: "get_user_account_info",
		Args: map[string]any{},
	})
	gt.NoError(t, err)

	gt.Equal(t, result(t, resp), "Okay, I found these details for user user_exists_123:\nName: Real User\nEmail: real_user@example.com\nSubscription: Gold Tier")
	gt.Equal(t, lookup.calls, 1)
}

func TestAccountMissingFields(t *testing.T) {
	lookup := &mockLookup{
		account: &model.Account{
			UserID: "user_sparse",
			Email:  "sparse@example.com",
		},
	}

	resp, err := account.New(lookup).Execute(sessionCtx("user_sparse"), genai.FunctionCall{
		Name: "get_user_account_info",
	})
	gt.NoError(t, err)

	gt.Equal(t, result(t, resp), "Okay, I found these details for user user_sparse:\nName: N/A\nEmail: sparse@example.com\nSubscription: N/A")
}

func TestAccountNotFound(t *testing.T) {
	lookup := &mockLookup{err: model.ErrAccountNotFound}

	resp, err := account.New(lookup).Execute(sessionCtx("user_ghost"), genai.FunctionCall{
		Name: "get_user_account_info",
	})
	gt.NoError(t, err)

	gt.Equal(t, result(t, resp), "I couldn't find an account associated with the ID: user_ghost.")
}

func TestAccountWrappedNotFound(t *testing.T) {
	lookup := &mockLookup{err: goerr.Wrap(model.ErrAccountNotFound, "account lookup failed")}

	resp, err := account.New(lookup).Execute(sessionCtx("user_ghost"), genai.FunctionCall{
		Name: "get_user_account_info",
	})
	gt.NoError(t, err)

	gt.Equal(t, result(t, resp), "I couldn't find an account associated with the ID: user_ghost.")
}

func TestAccountDriverError(t *testing.T) {
	lookup := &mockLookup{err: goerr.New("connection refused")}

	resp, err := account.New(lookup).Execute(sessionCtx("user_exists_123"), genai.FunctionCall{
		Name: "get_user_account_info",
	})
	gt.NoError(t, err)

	gt.Equal(t, result(t, resp), "Sorry, I encountered an issue trying to retrieve your account details. Please try again later.")
}

func TestAccountNoIdentity(t *testing.T) {
	lookup := &mockLookup{}

	resp, err := account.New(lookup).Execute(context.Background(), genai.FunctionCall{
		Name: "get_user_account_info",
	})
	gt.NoError(t, err)

	gt.Equal(t, result(t, resp), "Sorry, I couldn't verify your identity for this session.")
	gt.Equal(t, lookup.calls, 0)
}

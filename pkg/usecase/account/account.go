package account

import (
	"context"
	"errors"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/repository"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// UseCase provides user account lookups.
type UseCase struct {
	repo repository.Repository
}

func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Get fetches the account record for an opaque user ID. An
// uninitialized store is a driver error, and a missing record returns
// model.ErrAccountNotFound; callers rely on the distinction to choose
// a user-facing message. Unlike knowledge search, neither condition is
// softened to an empty result.
func (u *UseCase) Get(ctx context.Context, userID string) (*model.Account, error) {
	logger := logging.From(ctx)

	if u.repo == nil {
		logger.Error("repository not initialized, cannot fetch account", "user_id", userID)
		return nil, goerr.Wrap(repository.ErrNotInitialized, "cannot fetch account")
	}

	record, err := u.repo.GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			logger.Warn("no account record found", "user_id", userID)
			return nil, err
		}
		logger.Error("failed to fetch account", "user_id", userID, "error", err)
		return nil, goerr.Wrap(err, "failed to fetch account", goerr.V("user_id", userID))
	}

	logger.Info("account record found", "user_id", userID)
	return record, nil
}

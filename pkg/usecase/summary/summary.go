package summary

import (
	"context"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/repository"
	"github.com/instavoice/assistant/pkg/utils/logging"
)

// UseCase persists interaction summaries for the next session.
type UseCase struct {
	repo repository.Repository
}

func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Save appends a summary row. Empty summary text is accepted and
// stored as-is, and repeated calls append repeated rows. Returns
// whether the row was written; failures are logged, never propagated.
func (u *UseCase) Save(ctx context.Context, userID, sessionID, text string) bool {
	logger := logging.From(ctx)

	if u.repo == nil {
		logger.Error("repository not initialized, cannot save summary", "user_id", userID)
		return false
	}

	record := &model.InteractionSummary{
		UserID:    userID,
		SessionID: sessionID,
		Summary:   text,
	}

	if err := u.repo.PutSummary(ctx, record); err != nil {
		logger.Error("failed to save interaction summary",
			"user_id", userID, "session_id", sessionID, "error", err)
		return false
	}

	logger.Info("interaction summary saved", "user_id", userID, "session_id", sessionID)
	return true
}

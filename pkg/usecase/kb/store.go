package kb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/utils/logging"
)

// Store embeds content and appends it as a knowledge article. Returns
// whether the article was written; failures are logged, never
// propagated.
func (u *UseCase) Store(ctx context.Context, title, content string, metadata map[string]string) bool {
	logger := logging.From(ctx)

	if u.repo == nil {
		logger.Error("repository not initialized, cannot store article", "title", title)
		return false
	}

	embedding := u.Embed(ctx, content)
	if embedding == nil {
		logger.Error("failed to generate embedding for article", "title", title)
		return false
	}

	article := &model.Article{
		ID:        model.NewArticleID(),
		Title:     title,
		Content:   content,
		Embedding: firestore.Vector32(embedding),
		Metadata:  metadata,
	}

	if err := u.repo.PutArticle(ctx, article); err != nil {
		logger.Error("failed to store article", "title", title, "error", err)
		return false
	}

	logger.Info("stored knowledge article", "title", title)
	return true
}

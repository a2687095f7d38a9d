package kb

import (
	"context"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/instavoice/assistant/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Search finds articles relevant to the query text. An uninitialized
// store or a failed query embedding returns no results without an
// error; a failure of the search call itself is reported as an error
// so callers can distinguish it from an empty knowledge base.
// Note this is deliberately softer than account lookup, which treats
// an uninitialized store as a driver error.
func (u *UseCase) Search(ctx context.Context, query string, topK int) ([]*model.Article, error) {
	logger := logging.From(ctx)

	if u.repo == nil {
		logger.Error("repository not initialized, cannot query knowledge base")
		return nil, nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding := u.Embed(ctx, query)
	if embedding == nil {
		logger.Error("failed to generate embedding for knowledge base query")
		return nil, nil
	}

	articles, err := u.repo.SearchArticles(ctx, embedding, topK, matchThreshold)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query knowledge base", goerr.V("query", truncate(query, 50)))
	}

	if len(articles) == 0 {
		logger.Info("no relevant articles found", "query", truncate(query, 50))
		return nil, nil
	}

	logger.Info("found relevant articles", "query", truncate(query, 50), "count", len(articles))
	return articles, nil
}

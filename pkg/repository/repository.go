package repository

import (
	"context"

	"github.com/instavoice/assistant/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotInitialized is returned by callers that hold a nil repository
// handle. It marks the store as unusable, which is a different outcome
// from a valid empty result.
var ErrNotInitialized = goerr.New("repository not initialized")

// Repository defines the interface for the remote account, knowledge
// base and summary store.
type Repository interface {
	// GetAccount retrieves a user profile by its opaque user ID.
	// Returns model.ErrAccountNotFound when no record exists.
	GetAccount(ctx context.Context, userID string) (*model.Account, error)

	// SearchArticles performs vector search over knowledge articles.
	// minSimilarity is the similarity score a candidate must reach to
	// be included. Results keep the store's ranking order.
	SearchArticles(ctx context.Context, embedding []float32, limit int, minSimilarity float64) ([]*model.Article, error)

	// PutArticle appends a knowledge article.
	PutArticle(ctx context.Context, article *model.Article) error

	// PutSummary appends an interaction summary. Summaries are never
	// deduplicated; each call stores a new row.
	PutSummary(ctx context.Context, summary *model.InteractionSummary) error

	// Close releases the underlying client.
	Close() error
}

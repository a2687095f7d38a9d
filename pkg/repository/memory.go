package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/instavoice/assistant/pkg/model"
)

// Memory is an in-process Repository used by tests and credential-less
// development. Vector search uses the same cosine ranking and
// similarity floor as the Firestore implementation.
type Memory struct {
	mu        sync.RWMutex
	accounts  map[string]*model.Account
	articles  []*model.Article
	summaries []*model.InteractionSummary
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]*model.Account),
	}
}

// AddAccount seeds an account record
func (r *Memory) AddAccount(account *model.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.UserID] = account
}

func (r *Memory) GetAccount(ctx context.Context, userID string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[userID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}

	copied := *account
	return &copied, nil
}

func (r *Memory) SearchArticles(ctx context.Context, embedding []float32, limit int, minSimilarity float64) ([]*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		article    *model.Article
		similarity float64
	}

	var matches []scored
	for _, article := range r.articles {
		sim := cosineSimilarity(embedding, article.Embedding)
		if sim >= minSimilarity {
			matches = append(matches, scored{article: article, similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]*model.Article, 0, len(matches))
	for _, m := range matches {
		copied := *m.article
		copied.Distance = 1 - m.similarity
		results = append(results, &copied)
	}

	return results, nil
}

func (r *Memory) PutArticle(ctx context.Context, article *model.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *article
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.articles = append(r.articles, &copied)
	return nil
}

func (r *Memory) PutSummary(ctx context.Context, summary *model.InteractionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *summary
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.summaries = append(r.summaries, &copied)
	return nil
}

// Summaries returns all stored summaries in insertion order
func (r *Memory) Summaries() []*model.InteractionSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*model.InteractionSummary(nil), r.summaries...)
}

// Articles returns all stored articles in insertion order
func (r *Memory) Articles() []*model.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*model.Article(nil), r.articles...)
}

func (r *Memory) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

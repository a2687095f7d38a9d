package kb

import (
	"github.com/instavoice/assistant/pkg/adapter"
	"github.com/instavoice/assistant/pkg/repository"
)

const (
	// DefaultTopK is the result-count cap for knowledge searches.
	DefaultTopK = 3

	// matchThreshold is the minimum cosine similarity a candidate
	// article must reach to be returned.
	matchThreshold = 0.7
)

// UseCase provides knowledge-base operations: embedding generation,
// similarity search and article ingestion. A nil repository or Gemini
// handle degrades the operation instead of crashing; see each method.
type UseCase struct {
	repo   repository.Repository
	gemini adapter.Gemini
}

// New creates a knowledge-base use case. Either dependency may be nil
// when the corresponding credential was missing at startup.
func New(repo repository.Repository, gemini adapter.Gemini) *UseCase {
	return &UseCase{
		repo:   repo,
		gemini: gemini,
	}
}

package model

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type ArticleID string

// NewArticleID generates a new unique ArticleID
func NewArticleID() ArticleID {
	return ArticleID(uuid.New().String())
}

// Article is a knowledge-base entry. Embedding dimensionality must
// match the vector index on the knowledge_articles collection.
type Article struct {
	ID        ArticleID          `firestore:"-"`
	Title     string             `firestore:"title"`
	Content   string             `firestore:"content"`
	Embedding firestore.Vector32 `firestore:"embedding"`
	Metadata  map[string]string  `firestore:"metadata,omitempty"`
	CreatedAt time.Time          `firestore:"created_at,serverTimestamp"`

	// Distance is the cosine distance reported by vector search.
	// Zero value for articles read outside a search.
	Distance float64 `firestore:"vector_distance,omitempty"`
}

package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/instavoice/assistant/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionAccounts  = "user_profiles"
	collectionArticles  = "knowledge_articles"
	collectionSummaries = "interaction_summaries"

	embeddingField = "embedding"
	distanceField  = "vector_distance"
)

// Firestore implements Repository using Cloud Firestore. Knowledge
// articles carry a Vector32 embedding field indexed for cosine search.
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

func (r *Firestore) GetAccount(ctx context.Context, userID string) (*model.Account, error) {
	doc, err := r.client.Collection(collectionAccounts).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrAccountNotFound, "no account record",
				goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to fetch account", goerr.V("user_id", userID))
	}

	var account model.Account
	if err := doc.DataTo(&account); err != nil {
		return nil, goerr.Wrap(err, "failed to decode account", goerr.V("user_id", userID))
	}
	if account.UserID == "" {
		account.UserID = doc.Ref.ID
	}

	return &account, nil
}

func (r *Firestore) SearchArticles(ctx context.Context, embedding []float32, limit int, minSimilarity float64) ([]*model.Article, error) {
	// Firestore ranks by cosine distance, so the similarity floor
	// becomes a distance ceiling.
	maxDistance := 1 - minSimilarity

	query := r.client.Collection(collectionArticles).FindNearest(
		embeddingField,
		firestore.Vector32(embedding),
		limit,
		firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{
			DistanceThreshold:   &maxDistance,
			DistanceResultField: distanceField,
		},
	)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var articles []*model.Article
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to search articles")
		}

		var article model.Article
		if err := doc.DataTo(&article); err != nil {
			return nil, goerr.Wrap(err, "failed to decode article", goerr.V("doc", doc.Ref.ID))
		}
		article.ID = model.ArticleID(doc.Ref.ID)
		articles = append(articles, &article)
	}

	return articles, nil
}

func (r *Firestore) PutArticle(ctx context.Context, article *model.Article) error {
	if _, err := r.client.Collection(collectionArticles).Doc(string(article.ID)).Create(ctx, article); err != nil {
		return goerr.Wrap(err, "failed to store article", goerr.V("title", article.Title))
	}
	return nil
}

func (r *Firestore) PutSummary(ctx context.Context, summary *model.InteractionSummary) error {
	if _, err := r.client.Collection(collectionSummaries).NewDoc().Create(ctx, summary); err != nil {
		return goerr.Wrap(err, "failed to store summary",
			goerr.V("user_id", summary.UserID), goerr.V("session_id", summary.SessionID))
	}
	return nil
}

func (r *Firestore) Close() error {
	return r.client.Close()
}

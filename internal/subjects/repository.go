package subjects

import (
	"context"
	"errors"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository reads subject records. Subjects are written by other services.
type Repository interface {
	// Get returns the full subject record, or nil when it does not exist.
	Get(ctx context.Context, id string) (*models.Subject, error)
	// SummariesByIDs returns the redacted view of every existing id.
	SummariesByIDs(ctx context.Context, ids []string) ([]*models.SubjectSummary, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Subject, error) {
	var s models.Subject
	if err := r.col.FindOne(ctx, bson.M{"_id": models.MatchIDs(id)}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoRepository) SummariesByIDs(ctx context.Context, ids []string) ([]*models.SubjectSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetProjection(models.SubjectProjection)
	cur, err := r.col.Find(ctx, bson.M{"_id": models.MatchIDs(ids...)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*models.SubjectSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

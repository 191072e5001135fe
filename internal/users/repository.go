package users

import (
	"context"
	"errors"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	UpsertBySub(ctx context.Context, u *models.User) (*models.User, error)
	GetBySub(ctx context.Context, sub string) (*models.User, error)
	// AuthorsByIDs returns the redacted author view of every existing id.
	AuthorsByIDs(ctx context.Context, ids []string) ([]*models.Author, error)
}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new repository for the given collection
func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{col: col}
}

// EnsureIndexes creates the unique index on the OIDC subject.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sub", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoUserRepository) UpsertBySub(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now().UTC()
	set := bson.M{
		"email":      u.Email,
		"name":       u.Name,
		"updated_at": now,
	}
	if len(u.Roles) > 0 {
		set["roles"] = u.Roles
	}
	upd := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"is_blocked": false,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"sub": u.Sub}, upd, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoUserRepository) GetBySub(ctx context.Context, sub string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"sub": sub}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepository) AuthorsByIDs(ctx context.Context, ids []string) ([]*models.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetProjection(models.AuthorProjection)
	cur, err := r.col.Find(ctx, bson.M{"_id": models.MatchIDs(ids...)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*models.Author
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

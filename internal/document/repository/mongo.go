package repository

import (
	"context"
	"errors"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/document"
	"github.com/docshare/docshare/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. New document ids
// are stored as the hex string of a fresh ObjectID; lookups also match
// records whose ids and references are stored as ObjectIDs.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// EnsureIndexes creates the indexes the listing queries rely on.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_approved", Value: 1}, {Key: "subject", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	})
	return err
}

// byID matches a document whose _id is stored either as the hex string or
// as the ObjectID.
func byID(id string) bson.M {
	return bson.M{"_id": models.MatchIDs(id)}
}

// filterDoc turns the whitelisted Filter into a query document.
func filterDoc(f document.Filter) bson.M {
	q := bson.M{}
	if f.Title != nil {
		q["title"] = *f.Title
	}
	if f.Author != nil {
		q["author"] = models.MatchIDs(*f.Author)
	}
	if f.Subject != nil {
		q["subject"] = models.MatchIDs(*f.Subject)
	}
	if f.IsApproved != nil {
		q["is_approved"] = *f.IsApproved
	}
	return q
}

func (m *MongoRepo) Create(ctx context.Context, d *document.Document) error {
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := m.col.InsertOne(ctx, d)
	return err
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	err := m.col.FindOne(ctx, byID(id)).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Find(ctx context.Context, f document.Filter, skip, limit int64) ([]*document.Document, error) {
	opts := options.Find()
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := m.col.Find(ctx, filterDoc(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Update(ctx context.Context, id string, c Changes, returnUpdated bool) (*document.Document, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.Content != nil {
		set["content"] = *c.Content
	}
	if c.IsApproved != nil {
		set["is_approved"] = *c.IsApproved
	}
	rd := options.Before
	if returnUpdated {
		rd = options.After
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(rd)
	var d document.Document
	if err := m.col.FindOneAndUpdate(ctx, byID(id), bson.M{"$set": set}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	if err := m.col.FindOneAndDelete(ctx, byID(id)).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

package transactions

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// Repository is a MongoDB-backed store for the transactions collection.
// Documents are schema-less: fields are whatever the caller supplies, and the
// server assigns the _id on insert.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{col: col}
}

// Insert stores one document and returns its generated identifier.
func (r *Repository) Insert(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindByID fetches a single document by its generated identifier.
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// FindAll returns every document in the collection, unordered. An empty
// collection yields an empty slice, not an error.
func (r *Repository) FindAll(ctx context.Context) ([]bson.M, error) {
	return r.find(ctx, bson.M{})
}

// FindMatching returns every document matching the equality filter.
func (r *Repository) FindMatching(ctx context.Context, filter bson.M) ([]bson.M, error) {
	return r.find(ctx, filter)
}

func (r *Repository) find(ctx context.Context, filter bson.M) ([]bson.M, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []bson.M{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExtraInfoStore holds free-form supplemental profile documents in the
// "userExtraInfo" collection, keyed one-per-user by userId.
type ExtraInfoStore struct {
	col *mongo.Collection
}

func NewExtraInfoStore(db *mongo.Database) *ExtraInfoStore {
	return &ExtraInfoStore{col: db.Collection("userExtraInfo")}
}

// Get returns the extra-info document for a user, or nil on a miss.
func (s *ExtraInfoStore) Get(ctx context.Context, userID string) (bson.M, error) {
	var doc bson.M
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Upsert replaces the stored fields for a user, creating the document
// when absent. Repeating the same payload is idempotent.
func (s *ExtraInfoStore) Upsert(ctx context.Context, userID string, fields bson.M) error {
	delete(fields, "_id")
	delete(fields, "userId")
	_, err := s.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	return err
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peerfund/server/internal/models"
)

// FundraiseStore handles campaign applications in the
// "fundraiseApplications" collection.
type FundraiseStore struct {
	col *mongo.Collection
}

func NewFundraiseStore(db *mongo.Database) *FundraiseStore {
	return &FundraiseStore{col: db.Collection("fundraiseApplications")}
}

// FindByEmail returns the application submitted under the given email,
// or nil when none exists.
func (s *FundraiseStore) FindByEmail(ctx context.Context, email string) (*models.FundraiseApplication, error) {
	var app models.FundraiseApplication
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *FundraiseStore) Insert(ctx context.Context, app *models.FundraiseApplication) (string, error) {
	app.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, app)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (s *FundraiseStore) List(ctx context.Context) ([]models.FundraiseApplication, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.FundraiseApplication
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

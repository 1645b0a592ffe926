package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peerfund/server/internal/models"
)

// LoanStore appends loan requests to the "loanRequests" collection.
type LoanStore struct {
	col *mongo.Collection
}

func NewLoanStore(db *mongo.Database) *LoanStore {
	return &LoanStore{col: db.Collection("loanRequests")}
}

func (s *LoanStore) Insert(ctx context.Context, req *models.LoanRequest) (string, error) {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

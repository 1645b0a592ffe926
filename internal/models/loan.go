package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoanRequest is a single loan submission in the "loanRequests"
// collection. Append-only, no uniqueness constraint.
type LoanRequest struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LoanAmount    float64            `json:"loanAmount" bson:"loanAmount"`
	Purpose       string             `json:"purpose" bson:"purpose"`
	RepaymentTime float64            `json:"repaymentTime" bson:"repaymentTime"`
	RequestedAt   time.Time          `json:"requestedAt" bson:"requestedAt"`
}

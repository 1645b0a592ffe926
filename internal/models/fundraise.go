package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FundraiseApplication is a campaign application stored in the
// "fundraiseApplications" collection. At most one per email.
type FundraiseApplication struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Title       string             `json:"title,omitempty" bson:"title,omitempty"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Goal        float64            `json:"goal,omitempty" bson:"goal,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is one point in a user's rating history within a category.
// Records are append-only: each recorded match adds a new document, and
// the current rating for a (user, category) pair is the most recent by date.
type Rating struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	CategoryID primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Rate       float64            `bson:"rate" json:"rate"`
	Date       time.Time          `bson:"date" json:"date"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat stores one assistant exchange for a user
type Chat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Content   string             `bson:"content" json:"content"`
	Reply     string             `bson:"reply" json:"reply"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

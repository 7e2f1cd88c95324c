package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match records one completed contest. Winner and loser are fixed at
// creation; only the points and date may be corrected afterwards.
type Match struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	WinnerID    primitive.ObjectID `bson:"winnerId" json:"winnerId"`
	LoserID     primitive.ObjectID `bson:"loserId" json:"loserId"`
	CategoryID  primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	WinnerPoint int                `bson:"winnerPoint" json:"winnerPoint"`
	LoserPoint  int                `bson:"loserPoint" json:"loserPoint"`
	Date        time.Time          `bson:"date" json:"date"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package db

import (
	"context"
	"time"

	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMatch inserts a new match record.
func CreateMatch(ctx context.Context, match models.Match) (*models.Match, error) {
	now := time.Now().UTC()
	match.ID = primitive.NewObjectID()
	match.CreatedAt = now
	match.UpdatedAt = now
	if match.Date.IsZero() {
		match.Date = now
	}

	if _, err := MatchesCollection.InsertOne(ctx, match); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetMatch fetches a match by ID.
func GetMatch(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	var match models.Match
	err := MatchesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&match)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Entity: "Match", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetUserMatches returns all matches a user played, as winner or loser,
// most recent first.
func GetUserMatches(ctx context.Context, userID primitive.ObjectID) ([]models.Match, error) {
	filter := bson.M{"$or": []bson.M{
		{"winnerId": userID},
		{"loserId": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := MatchesCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// GetCategoryMatches returns all matches in a category, most recent first.
func GetCategoryMatches(ctx context.Context, categoryID primitive.ObjectID) ([]models.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := MatchesCollection.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateMatch corrects points and/or date of an existing match. Winner,
// loser and category are immutable once recorded.
func UpdateMatch(ctx context.Context, id primitive.ObjectID, winnerPoint, loserPoint *int, date *time.Time) (*models.Match, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	if winnerPoint != nil {
		fields["winnerPoint"] = *winnerPoint
	}
	if loserPoint != nil {
		fields["loserPoint"] = *loserPoint
	}
	if date != nil {
		fields["date"] = *date
	}

	result, err := MatchesCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, &NotFoundError{Entity: "Match", ID: id.Hex()}
	}
	return GetMatch(ctx, id)
}

package db

import (
	"context"
	"math"
	"time"

	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateRating appends a new rating history record. Prior records for the
// same (user, category) pair are never overwritten.
func CreateRating(ctx context.Context, rating models.Rating) (*models.Rating, error) {
	if math.IsNaN(rating.Rate) || math.IsInf(rating.Rate, 0) {
		return nil, &ValidationError{Field: "rate", Reason: "must be a finite number"}
	}

	now := time.Now().UTC()
	rating.ID = primitive.NewObjectID()
	rating.CreatedAt = now
	rating.UpdatedAt = now
	if rating.Date.IsZero() {
		rating.Date = now
	}

	if _, err := RatingsCollection.InsertOne(ctx, rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetRating fetches a rating record by ID.
func GetRating(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := RatingsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Entity: "Rating", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetCurrentRating returns the most recent rating record for a user in a
// category, by effective date descending.
func GetCurrentRating(ctx context.Context, userID, categoryID primitive.ObjectID) (*models.Rating, error) {
	filter := bson.M{"userId": userID, "categoryId": categoryID}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var rating models.Rating
	err := RatingsCollection.FindOne(ctx, filter, opts).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Entity: "Rating", ID: userID.Hex() + "/" + categoryID.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetRatingHistory returns the full rating trail for a user in a category,
// ascending by date.
func GetRatingHistory(ctx context.Context, userID, categoryID primitive.ObjectID) ([]models.Rating, error) {
	filter := bson.M{"userId": userID, "categoryId": categoryID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := RatingsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetCategoryRatings returns every rating record in a category, descending
// by rate. This is the raw feed the ranking aggregator dedupes.
func GetCategoryRatings(ctx context.Context, categoryID primitive.ObjectID) ([]models.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rate", Value: -1}})

	cursor, err := RatingsCollection.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// UpdateRating corrects rate and/or date of an existing record by ID.
// The match workflow never calls this; it exists for manual corrections.
func UpdateRating(ctx context.Context, id primitive.ObjectID, rate *float64, date *time.Time) (*models.Rating, error) {
	fields := bson.M{"updatedAt": time.Now().UTC()}
	if rate != nil {
		if math.IsNaN(*rate) || math.IsInf(*rate, 0) {
			return nil, &ValidationError{Field: "rate", Reason: "must be a finite number"}
		}
		fields["rate"] = *rate
	}
	if date != nil {
		fields["date"] = *date
	}

	result, err := RatingsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, &NotFoundError{Entity: "Rating", ID: id.Hex()}
	}
	return GetRating(ctx, id)
}

package db

import (
	"context"
	"time"

	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUser inserts a new user. The password must already be hashed.
func CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := UsersCollection.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user by ID.
func GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := UsersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Entity: "User", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email, used for sign-in.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Entity: "User", ID: email}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update and returns the updated document.
func UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	fields["updatedAt"] = time.Now().UTC()

	result, err := UsersCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, &NotFoundError{Entity: "User", ID: id.Hex()}
	}
	return GetUser(ctx, id)
}

// SearchUsers matches name or intraName by case-insensitive partial match.
func SearchUsers(ctx context.Context, key string) ([]models.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": key, "$options": "i"}},
		{"intraName": bson.M{"$regex": key, "$options": "i"}},
	}}

	cursor, err := UsersCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

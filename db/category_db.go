package db

import (
	"context"
	"time"

	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateCategory inserts a new category.
func CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	now := time.Now().UTC()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := CategoriesCollection.InsertOne(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategory fetches a category by ID.
func GetCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := CategoriesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Entity: "Category", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies a partial update and returns the updated document.
func UpdateCategory(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Category, error) {
	fields["updatedAt"] = time.Now().UTC()

	result, err := CategoriesCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, &NotFoundError{Entity: "Category", ID: id.Hex()}
	}
	return GetCategory(ctx, id)
}

// ListCategories returns every category.
func ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := CategoriesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

package utils

import (
	"context"
	"log"
	"time"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PopulateSampleData inserts sample users and categories into an empty
// database, for local development.
func PopulateSampleData() {
	ctx := context.Background()

	count, err := db.UsersCollection.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return
	}

	hashed, err := HashPassword("password123")
	if err != nil {
		log.Printf("Failed to hash sample password: %v", err)
		return
	}

	now := time.Now().UTC()
	users := []interface{}{
		models.User{
			ID:        primitive.NewObjectID(),
			Name:      "Alice Johnson",
			IntraName: "ajohnson",
			Email:     "alice@example.com",
			Password:  hashed,
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.User{
			ID:        primitive.NewObjectID(),
			Name:      "Bob Smith",
			IntraName: "bsmith",
			Email:     "bob@example.com",
			Password:  hashed,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	categories := []interface{}{
		models.Category{
			ID:          primitive.NewObjectID(),
			Name:        "Table Tennis",
			Description: "Indoor table tennis matches",
			Color:       "#FF5733",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		models.Category{
			ID:          primitive.NewObjectID(),
			Name:        "Chess",
			Description: "Over-the-board chess",
			Color:       "#4287F5",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	if _, err := db.UsersCollection.InsertMany(ctx, users); err != nil {
		log.Printf("Failed to seed users: %v", err)
	}
	if _, err := db.CategoriesCollection.InsertMany(ctx, categories); err != nil {
		log.Printf("Failed to seed categories: %v", err)
	}
	log.Println("Seeded sample users and categories")
}

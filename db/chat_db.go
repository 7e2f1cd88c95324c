package db

import (
	"context"
	"time"

	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateChat stores one assistant exchange.
func CreateChat(ctx context.Context, chat models.Chat) (*models.Chat, error) {
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now().UTC()

	if _, err := ChatsCollection.InsertOne(ctx, chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetUserChats returns a user's chat log, oldest first.
func GetUserChats(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := ChatsCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/KanayaActa/IceBreaker/config"
	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"

	"github.com/google/generative-ai-go/genai"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"
)

const chatModel = "gemini-1.5-flash"

const chatSystemPrompt = "You are the IceBreaker assistant. Answer questions " +
	"about matches, Elo ratings and leaderboards briefly and helpfully.\n\n"

var geminiClient *genai.Client

// InitChatService sets up the Gemini client. The assistant is optional;
// without an API key the chat endpoints report it as unavailable.
func InitChatService(cfg *config.Config) error {
	if cfg == nil || cfg.Gemini.ApiKey == "" {
		log.Println("Gemini API key not configured, assistant disabled")
		return nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return err
	}
	geminiClient = client
	return nil
}

// Ask sends the user's message to the assistant and stores the exchange.
func Ask(ctx context.Context, userID, content string) (*models.Chat, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, db.ErrInvalidID
	}
	if strings.TrimSpace(content) == "" {
		return nil, &db.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if _, err := db.GetUser(ctx, userOID); err != nil {
		return nil, err
	}

	reply, err := generateReply(ctx, content)
	if err != nil {
		return nil, err
	}

	return db.CreateChat(ctx, models.Chat{
		UserID:  userOID,
		Content: content,
		Reply:   reply,
	})
}

// GetUserChatLog returns a user's stored exchanges, oldest first.
func GetUserChatLog(ctx context.Context, userID string) ([]models.Chat, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, db.ErrInvalidID
	}
	return db.GetUserChats(ctx, userOID)
}

func generateReply(ctx context.Context, content string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("assistant is not configured")
	}

	model := geminiClient.GenerativeModel(chatModel)
	resp, err := model.GenerateContent(ctx, genai.Text(chatSystemPrompt+content))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}
	return strings.TrimSpace(sb.String()), nil
}

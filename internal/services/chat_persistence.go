package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/standapp/standapp-backend/internal/database"
	"github.com/standapp/standapp-backend/internal/models"
)

const chatCollection = "chat_messages"

// EnsureChatIndexes configures indexes for the chat transcript collection.
// Called on startup from main after Mongo has connected.
func EnsureChatIndexes(ctx context.Context) error {
	col := database.DB.Collection(chatCollection)

	// Compound index on (username, timestamp) to support per-user history
	// pagination.
	idx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "username", Value: 1},
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("idx_username_timestamp"),
	}
	_, err := col.Indexes().CreateOne(ctx, idx)
	return err
}

// SaveChatMessageAsync persists one transcript turn to MongoDB without
// blocking the chat stream. Fire-and-forget: a lost transcript row never
// fails the conversation.
func SaveChatMessageAsync(msg models.ChatMessage) {
	go func(m models.ChatMessage) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if m.Timestamp.IsZero() {
			m.Timestamp = time.Now().UTC()
		}

		col := database.DB.Collection(chatCollection)
		_, _ = col.InsertOne(ctx, m)
	}(msg)
}

// LoadChatMessages returns paginated transcript history for a user.
// Pagination is timestamp + limit (newest-first scrolling); the page is
// returned oldest-first for the UI.
func LoadChatMessages(ctx context.Context, username string, before *time.Time, limit int64) ([]models.ChatMessage, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	col := database.DB.Collection(chatCollection)

	filter := bson.M{"username": username}
	if before != nil {
		filter["timestamp"] = bson.M{"$lt": before.UTC()}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	var msgs []models.ChatMessage
	for cur.Next(ctx) {
		var m models.ChatMessage
		if err := cur.Decode(&m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	if err := cur.Err(); err != nil {
		return nil, false, err
	}

	hasMore := int64(len(msgs)) > limit
	if hasMore {
		msgs = msgs[:len(msgs)-1]
	}

	// Reverse to oldest-first for the UI.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, hasMore, nil
}

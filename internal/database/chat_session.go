package repository

import (
	"ChineseBee/bot/workflow"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatSessionsCollection = "chat_sessions"

// SaveChatSession upserts the session marker by {chat_id, user_id}.
func (m *MongoDB) SaveChatSession(ctx context.Context, session *workflow.Session) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatSessionsCollection)

	session.UpdatedAt = time.Now()

	filter := bson.D{{"chat_id", session.ChatID}, {"user_id", session.UserID}}
	update := bson.D{{"$set", session}}
	opts := options.Update().SetUpsert(true)

	if _, err = collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	return nil
}

// LoadChatSession returns nil when the chat has no session.
func (m *MongoDB) LoadChatSession(ctx context.Context, chatID, userID int64) (*workflow.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatSessionsCollection)

	filter := bson.D{{"chat_id", chatID}, {"user_id", userID}}

	var session workflow.Session
	err = collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		return nil, m.findError(err)
	}

	return &session, nil
}

func (m *MongoDB) DeleteChatSession(ctx context.Context, chatID, userID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatSessionsCollection)

	filter := bson.D{{"chat_id", chatID}, {"user_id", userID}}

	if _, err = collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("mongodb delete error: %w", err)
	}
	return nil
}

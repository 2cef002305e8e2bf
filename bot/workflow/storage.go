package workflow

import (
	"context"
	"time"
)

// SessionRepository defines the database operations for chat sessions.
type SessionRepository interface {
	SaveChatSession(ctx context.Context, session *Session) error
	LoadChatSession(ctx context.Context, chatID, userID int64) (*Session, error)
	DeleteChatSession(ctx context.Context, chatID, userID int64) error
}

// MongoSessionStorage adapts the database repository to the SessionStore interface.
type MongoSessionStorage struct {
	repo SessionRepository
}

// NewMongoSessionStorage creates a new MongoDB session storage.
func NewMongoSessionStorage(repo SessionRepository) *MongoSessionStorage {
	return &MongoSessionStorage{repo: repo}
}

func (s *MongoSessionStorage) Load(ctx context.Context, chatID, userID int64) (Marker, error) {
	session, err := s.repo.LoadChatSession(ctx, chatID, userID)
	if err != nil {
		return MarkerNone, err
	}
	if session == nil {
		return MarkerNone, nil
	}
	return session.Marker, nil
}

func (s *MongoSessionStorage) Save(ctx context.Context, chatID, userID int64, marker Marker) error {
	if marker == MarkerNone {
		return s.repo.DeleteChatSession(ctx, chatID, userID)
	}
	return s.repo.SaveChatSession(ctx, &Session{
		ChatID:    chatID,
		UserID:    userID,
		Marker:    marker,
		UpdatedAt: time.Now(),
	})
}

func (s *MongoSessionStorage) Delete(ctx context.Context, chatID, userID int64) error {
	return s.repo.DeleteChatSession(ctx, chatID, userID)
}

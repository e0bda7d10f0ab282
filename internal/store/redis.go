// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/models"
)

const cacheKeyPrefix = "chat_"

// cacheEnvelope is the cache payload for one session.
type cacheEnvelope struct {
	Messages         []models.Message `json:"messageList"`
	ThreadID         string           `json:"conversationId,omitempty"`
	LastBotMessageID string           `json:"lastSystemMessageId,omitempty"`
	Timestamp        int64            `json:"timestamp"`
}

// RedisStore is the cache backend of ConversationStore. Entries expire after
// the retention window so abandoned sessions do not accumulate.
type RedisStore struct {
	client    *goredis.Client
	retention time.Duration
}

func NewRedisStore(client *goredis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		retention: retention,
	}
}

func cacheKey(sessionID string) string {
	return cacheKeyPrefix + sessionID
}

func (s *RedisStore) Save(ctx context.Context, thread *models.ConversationThread) error {
	envelope := cacheEnvelope{
		Messages:         thread.Messages,
		ThreadID:         thread.ThreadID,
		LastBotMessageID: thread.LastBotMessageID,
		Timestamp:        thread.LastUpdated.UnixMilli(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode conversation snapshot: %w", err)
	}

	if err := s.client.Set(ctx, cacheKey(thread.SessionID), payload, s.retention).Err(); err != nil {
		return errors.NewStorageUnavailableError("redis", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*models.ConversationThread, error) {
	payload, err := s.client.Get(ctx, cacheKey(sessionID)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStorageUnavailableError("redis", err)
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		// Corrupt cache entries are treated as missing.
		return nil, nil
	}

	thread := &models.ConversationThread{
		SessionID:        sessionID,
		ThreadID:         envelope.ThreadID,
		LastBotMessageID: envelope.LastBotMessageID,
		Messages:         envelope.Messages,
		LastUpdated:      time.UnixMilli(envelope.Timestamp).UTC(),
	}
	if thread.Messages == nil {
		thread.Messages = []models.Message{}
	}
	return thread, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cacheKey(sessionID)).Err(); err != nil {
		return errors.NewStorageUnavailableError("redis", err)
	}
	return nil
}

// internal/store/dynamo.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/models"
)

// DynamoAPI abstracts the DynamoDB operations used by the durable store for mocking
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore is the durable backend of ConversationStore. One item per
// session; the ttl attribute expires records after the retention window.
type DynamoStore struct {
	api       DynamoAPI
	tableName string
	retention time.Duration
}

func NewDynamoStore(api DynamoAPI, tableName string, retention time.Duration) *DynamoStore {
	return &DynamoStore{
		api:       api,
		tableName: tableName,
		retention: retention,
	}
}

func (s *DynamoStore) Save(ctx context.Context, thread *models.ConversationThread) error {
	history, err := json.Marshal(thread.History())
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}

	item := map[string]types.AttributeValue{
		"sessionId":   &types.AttributeValueMemberS{Value: thread.SessionID},
		"chatHistory": &types.AttributeValueMemberS{Value: string(history)},
		"lastUpdated": &types.AttributeValueMemberN{Value: strconv.FormatInt(thread.LastUpdated.UnixMilli(), 10)},
		"ttl":         &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Add(s.retention).Unix(), 10)},
	}
	if thread.ThreadID != "" {
		item["conversationId"] = &types.AttributeValueMemberS{Value: thread.ThreadID}
	}
	if thread.LastBotMessageID != "" {
		item["lastSystemMessageId"] = &types.AttributeValueMemberS{Value: thread.LastBotMessageID}
	}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return errors.NewStorageUnavailableError("dynamodb", err)
	}
	return nil
}

func (s *DynamoStore) Load(ctx context.Context, sessionID string) (*models.ConversationThread, error) {
	output, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"sessionId": &types.AttributeValueMemberS{Value: sessionID},
		},
	})
	if err != nil {
		return nil, errors.NewStorageUnavailableError("dynamodb", err)
	}
	if output.Item == nil {
		return nil, nil
	}

	var entries []models.HistoryEntry
	if raw := stringAttr(output.Item, "chatHistory"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, fmt.Errorf("failed to decode chat history for session %s: %w", sessionID, err)
		}
	}

	lastUpdated := time.Now().UTC()
	if raw := numberAttr(output.Item, "lastUpdated"); raw != 0 {
		lastUpdated = time.UnixMilli(raw).UTC()
	}

	return models.ThreadFromHistory(
		sessionID,
		stringAttr(output.Item, "conversationId"),
		stringAttr(output.Item, "lastSystemMessageId"),
		entries,
		lastUpdated,
	), nil
}

func (s *DynamoStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"sessionId": &types.AttributeValueMemberS{Value: sessionID},
		},
	})
	if err != nil {
		return errors.NewStorageUnavailableError("dynamodb", err)
	}
	return nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if attr, ok := item[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}

func numberAttr(item map[string]types.AttributeValue, name string) int64 {
	if attr, ok := item[name].(*types.AttributeValueMemberN); ok {
		value, err := strconv.ParseInt(attr.Value, 10, 64)
		if err == nil {
			return value
		}
	}
	return 0
}

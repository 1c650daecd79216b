package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stocbot/order-assistant/internal/domain"
)

const conversationKeyPrefix = "conv:"

// ConversationStore persists the per-user {state, attempts, draft} tuple
// between otherwise-stateless chat turns. Entries expire after the configured
// TTL so abandoned drafts do not live forever.
type ConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewConversationStore(client *redis.Client, ttl time.Duration) *ConversationStore {
	return &ConversationStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *ConversationStore) Set(ctx context.Context, userID string, conv *domain.Conversation) error {
	payload, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := s.client.Set(ctx, conversationKeyPrefix+userID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store conversation: %w", err)
	}

	return nil
}

// Get returns the stored conversation, or a zero-state conversation when the
// user has no pending state.
func (s *ConversationStore) Get(ctx context.Context, userID string) (*domain.Conversation, error) {
	payload, err := s.client.Get(ctx, conversationKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Conversation{State: domain.StateNone}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(payload, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	return &conv, nil
}

func (s *ConversationStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, conversationKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}

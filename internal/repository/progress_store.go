package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"quizbot/internal/domain"
)

const progressKeyPrefix = "quizbot:progress"

// progressKey builds the Redis key for a dedup scope.
func progressKey(scope domain.ScopeKey) string {
	return strings.Join([]string{
		progressKeyPrefix,
		fmt.Sprintf("%d", scope.UserID),
		scope.Subject,
		scope.Topic,
	}, ":")
}

// ProgressStore implements domain.ProgressStore on a Redis SET per scope.
// SADD gives the superset-write semantics the progress record requires:
// the served set only ever grows, and it survives process restarts.
type ProgressStore struct {
	client *redis.Client
}

// NewProgressStore creates a new instance of ProgressStore.
func NewProgressStore(client *redis.Client) domain.ProgressStore {
	return &ProgressStore{client: client}
}

// Get implements domain.ProgressStore. An absent scope yields an empty set.
func (s *ProgressStore) Get(ctx context.Context, scope domain.ScopeKey) (map[string]struct{}, error) {
	members, err := s.client.SMembers(ctx, progressKey(scope)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read progress for scope %s: %w", progressKey(scope), err)
	}
	served := make(map[string]struct{}, len(members))
	for _, id := range members {
		served[id] = struct{}{}
	}
	return served, nil
}

// Upsert implements domain.ProgressStore.
func (s *ProgressStore) Upsert(ctx context.Context, scope domain.ScopeKey, servedIDs map[string]struct{}) error {
	if len(servedIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(servedIDs))
	for id := range servedIDs {
		members = append(members, id)
	}
	if err := s.client.SAdd(ctx, progressKey(scope), members...).Err(); err != nil {
		return fmt.Errorf("failed to persist progress for scope %s: %w", progressKey(scope), err)
	}
	return nil
}

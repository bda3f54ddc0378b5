package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobscout/pkg/utils"
)

const taskKeyPrefix = "jobscout:task:"

// RedisTaskStore implements TaskStore on Redis so task results survive
// process restarts. Entries expire via TTL.
type RedisTaskStore struct {
	client *utils.RedisClient
	ttl    time.Duration
}

// NewRedisTaskStore creates a Redis-backed task store with the given TTL
func NewRedisTaskStore(client *utils.RedisClient, ttl time.Duration) *RedisTaskStore {
	return &RedisTaskStore{
		client: client,
		ttl:    ttl,
	}
}

func taskKey(processID string) string {
	return taskKeyPrefix + processID
}

func (s *RedisTaskStore) Store(ctx context.Context, result *TaskResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal task result: %w", err)
	}

	if err := s.client.Client().Set(ctx, taskKey(result.ProcessID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}
	return nil
}

func (s *RedisTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	data, err := s.client.Client().Get(ctx, taskKey(processID)).Result()
	if err == redis.Nil {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task result: %w", err)
	}

	var result TaskResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task result: %w", err)
	}
	return &result, nil
}

func (s *RedisTaskStore) Update(ctx context.Context, result *TaskResult) error {
	exists, err := s.client.Client().Exists(ctx, taskKey(result.ProcessID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if exists == 0 {
		return ErrTaskNotFound
	}
	return s.Store(ctx, result)
}

func (s *RedisTaskStore) Delete(ctx context.Context, processID string) error {
	deleted, err := s.client.Client().Del(ctx, taskKey(processID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete task result: %w", err)
	}
	if deleted == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Cleanup is a no-op; Redis expires entries through the per-key TTL
func (s *RedisTaskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	return nil
}

func (s *RedisTaskStore) List(ctx context.Context) ([]*TaskResult, error) {
	var results []*TaskResult

	iter := s.client.Client().Scan(ctx, 0, taskKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Client().Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read task result: %w", err)
		}

		var result TaskResult
		if err := json.Unmarshal([]byte(data), &result); err != nil {
			continue
		}
		results = append(results, &result)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan task results: %w", err)
	}

	return results, nil
}

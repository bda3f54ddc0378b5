package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

const (
	postingKeyPrefix = "jobscout:posting:"
	postingIndexKey  = "jobscout:postings:index"
)

// RedisPostingStore persists postings in Redis. Each posting lives under its
// own key; a sorted set scored by save time backs the age sweep.
type RedisPostingStore struct {
	client *utils.RedisClient
}

// NewRedisPostingStore creates a Redis-backed posting store
func NewRedisPostingStore(client *utils.RedisClient) *RedisPostingStore {
	return &RedisPostingStore{client: client}
}

func postingKey(id string) string {
	return postingKeyPrefix + id
}

func (s *RedisPostingStore) Save(ctx context.Context, posting models.EnrichedPosting) (string, error) {
	transport := utils.ToJobPosting(posting, time.Now)

	data, err := json.Marshal(transport)
	if err != nil {
		return "", fmt.Errorf("failed to marshal posting: %w", err)
	}

	pipe := s.client.Client().TxPipeline()
	pipe.Set(ctx, postingKey(transport.ID), data, 0)
	pipe.ZAdd(ctx, postingIndexKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: transport.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store posting: %w", err)
	}

	return transport.ID, nil
}

func (s *RedisPostingStore) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	data, err := s.client.Client().Get(ctx, postingKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrPostingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	var posting models.JobPosting
	if err := json.Unmarshal([]byte(data), &posting); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posting: %w", err)
	}
	return &posting, nil
}

func (s *RedisPostingStore) List(ctx context.Context, limit int) ([]models.JobPosting, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := s.client.Client().ZRevRange(ctx, postingIndexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	if len(ids) == 0 {
		return []models.JobPosting{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = postingKey(id)
	}
	values, err := s.client.Client().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load postings: %w", err)
	}

	postings := make([]models.JobPosting, 0, len(values))
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			// Index entry whose key expired between ZRevRange and MGet
			continue
		}
		var posting models.JobPosting
		if err := json.Unmarshal([]byte(data), &posting); err != nil {
			return nil, fmt.Errorf("failed to unmarshal posting: %w", err)
		}
		postings = append(postings, posting)
	}
	return postings, nil
}

func (s *RedisPostingStore) Count(ctx context.Context) (int64, error) {
	count, err := s.client.Client().ZCard(ctx, postingIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count postings: %w", err)
	}
	return count, nil
}

func (s *RedisPostingStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	cutoffStr := strconv.FormatInt(cutoff, 10)

	ids, err := s.client.Client().ZRangeByScore(ctx, postingIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: cutoffStr,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to find expired postings: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	pipe := s.client.Client().TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, postingKey(id))
	}
	pipe.ZRemRangeByScore(ctx, postingIndexKey, "-inf", cutoffStr)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to sweep postings: %w", err)
	}

	return len(ids), nil
}

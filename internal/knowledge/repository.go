package knowledge

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	chunksKey  = "knowledge:chunks"
	versionKey = "knowledge:version"
)

// Repository persists raw document chunks so embeddings can be rebuilt
// after a restart.
type Repository interface {
	AppendChunks(ctx context.Context, chunks []string) error
	LoadChunks(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// RedisRepository stores chunks in a Redis list.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed knowledge repo.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	if client == nil {
		panic("knowledge: redis client cannot be nil")
	}
	return &RedisRepository{client: client}
}

// AppendChunks pushes chunks and bumps the knowledge version in one transaction.
func (r *RedisRepository) AppendChunks(ctx context.Context, chunks []string) error {
	if len(chunks) == 0 {
		return nil
	}
	args := make([]interface{}, len(chunks))
	for i, c := range chunks {
		args[i] = c
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, chunksKey, args...)
	pipe.Incr(ctx, versionKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("knowledge: failed to push chunks: %w", err)
	}
	return nil
}

// LoadChunks returns every stored chunk in insertion order.
func (r *RedisRepository) LoadChunks(ctx context.Context) ([]string, error) {
	chunks, err := r.client.LRange(ctx, chunksKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("knowledge: failed to load chunks: %w", err)
	}
	return chunks, nil
}

// Version counts how many ingests have been stored.
func (r *RedisRepository) Version(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("knowledge: get version: %w", err)
	}
	return v, nil
}

// Clear removes all stored chunks.
func (r *RedisRepository) Clear(ctx context.Context) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, chunksKey)
	pipe.Incr(ctx, versionKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("knowledge: failed to clear chunks: %w", err)
	}
	return nil
}

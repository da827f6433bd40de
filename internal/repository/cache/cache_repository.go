package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/risk-map-service/internal/domain/repository"
	"go.uber.org/zap"
)

const snapshotKeyPrefix = "riskmap:snapshot"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(client *redis.Client, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cache exists error: %w", err)
	}
	return n > 0, nil
}

// GetMapSnapshot получает отрендеренную карту. Ключ включает loadID, поэтому
// после перезапуска сервиса старые снапшоты не используются.
func (r *cacheRepository) GetMapSnapshot(ctx context.Context, loadID, selection string) ([]byte, error) {
	return r.Get(ctx, SnapshotKey(loadID, selection))
}

// SetMapSnapshot сохраняет отрендеренную карту
func (r *cacheRepository) SetMapSnapshot(ctx context.Context, loadID, selection string, data []byte, ttl time.Duration) error {
	return r.Set(ctx, SnapshotKey(loadID, selection), data, ttl)
}

// SnapshotKey формирует ключ снапшота: riskmap:snapshot:<loadID>:<selection>
func SnapshotKey(loadID, selection string) string {
	return fmt.Sprintf("%s:%s:%s", snapshotKeyPrefix, loadID, selection)
}

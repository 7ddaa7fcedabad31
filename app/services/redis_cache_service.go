package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/metrics"
)

// RedisCacheService cache service sử dụng Redis, chia sẻ giữa các replica.
type RedisCacheService struct {
	client  *redis.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
	prefix  string
	ttl     time.Duration

	// Stats, đếm từ nhiều goroutine của gin handlers
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService tạo mới Redis cache service
func NewRedisCacheService(redisURL string, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCacheService{
		client:  client,
		metrics: m,
		logger:  logger,
		prefix:  "eldir:",
		ttl:     ttl,
	}, nil
}

// Get lấy candidate view từ cache
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*assemble.CandidateView, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		rcs.misses.Add(1)
		rcs.metrics.CacheMiss("redis")
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var view assemble.CandidateView
	if err := json.Unmarshal([]byte(val), &view); err != nil {
		rcs.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	rcs.metrics.CacheHit("redis")
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &view, true, nil
}

// Set lưu candidate view vào cache
func (rcs *RedisCacheService) Set(ctx context.Context, key string, view *assemble.CandidateView) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã lưu vào Redis cache", zap.String("key", key))
	return nil
}

// Delete xóa key khỏi cache
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Clear xóa toàn bộ cache
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	pattern := rcs.prefix + "*"
	keys, err := rcs.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("lỗi lấy danh sách keys: %w", err)
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("lỗi xóa keys: %w", err)
		}
	}

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// GetStats lấy thống kê cache
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := rcs.hits.Load()
	misses := rcs.misses.Load()
	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	totalItems := int64(0)
	if err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := rcs.client.Exists(ctx, rcs.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// GetTTL lấy TTL của key
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, rcs.prefix+key).Result()
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

package services

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/metrics"
)

// LRUCacheService cache service trong process, dùng làm L1 hoặc chạy độc lập
// khi không cấu hình Redis.
type LRUCacheService struct {
	cache   *lru.Cache[string, *assemble.CandidateView]
	metrics *metrics.Metrics
	logger  *zap.Logger

	// Stats, đếm từ nhiều goroutine của gin handlers
	hits   atomic.Int64
	misses atomic.Int64
}

// NewLRUCacheService tạo mới LRU cache service.
func NewLRUCacheService(size int, m *metrics.Metrics, logger *zap.Logger) (*LRUCacheService, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, *assemble.CandidateView](size)
	if err != nil {
		return nil, err
	}
	return &LRUCacheService{
		cache:   cache,
		metrics: m,
		logger:  logger,
	}, nil
}

// Get lấy candidate view từ cache
func (lcs *LRUCacheService) Get(ctx context.Context, key string) (*assemble.CandidateView, bool, error) {
	view, ok := lcs.cache.Get(key)
	if !ok {
		lcs.misses.Add(1)
		lcs.metrics.CacheMiss("lru")
		return nil, false, nil
	}
	lcs.hits.Add(1)
	lcs.metrics.CacheHit("lru")
	return view, true, nil
}

// Set lưu candidate view vào cache
func (lcs *LRUCacheService) Set(ctx context.Context, key string, view *assemble.CandidateView) error {
	lcs.cache.Add(key, view)
	return nil
}

// Delete xóa candidate view khỏi cache
func (lcs *LRUCacheService) Delete(ctx context.Context, key string) error {
	lcs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (lcs *LRUCacheService) Clear(ctx context.Context) error {
	lcs.cache.Purge()
	lcs.logger.Info("Đã clear LRU cache")
	return nil
}

// GetStats lấy thống kê cache
func (lcs *LRUCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := lcs.hits.Load()
	misses := lcs.misses.Load()
	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(lcs.cache.Len()),
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (lcs *LRUCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return lcs.cache.Contains(key), nil
}

// GetTTL lấy TTL của key. LRU không có TTL; entries sống đến khi bị evict.
func (lcs *LRUCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

// Close đóng cache (no-op cho in-process cache)
func (lcs *LRUCacheService) Close() error {
	return nil
}

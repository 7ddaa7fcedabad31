package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/election-directory/internal/assemble"
)

// HybridCacheService cache service kết hợp LRU (L1, trong process) + Redis
// (L2, chia sẻ giữa các replica).
type HybridCacheService struct {
	lruCache   *LRUCacheService
	redisCache *RedisCacheService
	logger     *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service
func NewHybridCacheService(lruCache *LRUCacheService, redisCache *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		lruCache:   lruCache,
		redisCache: redisCache,
		logger:     logger,
	}
}

// Get lấy candidate view từ cache (LRU trước, Redis sau)
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*assemble.CandidateView, bool, error) {
	// 1. Thử LRU cache trước (L1)
	view, found, err := hcs.lruCache.Get(ctx, key)
	if err == nil && found {
		hcs.logger.Debug("L1 cache hit (LRU)", zap.String("key", key))
		return view, true, nil
	}

	// 2. Nếu không có trong LRU, thử Redis (L2)
	view, found, err = hcs.redisCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		hcs.logger.Debug("Cache miss (both LRU & Redis)", zap.String("key", key))
		return nil, false, nil
	}

	// 3. Nếu có trong Redis, đồng bộ lên LRU
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.lruCache.Set(bgCtx, key, view); err != nil {
			hcs.logger.Warn("Lỗi sync Redis->LRU", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("L2 cache hit (Redis)", zap.String("key", key))
	return view, true, nil
}

// Set lưu candidate view vào cache (cả LRU và Redis song song)
func (hcs *HybridCacheService) Set(ctx context.Context, key string, view *assemble.CandidateView) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.lruCache.Set(ctx, key, view)
	}()
	go func() {
		err := hcs.redisCache.Set(ctx, key, view)
		if err != nil {
			hcs.logger.Warn("Lỗi lưu vào Redis", zap.Error(err))
		}
		errCh <- err
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}

	hcs.logger.Debug("Saved to hybrid cache", zap.String("key", key))
	return nil
}

// Delete xóa key khỏi cache (cả LRU và Redis)
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.lruCache.Delete(ctx, key)
	}()
	go func() {
		errCh <- hcs.redisCache.Delete(ctx, key)
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("delete errors: %v", errs)
	}
	return nil
}

// Clear xóa toàn bộ cache (cả LRU và Redis)
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.lruCache.Clear(ctx)
	}()
	go func() {
		errCh <- hcs.redisCache.Clear(ctx)
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear errors: %v", errs)
	}

	hcs.logger.Info("Cleared hybrid cache (LRU + Redis)")
	return nil
}

// GetStats lấy thống kê cache (kết hợp từ cả 2)
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	lruStats, lruErr := hcs.lruCache.GetStats(ctx)
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)

	if lruErr != nil && redisErr != nil {
		return nil, fmt.Errorf("cả LRU và Redis đều lỗi: %v, %v", lruErr, redisErr)
	}

	combinedStats := &CacheStats{}
	switch {
	case lruErr == nil && redisErr == nil:
		totalHits := lruStats.TotalHits + redisStats.TotalHits
		totalMiss := lruStats.TotalMiss + redisStats.TotalMiss
		total := totalHits + totalMiss
		if total > 0 {
			combinedStats.HitRate = float64(totalHits) / float64(total)
		}
		combinedStats.TotalHits = totalHits
		combinedStats.TotalMiss = totalMiss
		combinedStats.TotalItems = lruStats.TotalItems + redisStats.TotalItems
	case lruErr == nil:
		*combinedStats = *lruStats
	default:
		*combinedStats = *redisStats
	}

	return combinedStats, nil
}

// Exists kiểm tra key có tồn tại không (LRU trước, Redis sau)
func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.lruCache.Exists(ctx, key)
	if err == nil && exists {
		return true, nil
	}
	return hcs.redisCache.Exists(ctx, key)
}

// GetTTL lấy TTL của key (từ Redis)
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.redisCache.GetTTL(ctx, key)
}

// Close đóng kết nối cả 2 cache
func (hcs *HybridCacheService) Close() error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.lruCache.Close()
	}()
	go func() {
		errCh <- hcs.redisCache.Close()
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

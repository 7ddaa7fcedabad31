package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/election-directory/app/config"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/directory"
	"github.com/election-directory/internal/metrics"
	"github.com/election-directory/internal/search"
)

// SeedResult kết quả seed document search index.
type SeedResult struct {
	DocumentsIndexed int   `json:"documents_indexed"`
	IndexesBuilt     int   `json:"indexes_built"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// SystemStats thống kê hệ thống cho admin.
type SystemStats struct {
	Uptime      string                 `json:"uptime"`
	MemoryUsage map[string]interface{} `json:"memory_usage"`
	CacheStats  *CacheStats            `json:"cache_stats"`
	Cycles      []string               `json:"cycles"`
}

// AdminService service quản lý invalidation, seed và thống kê.
type AdminService struct {
	store     *dataset.Store
	cache     ICacheService
	details   *DetailService
	searcher  *search.DocumentSearcher // nil khi không cấu hình Meilisearch
	metrics   *metrics.Metrics
	logger    *zap.Logger
	startTime time.Time

	debounce   time.Duration
	mu         sync.Mutex
	debouncers map[string]*directory.Debouncer // theo cycle; "" = invalidate all
}

// NewAdminService tạo mới AdminService
func NewAdminService(store *dataset.Store, cache ICacheService, details *DetailService, searcher *search.DocumentSearcher, m *metrics.Metrics, logger *zap.Logger) *AdminService {
	debounce := time.Duration(config.C.Directory.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &AdminService{
		store:      store,
		cache:      cache,
		details:    details,
		searcher:   searcher,
		metrics:    m,
		logger:     logger,
		debounce:   debounce,
		debouncers: make(map[string]*directory.Debouncer),
		startTime:  time.Now(),
	}
}

// InvalidateCycle đánh dấu bundle của một kỳ cần load lại và xóa view cache.
// Gọi liên tiếp trong khoảng ngắn (pipeline ghi nhiều file) được gom thành
// một lần invalidate. Mỗi cycle có debouncer riêng nên invalidate kỳ này
// không nuốt invalidate kỳ khác đang chờ.
func (as *AdminService) InvalidateCycle(cycle string) {
	as.debouncerFor(cycle).Trigger(func() {
		if cycle == "" {
			as.store.InvalidateAll()
		} else {
			as.store.Invalidate(cycle)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := as.details.InvalidateCycle(ctx, cycle); err != nil {
			as.logger.Warn("Lỗi clear view cache sau invalidate", zap.Error(err))
		}
		as.metrics.BundleReload()
		as.logger.Info("Cycle invalidated", zap.String("cycle", cycle))
	})
}

func (as *AdminService) debouncerFor(cycle string) *directory.Debouncer {
	as.mu.Lock()
	defer as.mu.Unlock()
	d, ok := as.debouncers[cycle]
	if !ok {
		d = directory.NewDebouncer(as.debounce)
		as.debouncers[cycle] = d
	}
	return d
}

// ClearCache xóa toàn bộ view cache ngay lập tức.
func (as *AdminService) ClearCache(ctx context.Context) error {
	return as.cache.Clear(ctx)
}

// SeedDocumentSearch nạp document directory của một kỳ vào Meilisearch.
func (as *AdminService) SeedDocumentSearch(ctx context.Context, cycle string) (*SeedResult, error) {
	if as.searcher == nil {
		return nil, errors.New("Meilisearch chưa được cấu hình")
	}

	startTime := time.Now()

	b, err := as.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, fmt.Errorf("lỗi load bundle: %w", err)
	}
	if b.Documents == nil || len(b.Documents.Records) == 0 {
		return nil, errors.New("kỳ bầu cử không có document directory để seed")
	}

	report := assemble.Check(b)
	if !report.OK() {
		return nil, fmt.Errorf("bundle không hợp lệ: %v", report.Errors)
	}
	for _, w := range report.Warnings {
		as.logger.Warn("Integrity warning", zap.String("cycle", cycle), zap.String("warning", w))
	}

	indexesBuilt := 0
	if err := as.searcher.BuildIndexes(); err != nil {
		as.logger.Warn("Lỗi build Meilisearch indexes", zap.Error(err))
	} else {
		indexesBuilt++
	}
	if err := as.searcher.SeedDocuments(cycle, b.Documents.Records); err != nil {
		return nil, fmt.Errorf("lỗi seed documents: %w", err)
	}
	indexesBuilt++

	processingTime := time.Since(startTime)
	as.logger.Info("Document seed completed",
		zap.String("cycle", cycle),
		zap.Int("documents", len(b.Documents.Records)),
		zap.Duration("processing_time", processingTime))

	return &SeedResult{
		DocumentsIndexed: len(b.Documents.Records),
		IndexesBuilt:     indexesBuilt,
		ProcessingTimeMs: processingTime.Milliseconds(),
	}, nil
}

// GetSystemStats lấy thống kê hệ thống.
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cacheStats, err := as.cache.GetStats(ctx)
	if err != nil {
		as.logger.Warn("Lỗi lấy cache stats", zap.Error(err))
	}

	cycles := make([]string, 0, len(config.C.Cycles))
	for _, c := range config.C.Cycles {
		cycles = append(cycles, c.ID)
	}

	return &SystemStats{
		Uptime: time.Since(as.startTime).Round(time.Second).String(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
		CacheStats: cacheStats,
		Cycles:     cycles,
	}, nil
}

// Close dừng các debouncer đang chờ.
func (as *AdminService) Close() {
	as.mu.Lock()
	defer as.mu.Unlock()
	for _, d := range as.debouncers {
		d.Stop()
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

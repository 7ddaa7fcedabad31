package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
)

// DetailService service xử lý trang chi tiết ứng cử viên. View đã assemble
// được cache theo key cycle + "/" + entry id.
type DetailService struct {
	store     *dataset.Store
	assembler *assemble.Assembler
	cache     ICacheService
	logger    *zap.Logger
}

// NewDetailService tạo mới DetailService
func NewDetailService(store *dataset.Store, assembler *assemble.Assembler, cache ICacheService, logger *zap.Logger) *DetailService {
	return &DetailService{
		store:     store,
		assembler: assembler,
		cache:     cache,
		logger:    logger,
	}
}

// CandidateView trả về trang chi tiết đã join của một ứng cử viên.
func (ds *DetailService) CandidateView(ctx context.Context, cycle, entryID string) (*assemble.CandidateView, error) {
	key := cycle + "/" + entryID

	if view, found, err := ds.cache.Get(ctx, key); err == nil && found {
		return view, nil
	} else if err != nil {
		ds.logger.Warn("Lỗi đọc cache, assemble lại", zap.Error(err), zap.String("key", key))
	}

	detail, err := ds.store.CandidateDetail(ctx, cycle, entryID)
	if err != nil {
		return nil, err
	}
	b, err := ds.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}

	view := ds.assembler.CandidateView(b, detail)
	if err := ds.cache.Set(ctx, key, view); err != nil {
		ds.logger.Warn("Lỗi ghi cache", zap.Error(err), zap.String("key", key))
	}
	return view, nil
}

// InvalidateCycle xóa các view đã cache của một kỳ. Cache key không liệt kê
// được theo cycle trong LRU nên clear toàn bộ; detail view rẻ để assemble lại.
func (ds *DetailService) InvalidateCycle(ctx context.Context, cycle string) error {
	return ds.cache.Clear(ctx)
}

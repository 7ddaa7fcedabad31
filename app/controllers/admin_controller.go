package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/election-directory/app/config"
	"github.com/election-directory/app/requests"
	"github.com/election-directory/app/responses"
	"github.com/election-directory/app/services"
)

// AdminController controller xử lý các request quản trị.
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// InvalidateCache invalidate bundle và view cache. Pipeline gọi endpoint này
// sau khi publish dataset mới; body rỗng nghĩa là toàn bộ các kỳ.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	var req requests.InvalidateCacheRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{
				Error:   "INVALID_REQUEST",
				Message: "Request không hợp lệ: " + err.Error(),
			})
			return
		}
	}
	if req.Cycle != "" && !config.KnownCycle(req.Cycle) {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "UNKNOWN_CYCLE",
			Message: "Kỳ bầu cử không tồn tại: " + req.Cycle,
		})
		return
	}

	ac.adminService.InvalidateCycle(req.Cycle)

	c.JSON(http.StatusAccepted, responses.InvalidateCacheResponse{
		Message: "Invalidation đã được lên lịch",
		Cycle:   req.Cycle,
	})
}

// SeedSearch seed document directory của một kỳ vào Meilisearch.
func (ac *AdminController) SeedSearch(c *gin.Context) {
	var req requests.SeedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}
	if !config.KnownCycle(req.Cycle) {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "UNKNOWN_CYCLE",
			Message: "Kỳ bầu cử không tồn tại: " + req.Cycle,
		})
		return
	}

	result, err := ac.adminService.SeedDocumentSearch(c.Request.Context(), req.Cycle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "SEED_ERROR",
			Message: "Lỗi seed search index: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SeedSearchResponse{
		Message: "Seed thành công",
		Result:  result,
	})
}

// GetStats lấy thống kê hệ thống.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "STATS_ERROR",
			Message: "Lỗi lấy thống kê: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.StatsResponse{Stats: stats})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/election-directory/app/responses"
	"github.com/election-directory/app/services"
	"github.com/election-directory/internal/dataset"
)

// DetailController controller xử lý trang chi tiết ứng cử viên.
type DetailController struct {
	detailService *services.DetailService
	logger        *zap.Logger
}

// NewDetailController tạo mới DetailController
func NewDetailController(detailService *services.DetailService, logger *zap.Logger) *DetailController {
	return &DetailController{
		detailService: detailService,
		logger:        logger,
	}
}

// GetCandidate trả về trang chi tiết đã join của một ứng cử viên. File detail
// không tồn tại nghĩa là entry id không tồn tại, map sang 404 thay vì 503.
func (dc *DetailController) GetCandidate(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	entryID := c.Param("entryID")
	view, err := dc.detailService.CandidateView(c.Request.Context(), cycle, entryID)
	if err != nil {
		if errors.Is(err, dataset.ErrUnavailable) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   "CANDIDATE_NOT_FOUND",
				Message: "Không tìm thấy ứng cử viên: " + entryID,
			})
			return
		}
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.CandidateResponse{
		CycleID: cycle,
		View:    view,
	})
}

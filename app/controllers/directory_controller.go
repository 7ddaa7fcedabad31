package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/election-directory/app/config"
	"github.com/election-directory/app/requests"
	"github.com/election-directory/app/responses"
	"github.com/election-directory/app/services"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/directory"
)

// DirectoryController controller xử lý listing, facet, đơn vị bầu cử, tổng
// quan, document directory và autocomplete.
type DirectoryController struct {
	directoryService *services.DirectoryService
	suggestService   *services.SuggestService
	overviewService  *services.OverviewService
	logger           *zap.Logger
}

// NewDirectoryController tạo mới DirectoryController
func NewDirectoryController(directoryService *services.DirectoryService, suggestService *services.SuggestService, overviewService *services.OverviewService, logger *zap.Logger) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
		suggestService:   suggestService,
		overviewService:  overviewService,
		logger:           logger,
	}
}

// ListCandidates trả về listing đã filter và sort.
func (dc *DirectoryController) ListCandidates(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	var req requests.ListCandidatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	sel := directory.DefaultSelection()
	sel.Query = req.Query
	sel = sel.WithLocality(req.Locality)
	if req.Constituency != "" {
		sel.Constituency = req.Constituency
	}
	if req.Sort != "" {
		if !directory.ValidSortKey(directory.SortKey(req.Sort)) {
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{
				Error:   "INVALID_SORT",
				Message: "Sort key không hợp lệ: " + req.Sort,
			})
			return
		}
		sel.Sort = directory.SortKey(req.Sort)
	}

	startTime := time.Now()
	records, err := dc.directoryService.List(c.Request.Context(), cycle, sel)
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	items := make([]responses.CandidateListItem, 0, len(records))
	for _, r := range records {
		item := responses.CandidateListItem{CandidateIndexRecord: r}
		if h := directory.FindHighlight(r.NameVi, req.Query); h.Found {
			item.Highlight = &h
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, responses.ListCandidatesResponse{
		CycleID:          cycle,
		Query:            sel.Query,
		Locality:         sel.Locality,
		Constituency:     sel.Constituency,
		Sort:             string(sel.Sort),
		Total:            len(items),
		Records:          items,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// GetFacets trả về facet options cho dropdown.
func (dc *DirectoryController) GetFacets(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	var req requests.FacetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	facets, err := dc.directoryService.Facets(c.Request.Context(), cycle, req.Locality)
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.FacetsResponse{
		CycleID: cycle,
		Facets:  *facets,
	})
}

// ListConstituencies trả về danh sách đơn vị bầu cử.
func (dc *DirectoryController) ListConstituencies(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	records, err := dc.directoryService.Constituencies(c.Request.Context(), cycle)
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.ConstituenciesResponse{
		CycleID: cycle,
		Total:   len(records),
		Records: records,
	})
}

// GetConstituency trả về trang chi tiết một đơn vị bầu cử.
func (dc *DirectoryController) GetConstituency(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	view, err := dc.directoryService.ConstituencyView(c.Request.Context(), cycle, c.Param("id"))
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.ConstituencyResponse{
		CycleID: cycle,
		View:    view,
	})
}

// GetOverview trả về trang tổng quan của kỳ bầu cử.
func (dc *DirectoryController) GetOverview(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	overview, err := dc.overviewService.Overview(c.Request.Context(), cycle)
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.OverviewResponse{
		CycleID:  cycle,
		Overview: overview,
	})
}

// ListDocuments tìm trong document directory.
func (dc *DirectoryController) ListDocuments(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	var req requests.DocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	hits, err := dc.directoryService.Documents(c.Request.Context(), cycle, req.Query, req.Limit)
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.DocumentsResponse{
		CycleID: cycle,
		Query:   req.Query,
		Total:   len(hits),
		Hits:    hits,
	})
}

// Suggest trả về gợi ý tên ứng cử viên cho ô tìm kiếm.
func (dc *DirectoryController) Suggest(c *gin.Context) {
	cycle := cycleParam(c)
	if cycle == "" {
		return
	}

	var req requests.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Thiếu query: " + err.Error(),
		})
		return
	}

	suggestions, err := dc.suggestService.Suggest(c.Request.Context(), cycle, req.Query, req.Limit)
	if err != nil {
		writeDataError(c, dc.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.SuggestResponse{
		CycleID:     cycle,
		Query:       req.Query,
		Suggestions: suggestions,
	})
}

// HealthCheck health check đơn giản.
func (dc *DirectoryController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:  "ok",
		Service: "election-directory",
		Version: "1.0.0",
	})
}

// cycleParam đọc và kiểm tra :cycle theo manifest. Trả về "" sau khi đã ghi
// response lỗi nếu cycle không được khai báo.
func cycleParam(c *gin.Context) string {
	cycle := c.Param("cycle")
	if !config.KnownCycle(cycle) {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "UNKNOWN_CYCLE",
			Message: "Kỳ bầu cử không tồn tại: " + cycle,
		})
		return ""
	}
	return cycle
}

// writeDataError map lỗi dataset/assemble sang HTTP status.
func writeDataError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, dataset.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "DATA_UNAVAILABLE",
			Message: "Dữ liệu chưa sẵn sàng: " + err.Error(),
		})
	case errors.Is(err, assemble.ErrNotFound):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: err.Error(),
		})
	default:
		logger.Error("Lỗi xử lý request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "INTERNAL_ERROR",
			Message: err.Error(),
		})
	}
}

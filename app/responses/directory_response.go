package responses

import (
	"github.com/election-directory/app/models"
	"github.com/election-directory/app/services"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/directory"
	"github.com/election-directory/internal/search"
)

// ErrorResponse response lỗi chuẩn
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CandidateListItem một dòng của listing, kèm highlight span nếu raw query
// xuất hiện nguyên văn trong tên hiển thị.
type CandidateListItem struct {
	models.CandidateIndexRecord
	Highlight *directory.Highlight `json:"highlight,omitempty"`
}

// ListCandidatesResponse response của listing view.
type ListCandidatesResponse struct {
	CycleID          string              `json:"cycle_id"`
	Query            string              `json:"query"`
	Locality         string              `json:"locality"`
	Constituency     string              `json:"constituency"`
	Sort             string              `json:"sort"`
	Total            int                 `json:"total"`
	Records          []CandidateListItem `json:"records"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
}

// FacetsResponse response của facet options.
type FacetsResponse struct {
	CycleID string            `json:"cycle_id"`
	Facets  services.FacetSet `json:"facets"`
}

// ConstituenciesResponse response danh sách đơn vị bầu cử.
type ConstituenciesResponse struct {
	CycleID string                      `json:"cycle_id"`
	Total   int                         `json:"total"`
	Records []models.ConstituencyRecord `json:"records"`
}

// ConstituencyResponse response trang chi tiết đơn vị bầu cử.
type ConstituencyResponse struct {
	CycleID string                     `json:"cycle_id"`
	View    *assemble.ConstituencyView `json:"view"`
}

// CandidateResponse response trang chi tiết ứng cử viên.
type CandidateResponse struct {
	CycleID string                  `json:"cycle_id"`
	View    *assemble.CandidateView `json:"view"`
}

// OverviewResponse response trang tổng quan.
type OverviewResponse struct {
	CycleID  string             `json:"cycle_id"`
	Overview *services.Overview `json:"overview"`
}

// DocumentsResponse response của document directory.
type DocumentsResponse struct {
	CycleID string               `json:"cycle_id"`
	Query   string               `json:"query"`
	Total   int                  `json:"total"`
	Hits    []search.DocumentHit `json:"hits"`
}

// SuggestResponse response của autocomplete.
type SuggestResponse struct {
	CycleID     string                `json:"cycle_id"`
	Query       string                `json:"query"`
	Suggestions []services.Suggestion `json:"suggestions"`
}

// HealthResponse response của health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

package responses

import "github.com/election-directory/app/services"

// InvalidateCacheResponse response sau khi invalidate.
type InvalidateCacheResponse struct {
	Message string `json:"message"`
	Cycle   string `json:"cycle,omitempty"`
}

// SeedSearchResponse response sau khi seed document search index.
type SeedSearchResponse struct {
	Message string               `json:"message"`
	Result  *services.SeedResult `json:"result"`
}

// StatsResponse response thống kê hệ thống.
type StatsResponse struct {
	Stats *services.SystemStats `json:"stats"`
}

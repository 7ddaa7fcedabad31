package requests

// InvalidateCacheRequest body của request invalidate. Cycle rỗng nghĩa là
// toàn bộ các kỳ.
type InvalidateCacheRequest struct {
	Cycle string `json:"cycle"`
}

// SeedSearchRequest body của request seed document search index.
type SeedSearchRequest struct {
	Cycle string `json:"cycle" binding:"required"`
}

package requests

// ListCandidatesRequest query params của listing view. Giá trị filter là
// folded key, "all" hoặc rỗng nghĩa là không filter.
type ListCandidatesRequest struct {
	Query        string `form:"q"`
	Locality     string `form:"locality"`
	Constituency string `form:"constituency"`
	Sort         string `form:"sort"`
}

// FacetsRequest query params khi lấy facet options.
type FacetsRequest struct {
	Locality string `form:"locality"`
}

// DocumentsRequest query params khi tìm trong document directory.
type DocumentsRequest struct {
	Query string `form:"q"`
	Limit int    `form:"limit"`
}

// SuggestRequest query params của autocomplete.
type SuggestRequest struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit"`
}

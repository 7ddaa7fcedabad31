package models

// SourceRecord is a field-level citation: it ties one displayed field of a
// record to the official document it was transcribed from.
type SourceRecord struct {
	Field         string  `json:"field"`
	DocumentID    string  `json:"document_id"`
	Title         string  `json:"title"`
	URL           *string `json:"url"`
	DocType       *string `json:"doc_type"`
	PublishedDate *string `json:"published_date"`
	FetchedDate   *string `json:"fetched_date"`
	Notes         *string `json:"notes"`
}

// DocumentRecord is one official document in the per-cycle document
// directory.
type DocumentRecord struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	URL           *string `json:"url"`
	DocType       *string `json:"doc_type"`
	PublishedDate *string `json:"published_date"`
	FetchedDate   *string `json:"fetched_date"`
	Notes         *string `json:"notes"`
}

// DocumentsPayload là file documents.json của một kỳ bầu cử.
type DocumentsPayload struct {
	CycleID     string           `json:"cycle_id"`
	GeneratedAt string           `json:"generated_at"`
	Records     []DocumentRecord `json:"records"`
}

// CycleInfo describes the election event itself.
type CycleInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	Type      string  `json:"type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"`
}

// TimelinePayload là file timeline.json của một kỳ bầu cử.
type TimelinePayload struct {
	CycleID     string    `json:"cycle_id"`
	GeneratedAt string    `json:"generated_at"`
	Cycle       CycleInfo `json:"cycle"`
}

// ChangelogPayload là file changelog.json của một kỳ bầu cử.
type ChangelogPayload struct {
	CycleID     string           `json:"cycle_id"`
	GeneratedAt string           `json:"generated_at"`
	Records     []ChangeLogEntry `json:"records"`
}

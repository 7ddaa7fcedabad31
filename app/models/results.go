package models

// ResultsSource identifies the official document a results payload was
// transcribed from.
type ResultsSource struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	URL           *string `json:"url"`
	FilePath      *string `json:"file_path"`
	DocType       *string `json:"doc_type"`
	PublishedDate *string `json:"published_date"`
	FetchedDate   *string `json:"fetched_date"`
	Notes         *string `json:"notes"`
}

// ResultsSummary holds the cycle-wide turnout and seat numbers.
type ResultsSummary struct {
	TotalSeats         *int     `json:"total_seats"`
	TotalCandidates    *int     `json:"total_candidates"`
	TotalVoters        *int     `json:"total_voters"`
	TotalVotesCast     *int     `json:"total_votes_cast"`
	TurnoutPercent     *float64 `json:"turnout_percent"`
	ValidVotes         *int     `json:"valid_votes"`
	InvalidVotes       *int     `json:"invalid_votes"`
	ConfirmedWinners   *int     `json:"confirmed_winners"`
	UnconfirmedWinners *int     `json:"unconfirmed_winners"`
}

// ResultAnnotation is a status override (e.g. a win later invalidated) with a
// reason and a cited source. It never replaces the tabulated row, it sits
// next to it.
type ResultAnnotation struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Reason        *string        `json:"reason"`
	EffectiveDate *string        `json:"effective_date"`
	Source        *ResultsSource `json:"source"`
	Notes         *string        `json:"notes"`
}

// ResultsRecord is one candidate's vote outcome inside a constituency.
// CandidateEntryID may be nil or point at no index record; the row then
// renders from its own CandidateNameVi. When Status is nil the outcome is
// derived from OrderInUnit against the constituency seat count.
type ResultsRecord struct {
	ID                  string             `json:"id"`
	CandidateEntryID    *string            `json:"candidate_entry_id"`
	PersonID            *string            `json:"person_id"`
	CandidateNameVi     string             `json:"candidate_name_vi"`
	CandidateNameFolded string             `json:"candidate_name_folded"`
	LocalityID          *string            `json:"locality_id"`
	ConstituencyID      *string            `json:"constituency_id"`
	UnitNumber          *int               `json:"unit_number"`
	UnitDescriptionVi   *string            `json:"unit_description_vi"`
	OrderInUnit         *int               `json:"order_in_unit"`
	Status              *string            `json:"status"`
	Votes               *int               `json:"votes"`
	VotesRaw            *string            `json:"votes_raw"`
	Percent             *float64           `json:"percent"`
	PercentRaw          *string            `json:"percent_raw"`
	Notes               *string            `json:"notes"`
	Sources             []SourceRecord     `json:"sources"`
	Annotations         []ResultAnnotation `json:"annotations"`
}

// ResultsPayload là file results.json của một kỳ bầu cử.
type ResultsPayload struct {
	CycleID     string          `json:"cycle_id"`
	GeneratedAt string          `json:"generated_at"`
	Source      *ResultsSource  `json:"source"`
	Summary     *ResultsSummary `json:"summary"`
	Records     []ResultsRecord `json:"records"`
}

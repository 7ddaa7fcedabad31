package models

// CandidateIndexRecord is one row of the per-cycle candidate index. The
// *_folded fields are precomputed by the data pipeline with the same folding
// algorithm the live query goes through; they are never recomputed at runtime.
type CandidateIndexRecord struct {
	EntryID            string  `json:"entry_id"`
	PersonID           string  `json:"person_id"`
	NameVi             string  `json:"name_vi"`
	NameFolded         string  `json:"name_folded"`
	LocalityID         *string `json:"locality_id"`
	LocalityVi         *string `json:"locality_vi"`
	LocalityFolded     *string `json:"locality_folded"`
	ConstituencyID     *string `json:"constituency_id"`
	ConstituencyVi     *string `json:"constituency_vi"`
	ConstituencyFolded *string `json:"constituency_folded"`
	UnitNumber         *int    `json:"unit_number"`
	ListOrder          *int    `json:"list_order"`
}

// CandidatesIndexPayload là file candidates_index.json của một kỳ bầu cử.
type CandidatesIndexPayload struct {
	CycleID     string                 `json:"cycle_id"`
	GeneratedAt string                 `json:"generated_at"`
	Records     []CandidateIndexRecord `json:"records"`
}

// Person holds the personal attributes shown on a candidate detail page.
type Person struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	FullNameFolded   string  `json:"full_name_folded"`
	DOB              *string `json:"dob"`
	Gender           *string `json:"gender"`
	Nationality      *string `json:"nationality"`
	Ethnicity        *string `json:"ethnicity"`
	Religion         *string `json:"religion"`
	Birthplace       *string `json:"birthplace"`
	CurrentResidence *string `json:"current_residence"`
}

// CandidateEntry is the per-cycle participation record of a person.
type CandidateEntry struct {
	ConstituencyID    string  `json:"constituency_id"`
	ListOrder         *int    `json:"list_order"`
	PartyMemberSince  *string `json:"party_member_since"`
	IsNADelegate      *string `json:"is_na_delegate"`
	IsCouncilDelegate *string `json:"is_council_delegate"`
}

// Attribute is a free-form key/value pair attached to a candidate entry
// (education, occupation, workplace...).
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ChangeLogEntry records one published change to a candidate entry.
type ChangeLogEntry struct {
	ChangeType string  `json:"change_type"`
	ChangedAt  string  `json:"changed_at"`
	Summary    *string `json:"summary"`
}

// CandidateDetailPayload is one candidates_detail/{entry_id}.json file.
// Every displayed fact is expected to be traceable to at least one entry in
// Sources; that invariant is enforced by the build-time integrity check.
type CandidateDetailPayload struct {
	EntryID      string              `json:"entry_id"`
	CycleID      string              `json:"cycle_id"`
	Person       Person              `json:"person"`
	Entry        CandidateEntry      `json:"entry"`
	Locality     *LocalityRecord     `json:"locality"`
	Constituency *ConstituencyRecord `json:"constituency"`
	Attributes   []Attribute         `json:"attributes"`
	Sources      []SourceRecord      `json:"sources"`
	Changelog    []ChangeLogEntry    `json:"changelog"`
}

package models

// District is one administrative district covered by a constituency.
type District struct {
	NameVi     string         `json:"name_vi"`
	NameFolded string         `json:"name_folded"`
	Sources    []SourceRecord `json:"sources,omitempty"`
}

// ConstituencyRecord is an electoral unit: a locality plus a unit number,
// with the number of National Assembly seats contested in it.
type ConstituencyRecord struct {
	ID             string         `json:"id"`
	LocalityID     string         `json:"locality_id"`
	UnitNumber     *int           `json:"unit_number"`
	SeatCount      *int           `json:"seat_count"`
	NameVi         string         `json:"name_vi"`
	NameFolded     string         `json:"name_folded"`
	Description    *string        `json:"description"`
	UnitContextRaw *string        `json:"unit_context_raw"`
	Districts      []District     `json:"districts"`
	Sources        []SourceRecord `json:"sources,omitempty"`
}

// ConstituenciesPayload là file constituencies.json của một kỳ bầu cử.
type ConstituenciesPayload struct {
	CycleID     string               `json:"cycle_id"`
	GeneratedAt string               `json:"generated_at"`
	Records     []ConstituencyRecord `json:"records"`
}

// LocalityRecord is a province or centrally-run city.
type LocalityRecord struct {
	ID         string `json:"id"`
	NameVi     string `json:"name_vi"`
	NameFolded string `json:"name_folded"`
	Type       string `json:"type"`
}

// LocalitiesPayload là file localities.json của một kỳ bầu cử.
type LocalitiesPayload struct {
	CycleID     string           `json:"cycle_id"`
	GeneratedAt string           `json:"generated_at"`
	Records     []LocalityRecord `json:"records"`
}

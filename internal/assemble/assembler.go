// Package assemble joins the per-cycle datasets into the denormalized views
// the pages render from: candidate detail with its outcome, and constituency
// detail with its member list and tabulated results. Joins are tolerant by
// design: a missing counterpart never fails the view, it degrades to a
// placeholder so transcription gaps stay visible instead of hiding records.
package assemble

import (
	"errors"
	"math"
	"sort"

	"github.com/election-directory/app/models"
	"github.com/election-directory/internal/dataset"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an id resolves to no record in the cycle.
var ErrNotFound = errors.New("record not found")

// Placeholders rendered when a reference does not resolve.
const (
	UnknownLocality     = "Không rõ địa phương"
	UnknownConstituency = "Không rõ đơn vị bầu cử"
)

// ResultRow is one tabulated outcome, joined against the candidate index.
// When the join misses, DisplayName falls back to the name transcribed on the
// results row itself and EntryID stays empty.
type ResultRow struct {
	Record      models.ResultsRecord `json:"record"`
	EntryID     string               `json:"entry_id,omitempty"`
	DisplayName string               `json:"display_name"`
	Status      string               `json:"status"`
}

// CandidateView is the fully joined candidate detail page.
type CandidateView struct {
	Detail           *models.CandidateDetailPayload `json:"detail"`
	LocalityName     string                         `json:"locality_name"`
	ConstituencyName string                         `json:"constituency_name"`
	Result           *ResultRow                     `json:"result,omitempty"`
}

// ConstituencyView is the fully joined constituency detail page.
type ConstituencyView struct {
	Constituency models.ConstituencyRecord     `json:"constituency"`
	Locality     *models.LocalityRecord        `json:"locality,omitempty"`
	LocalityName string                        `json:"locality_name"`
	Members      []models.CandidateIndexRecord `json:"members"`
	Results      []ResultRow                   `json:"results"`
}

// Assembler builds views from a loaded bundle.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler tạo mới Assembler.
func NewAssembler(logger *zap.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// CandidateView joins a detail payload with the cycle's results. The detail
// payload already embeds its locality and constituency; placeholders cover
// the entries the pipeline could not link yet.
func (a *Assembler) CandidateView(b *dataset.Bundle, detail *models.CandidateDetailPayload) *CandidateView {
	view := &CandidateView{
		Detail:           detail,
		LocalityName:     UnknownLocality,
		ConstituencyName: UnknownConstituency,
	}
	if detail.Locality != nil {
		view.LocalityName = detail.Locality.NameVi
	} else {
		a.logger.Warn("candidate entry without a resolvable locality",
			zap.String("entry_id", detail.EntryID))
	}
	if detail.Constituency != nil {
		view.ConstituencyName = detail.Constituency.NameVi
	}

	if b.Results != nil {
		var seats *int
		if detail.Constituency != nil {
			seats = detail.Constituency.SeatCount
		}
		for i := range b.Results.Records {
			r := &b.Results.Records[i]
			if r.CandidateEntryID == nil || *r.CandidateEntryID != detail.EntryID {
				continue
			}
			row := resultRow(*r, detail.Person.FullName, detail.EntryID, seats)
			view.Result = &row
			break
		}
	}
	return view
}

// ConstituencyView builds the unit page: the unit itself, its locality, its
// members in ballot order and its results in vote-rank order.
func (a *Assembler) ConstituencyView(b *dataset.Bundle, id string) (*ConstituencyView, error) {
	var unit *models.ConstituencyRecord
	if b.Constituencies != nil {
		for i := range b.Constituencies.Records {
			if b.Constituencies.Records[i].ID == id {
				unit = &b.Constituencies.Records[i]
				break
			}
		}
	}
	if unit == nil {
		return nil, ErrNotFound
	}

	view := &ConstituencyView{
		Constituency: *unit,
		LocalityName: UnknownLocality,
	}
	if b.Localities != nil {
		for i := range b.Localities.Records {
			if b.Localities.Records[i].ID == unit.LocalityID {
				view.Locality = &b.Localities.Records[i]
				view.LocalityName = view.Locality.NameVi
				break
			}
		}
	}
	if view.Locality == nil {
		a.logger.Warn("constituency without a resolvable locality",
			zap.String("constituency_id", unit.ID),
			zap.String("locality_id", unit.LocalityID))
	}

	byEntry := make(map[string]models.CandidateIndexRecord)
	if b.Candidates != nil {
		for _, r := range b.Candidates.Records {
			if r.ConstituencyID != nil && *r.ConstituencyID == id {
				view.Members = append(view.Members, r)
			}
			byEntry[r.EntryID] = r
		}
	}
	sort.SliceStable(view.Members, func(i, j int) bool {
		oi, oj := memberOrder(view.Members[i]), memberOrder(view.Members[j])
		if oi != oj {
			return oi < oj
		}
		return view.Members[i].NameFolded < view.Members[j].NameFolded
	})

	if b.Results != nil {
		for _, r := range b.Results.Records {
			if r.ConstituencyID == nil || *r.ConstituencyID != id {
				continue
			}
			name := r.CandidateNameVi
			entryID := ""
			if r.CandidateEntryID != nil {
				if m, ok := byEntry[*r.CandidateEntryID]; ok {
					name = m.NameVi
					entryID = m.EntryID
				}
				// An unmatched entry id keeps the transcribed name; the row
				// still renders, it just does not link anywhere.
			}
			view.Results = append(view.Results, resultRow(r, name, entryID, unit.SeatCount))
		}
		sort.SliceStable(view.Results, func(i, j int) bool {
			oi, oj := rankOrder(view.Results[i].Record), rankOrder(view.Results[j].Record)
			if oi != oj {
				return oi < oj
			}
			return view.Results[i].Record.CandidateNameFolded < view.Results[j].Record.CandidateNameFolded
		})
	}
	return view, nil
}

func resultRow(r models.ResultsRecord, name, entryID string, seats *int) ResultRow {
	resolved := ResolveStatus(r.Status, r.OrderInUnit, seats)
	return ResultRow{
		Record:      r,
		EntryID:     entryID,
		DisplayName: name,
		Status:      EffectiveStatus(resolved, r.Annotations),
	}
}

func memberOrder(r models.CandidateIndexRecord) int {
	if r.ListOrder == nil {
		return math.MaxInt
	}
	return *r.ListOrder
}

func rankOrder(r models.ResultsRecord) int {
	if r.OrderInUnit == nil {
		return math.MaxInt
	}
	return *r.OrderInUnit
}

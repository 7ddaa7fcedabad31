package assemble

import (
	"fmt"

	"github.com/election-directory/app/models"
	"github.com/election-directory/internal/dataset"
)

// Report is the outcome of the build-time integrity check. Errors block
// publication; warnings are carried into the build log for manual review.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether the bundle may be published.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check validates a loaded bundle's cross-references before publication.
func Check(b *dataset.Bundle) *Report {
	r := &Report{}

	units := make(map[string]*models.ConstituencyRecord)
	if b.Constituencies != nil {
		for i := range b.Constituencies.Records {
			c := &b.Constituencies.Records[i]
			if prev, ok := units[c.ID]; ok && prev != nil {
				r.errorf("duplicate constituency id %s", c.ID)
			}
			units[c.ID] = c
			if c.SeatCount == nil {
				r.warnf("constituency %s has no seat count; outcomes cannot be derived", c.ID)
			}
		}
	}

	localities := make(map[string]bool)
	if b.Localities != nil {
		for _, l := range b.Localities.Records {
			localities[l.ID] = true
		}
	}
	for id, c := range units {
		if c.LocalityID != "" && !localities[c.LocalityID] {
			r.errorf("constituency %s references unknown locality %s", id, c.LocalityID)
		}
	}

	entries := make(map[string]bool)
	ballot := make(map[string]bool)     // constituency id + list order
	namesInLoc := make(map[string]bool) // locality + folded name
	if b.Candidates != nil {
		for _, c := range b.Candidates.Records {
			if c.EntryID == "" || c.NameVi == "" || c.NameFolded == "" {
				r.errorf("candidate record %q is missing required fields", c.EntryID)
				continue
			}
			if entries[c.EntryID] {
				r.errorf("duplicate candidate entry id %s", c.EntryID)
			}
			entries[c.EntryID] = true

			if c.ConstituencyID != nil {
				if _, ok := units[*c.ConstituencyID]; !ok {
					r.errorf("candidate %s references unknown constituency %s", c.EntryID, *c.ConstituencyID)
				}
				if c.ListOrder != nil {
					key := fmt.Sprintf("%s#%d", *c.ConstituencyID, *c.ListOrder)
					if ballot[key] {
						r.errorf("constituency %s has two candidates at list order %d", *c.ConstituencyID, *c.ListOrder)
					}
					ballot[key] = true
				}
			}
			if c.LocalityFolded != nil {
				key := *c.LocalityFolded + "#" + c.NameFolded
				if namesInLoc[key] {
					r.warnf("locality %q has two candidates folding to %q", *c.LocalityFolded, c.NameFolded)
				}
				namesInLoc[key] = true
			}
		}
	}

	if b.Results != nil {
		for _, row := range b.Results.Records {
			if row.CandidateEntryID != nil && !entries[*row.CandidateEntryID] {
				r.warnf("results row %s references unknown candidate entry %s; rendering transcribed name %q",
					row.ID, *row.CandidateEntryID, row.CandidateNameVi)
			}
			if row.CandidateNameVi == "" {
				r.errorf("results row %s has no candidate name", row.ID)
			}
		}
	}

	return r
}

// CheckDetail validates one detail payload: every payload must carry at
// least one source citation, and its geography references must resolve.
func CheckDetail(r *Report, d *models.CandidateDetailPayload) {
	if len(d.Sources) == 0 {
		r.warnf("candidate %s has no source citations", d.EntryID)
	}
	if d.Entry.ConstituencyID != "" && d.Constituency == nil {
		r.warnf("candidate %s references constituency %s but carries no resolved record",
			d.EntryID, d.Entry.ConstituencyID)
	}
}

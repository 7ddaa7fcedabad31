// Package directory implements the candidate search view: free-text matching
// over precomputed folded keys, categorical locality/constituency filters,
// and the official sort orders. Everything here is pure computation over an
// already-loaded record set; derived views are recomputed, never stored.
package directory

import (
	"math"
	"sort"
	"strings"

	"github.com/election-directory/app/models"
	"github.com/election-directory/internal/folding"
)

// SortKey selects one of the supported orderings.
type SortKey string

const (
	SortList         SortKey = "list"
	SortName         SortKey = "name"
	SortLocality     SortKey = "locality"
	SortConstituency SortKey = "constituency"
)

// FilterAll is the sentinel that disables a categorical filter.
const FilterAll = "all"

// Selection is the full query state of a directory view.
type Selection struct {
	Query        string
	Locality     string
	Constituency string
	Sort         SortKey
}

// DefaultSelection matches everything in official list order.
func DefaultSelection() Selection {
	return Selection{
		Locality:     FilterAll,
		Constituency: FilterAll,
		Sort:         SortList,
	}
}

// WithLocality returns the selection with a new locality filter. Changing
// locality always resets the constituency filter: constituency options are
// scoped to the locality, and a stale selection must not silently persist.
func (s Selection) WithLocality(locality string) Selection {
	if locality == "" {
		locality = FilterAll
	}
	if locality != s.Locality {
		s.Constituency = FilterAll
	}
	s.Locality = locality
	return s
}

// ValidSortKey reports whether k names a supported ordering.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortList, SortName, SortLocality, SortConstituency:
		return true
	}
	return false
}

// View filters and sorts a cycle's index records for one selection. The
// input slice is never mutated; filtering can only narrow the unfiltered
// result set, and sorting is stable.
func View(records []models.CandidateIndexRecord, sel Selection) []models.CandidateIndexRecord {
	term := folding.Fold(sel.Query)

	out := make([]models.CandidateIndexRecord, 0, len(records))
	for _, r := range records {
		if !matchesTerm(r, term) {
			continue
		}
		if !matchesKey(sel.Locality, r.LocalityFolded) {
			continue
		}
		if !matchesKey(sel.Constituency, r.ConstituencyFolded) {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, sel.Sort)
	return out
}

// matchesTerm applies the folded substring predicate: the folded query must
// occur inside the space-joined folded name/locality/constituency. Substring
// containment, not token matching.
func matchesTerm(r models.CandidateIndexRecord, term string) bool {
	if term == "" {
		return true
	}
	parts := []string{r.NameFolded}
	if r.LocalityFolded != nil {
		parts = append(parts, *r.LocalityFolded)
	}
	if r.ConstituencyFolded != nil {
		parts = append(parts, *r.ConstituencyFolded)
	}
	return strings.Contains(strings.Join(parts, " "), term)
}

func matchesKey(selected string, folded *string) bool {
	if selected == "" || selected == FilterAll {
		return true
	}
	return folded != nil && *folded == selected
}

func sortRecords(records []models.CandidateIndexRecord, key SortKey) {
	switch key {
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].NameFolded < records[j].NameFolded
		})
	case SortLocality:
		sort.SliceStable(records, func(i, j int) bool {
			return deref(records[i].LocalityFolded) < deref(records[j].LocalityFolded)
		})
	case SortConstituency:
		sort.SliceStable(records, func(i, j int) bool {
			return deref(records[i].ConstituencyFolded) < deref(records[j].ConstituencyFolded)
		})
	default:
		// Official ballot order. Entries without a list order sort last;
		// ties fall back to folded name.
		sort.SliceStable(records, func(i, j int) bool {
			oi, oj := listOrder(records[i]), listOrder(records[j])
			if oi != oj {
				return oi < oj
			}
			return records[i].NameFolded < records[j].NameFolded
		})
	}
}

func listOrder(r models.CandidateIndexRecord) int {
	if r.ListOrder == nil {
		return math.MaxInt
	}
	return *r.ListOrder
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

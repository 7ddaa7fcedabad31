package directory

import (
	"sort"

	"github.com/election-directory/app/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Option is one entry of a facet dropdown: the folded filter key plus the
// display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LocalityOptions derives the distinct locality facet from a cycle's index,
// deduplicated by folded key. The label is the first display value seen for
// a key; labels sort with Vietnamese collation.
func LocalityOptions(records []models.CandidateIndexRecord) []Option {
	seen := make(map[string]string)
	for _, r := range records {
		if r.LocalityFolded == nil || r.LocalityVi == nil {
			continue
		}
		if _, ok := seen[*r.LocalityFolded]; !ok {
			seen[*r.LocalityFolded] = *r.LocalityVi
		}
	}
	return sortedOptions(seen)
}

// ConstituencyOptions derives the constituency facet, scoped to the selected
// locality. FilterAll (or empty) leaves it unscoped.
func ConstituencyOptions(records []models.CandidateIndexRecord, locality string) []Option {
	seen := make(map[string]string)
	for _, r := range records {
		if !matchesKey(locality, r.LocalityFolded) {
			continue
		}
		if r.ConstituencyFolded == nil || r.ConstituencyVi == nil {
			continue
		}
		if _, ok := seen[*r.ConstituencyFolded]; !ok {
			seen[*r.ConstituencyFolded] = *r.ConstituencyVi
		}
	}
	return sortedOptions(seen)
}

func sortedOptions(seen map[string]string) []Option {
	opts := make([]Option, 0, len(seen))
	for value, label := range seen {
		opts = append(opts, Option{Value: value, Label: label})
	}
	c := collate.New(language.Vietnamese)
	sort.Slice(opts, func(i, j int) bool {
		if cmp := c.CompareString(opts[i].Label, opts[j].Label); cmp != 0 {
			return cmp < 0
		}
		return opts[i].Value < opts[j].Value
	})
	return opts
}

package services

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"

	"github.com/election-directory/app/config"
	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/folding"
)

// Suggestion là một gợi ý tên ứng cử viên cho ô tìm kiếm.
type Suggestion struct {
	EntryID string  `json:"entry_id"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
}

// SuggestService service gợi ý tên có chịu lỗi chính tả. Listing chính chỉ
// dùng folded substring matching; service này chỉ phục vụ autocomplete.
type SuggestService struct {
	store  *dataset.Store
	logger *zap.Logger
}

// NewSuggestService tạo mới SuggestService
func NewSuggestService(store *dataset.Store, logger *zap.Logger) *SuggestService {
	return &SuggestService{store: store, logger: logger}
}

// Suggest xếp hạng tên theo Jaro-Winkler trên folded form, gate bằng
// Levenshtein để loại match quá xa. Input không phải tiếng Việt (bàn phím
// thiếu dấu, copy từ nguồn khác) được đưa về ASCII bằng unidecode trước.
func (ss *SuggestService) Suggest(ctx context.Context, cycle, query string, limit int) ([]Suggestion, error) {
	term := folding.Fold(unidecode.Unidecode(query))
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = config.C.Directory.SuggestLimit
	}
	if limit <= 0 {
		limit = 8
	}

	b, err := ss.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	for _, r := range b.Candidates.Records {
		score := scoreName(term, r.NameFolded)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			EntryID: r.EntryID,
			Name:    r.NameVi,
			Score:   score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// scoreName chấm điểm một tên folded so với query folded.
func scoreName(term, name string) float64 {
	if name == "" {
		return 0
	}
	// Substring match luôn đạt điểm cao nhất; đây là hành vi của listing.
	if strings.Contains(name, term) {
		return 1
	}

	// Gate: bỏ các tên quá xa theo edit distance, tỉ lệ với độ dài query.
	maxDist := 1 + len(term)/4
	best := 0.0
	for _, token := range strings.Fields(name) {
		if levenshtein.ComputeDistance(term, token) > maxDist {
			continue
		}
		if jw := smetrics.JaroWinkler(term, token, 0.7, 4); jw > best {
			best = jw
		}
	}
	// So cả tên đầy đủ cho query nhiều từ.
	if levenshtein.ComputeDistance(term, name) <= maxDist {
		if jw := smetrics.JaroWinkler(term, name, 0.7, 4); jw > best {
			best = jw
		}
	}

	if best < 0.82 {
		return 0
	}
	return best
}

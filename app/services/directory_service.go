package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/election-directory/app/models"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/directory"
	"github.com/election-directory/internal/folding"
	"github.com/election-directory/internal/search"
)

// FacetSet gom các facet của listing view: hai dropdown phụ thuộc nhau và
// danh sách sort key hợp lệ.
type FacetSet struct {
	Localities     []directory.Option `json:"localities"`
	Constituencies []directory.Option `json:"constituencies"`
	Sorts          []string           `json:"sorts"`
}

// DirectoryService service xử lý listing, facet và document directory.
type DirectoryService struct {
	store     *dataset.Store
	assembler *assemble.Assembler
	searcher  *search.DocumentSearcher // nil khi không cấu hình Meilisearch
	logger    *zap.Logger
}

// NewDirectoryService tạo mới DirectoryService
func NewDirectoryService(store *dataset.Store, assembler *assemble.Assembler, searcher *search.DocumentSearcher, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		store:     store,
		assembler: assembler,
		searcher:  searcher,
		logger:    logger,
	}
}

// List trả về candidate index của một kỳ đã filter và sort theo selection.
func (ds *DirectoryService) List(ctx context.Context, cycle string, sel directory.Selection) ([]models.CandidateIndexRecord, error) {
	b, err := ds.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	return directory.View(b.Candidates.Records, sel), nil
}

// Facets trả về các facet option, constituency scoped theo locality đã chọn.
func (ds *DirectoryService) Facets(ctx context.Context, cycle, locality string) (*FacetSet, error) {
	b, err := ds.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	return &FacetSet{
		Localities:     directory.LocalityOptions(b.Candidates.Records),
		Constituencies: directory.ConstituencyOptions(b.Candidates.Records, locality),
		Sorts: []string{
			string(directory.SortList),
			string(directory.SortName),
			string(directory.SortLocality),
			string(directory.SortConstituency),
		},
	}, nil
}

// Constituencies trả về toàn bộ đơn vị bầu cử của một kỳ.
func (ds *DirectoryService) Constituencies(ctx context.Context, cycle string) ([]models.ConstituencyRecord, error) {
	b, err := ds.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	return b.Constituencies.Records, nil
}

// ConstituencyView trả về trang chi tiết một đơn vị bầu cử.
func (ds *DirectoryService) ConstituencyView(ctx context.Context, cycle, id string) (*assemble.ConstituencyView, error) {
	b, err := ds.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	return ds.assembler.ConstituencyView(b, id)
}

// Documents tìm trong document directory. Query rỗng trả về toàn bộ. Khi có
// Meilisearch thì full-text, hỏng hoặc không cấu hình thì fallback folded
// substring trong process.
func (ds *DirectoryService) Documents(ctx context.Context, cycle, query string, limit int) ([]search.DocumentHit, error) {
	b, err := ds.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	if b.Documents == nil {
		return nil, errors.New("kỳ bầu cử chưa công bố document directory")
	}

	if query == "" {
		hits := make([]search.DocumentHit, 0, len(b.Documents.Records))
		for _, d := range b.Documents.Records {
			hits = append(hits, search.DocumentHit{Document: d, Score: 1})
		}
		return hits, nil
	}

	if ds.searcher != nil {
		hits, err := ds.searcher.Search(cycle, query, limit)
		if err == nil {
			return hits, nil
		}
		ds.logger.Warn("Meilisearch lỗi, fallback tìm tuyến tính", zap.Error(err))
	}
	return linearDocumentSearch(b.Documents.Records, query, limit), nil
}

// linearDocumentSearch áp dụng folded substring matching lên title và notes.
func linearDocumentSearch(docs []models.DocumentRecord, query string, limit int) []search.DocumentHit {
	term := folding.Fold(query)
	if term == "" {
		return nil
	}

	var hits []search.DocumentHit
	for _, d := range docs {
		haystack := folding.Fold(d.Title)
		if d.Notes != nil {
			haystack += " " + folding.Fold(*d.Notes)
		}
		if strings.Contains(haystack, term) {
			hits = append(hits, search.DocumentHit{Document: d, Score: 0.5})
			if limit > 0 && len(hits) >= limit {
				break
			}
		}
	}
	return hits
}

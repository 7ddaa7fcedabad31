package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/directory"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestStore(t *testing.T) *dataset.Store {
	t.Helper()
	root := t.TempDir()

	writeFixture(t, root, "data/elections/qh15/candidates_index.json", `{
		"cycle_id": "qh15",
		"generated_at": "2021-05-01T00:00:00Z",
		"records": [
			{
				"entry_id": "e1", "person_id": "p1",
				"name_vi": "Nguyễn Văn An", "name_folded": "nguyen van an",
				"locality_id": "loc-hn", "locality_vi": "Hà Nội", "locality_folded": "ha noi",
				"constituency_id": "hn-1", "constituency_vi": "Đơn vị số 1", "constituency_folded": "don vi so 1",
				"unit_number": 1, "list_order": 2
			},
			{
				"entry_id": "e2", "person_id": "p2",
				"name_vi": "Trần Thị Bình", "name_folded": "tran thi binh",
				"locality_id": "loc-hn", "locality_vi": "Hà Nội", "locality_folded": "ha noi",
				"constituency_id": "hn-1", "constituency_vi": "Đơn vị số 1", "constituency_folded": "don vi so 1",
				"unit_number": 1, "list_order": 1
			}
		]
	}`)
	writeFixture(t, root, "data/elections/qh15/constituencies.json", `{
		"cycle_id": "qh15",
		"generated_at": "2021-05-01T00:00:00Z",
		"records": [
			{
				"id": "hn-1", "locality_id": "loc-hn", "unit_number": 1, "seat_count": 1,
				"name_vi": "Đơn vị số 1", "name_folded": "don vi so 1", "districts": []
			}
		]
	}`)
	writeFixture(t, root, "data/elections/qh15/localities.json", `{
		"cycle_id": "qh15",
		"generated_at": "2021-05-01T00:00:00Z",
		"records": [
			{"id": "loc-hn", "name_vi": "Hà Nội", "name_folded": "ha noi", "type": "city"}
		]
	}`)
	writeFixture(t, root, "data/elections/qh15/documents.json", `{
		"cycle_id": "qh15",
		"generated_at": "2021-05-01T00:00:00Z",
		"records": [
			{"id": "d1", "title": "Nghị quyết công bố danh sách ứng cử viên", "doc_type": "nghi_quyet"},
			{"id": "d2", "title": "Biên bản tổng kết bầu cử", "doc_type": "bien_ban"}
		]
	}`)

	writeFixture(t, root, "data/elections/qh15/candidates_detail/e1.json", `{
		"entry_id": "e1",
		"cycle_id": "qh15",
		"person": {"id": "p1", "full_name": "Nguyễn Văn An", "full_name_folded": "nguyen van an"},
		"entry": {"constituency_id": "hn-1", "list_order": 2},
		"locality": {"id": "loc-hn", "name_vi": "Hà Nội", "name_folded": "ha noi", "type": "city"},
		"constituency": {
			"id": "hn-1", "locality_id": "loc-hn", "unit_number": 1, "seat_count": 1,
			"name_vi": "Đơn vị số 1", "name_folded": "don vi so 1", "districts": []
		},
		"attributes": [{"key": "education", "value": "Cử nhân Luật"}],
		"sources": [{"field": "full_name", "document_id": "d1", "title": "Nghị quyết công bố danh sách"}],
		"changelog": []
	}`)

	loader := dataset.NewLoader(dataset.NewFSFetcher(root), zap.NewNop())
	return dataset.NewStore(loader, zap.NewNop())
}

func newTestDirectoryService(t *testing.T) *DirectoryService {
	t.Helper()
	logger := zap.NewNop()
	return NewDirectoryService(newTestStore(t), assemble.NewAssembler(logger), nil, logger)
}

func TestDirectoryService_List(t *testing.T) {
	ds := newTestDirectoryService(t)

	sel := directory.DefaultSelection()
	records, err := ds.List(context.Background(), "qh15", sel)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	// Ballot order: e2 carries list_order 1.
	if records[0].EntryID != "e2" {
		t.Errorf("first record = %s", records[0].EntryID)
	}

	sel.Query = "nguyễn"
	records, err = ds.List(context.Background(), "qh15", sel)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].EntryID != "e1" {
		t.Fatalf("query result = %+v", records)
	}
}

func TestDirectoryService_Facets(t *testing.T) {
	ds := newTestDirectoryService(t)

	facets, err := ds.Facets(context.Background(), "qh15", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(facets.Localities) != 1 || facets.Localities[0].Label != "Hà Nội" {
		t.Errorf("localities = %+v", facets.Localities)
	}
	if len(facets.Constituencies) != 1 {
		t.Errorf("constituencies = %+v", facets.Constituencies)
	}
	if len(facets.Sorts) != 4 {
		t.Errorf("sorts = %v", facets.Sorts)
	}
}

func TestDirectoryService_ConstituencyView(t *testing.T) {
	ds := newTestDirectoryService(t)

	view, err := ds.ConstituencyView(context.Background(), "qh15", "hn-1")
	if err != nil {
		t.Fatal(err)
	}
	if view.LocalityName != "Hà Nội" || len(view.Members) != 2 {
		t.Fatalf("view = %+v", view)
	}

	if _, err := ds.ConstituencyView(context.Background(), "qh15", "hn-404"); err != assemble.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDirectoryService_DocumentsLinearFallback(t *testing.T) {
	// No Meilisearch configured: queries go through the folded linear scan.
	ds := newTestDirectoryService(t)

	hits, err := ds.Documents(context.Background(), "qh15", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("unfiltered hits = %d", len(hits))
	}

	hits, err = ds.Documents(context.Background(), "qh15", "nghị quyết", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Document.ID != "d1" {
		t.Fatalf("filtered hits = %+v", hits)
	}

	// Accent-insensitive, per the folding rules.
	hits, err = ds.Documents(context.Background(), "qh15", "bien ban", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Document.ID != "d2" {
		t.Fatalf("unaccented query hits = %+v", hits)
	}
}

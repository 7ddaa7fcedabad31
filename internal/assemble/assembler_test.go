package assemble

import (
	"strings"
	"testing"

	"github.com/election-directory/app/models"
	"github.com/election-directory/internal/dataset"
	"go.uber.org/zap"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestResolveStatus(t *testing.T) {
	cases := []struct {
		name     string
		explicit *string
		order    *int
		seats    *int
		want     string
	}{
		{"explicit wins over rank", strp("lose"), intp(1), intp(5), "lose"},
		{"rank within seats", nil, intp(3), intp(5), "win"},
		{"rank equals seats", nil, intp(3), intp(3), "win"},
		{"rank beyond seats", nil, intp(3), intp(2), "lose"},
		{"no rank", nil, nil, intp(3), ""},
		{"no seat count", nil, intp(1), nil, ""},
		{"empty explicit falls through", strp(""), intp(1), intp(3), "win"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveStatus(tc.explicit, tc.order, tc.seats); got != tc.want {
				t.Errorf("ResolveStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	anns := []models.ResultAnnotation{
		{ID: "a1", Status: "win"},
		{ID: "a2", Status: "invalidated"},
	}
	if got := EffectiveStatus("win", anns); got != "invalidated" {
		t.Errorf("EffectiveStatus = %q, want the latest annotation", got)
	}
	if got := EffectiveStatus("win", nil); got != "win" {
		t.Errorf("EffectiveStatus without annotations = %q", got)
	}
}

func testBundle() *dataset.Bundle {
	return &dataset.Bundle{
		CycleID: "qh15",
		Candidates: &models.CandidatesIndexPayload{
			CycleID: "qh15",
			Records: []models.CandidateIndexRecord{
				{
					EntryID: "e1", PersonID: "p1",
					NameVi: "Nguyễn Văn An", NameFolded: "nguyen van an",
					LocalityID: strp("loc-hn"), LocalityVi: strp("Hà Nội"), LocalityFolded: strp("ha noi"),
					ConstituencyID: strp("hn-1"), ConstituencyVi: strp("Đơn vị số 1"), ConstituencyFolded: strp("don vi so 1"),
					UnitNumber: intp(1), ListOrder: intp(2),
				},
				{
					EntryID: "e2", PersonID: "p2",
					NameVi: "Trần Thị Bình", NameFolded: "tran thi binh",
					LocalityID: strp("loc-hn"), LocalityVi: strp("Hà Nội"), LocalityFolded: strp("ha noi"),
					ConstituencyID: strp("hn-1"), ConstituencyVi: strp("Đơn vị số 1"), ConstituencyFolded: strp("don vi so 1"),
					UnitNumber: intp(1), ListOrder: intp(1),
				},
			},
		},
		Constituencies: &models.ConstituenciesPayload{
			CycleID: "qh15",
			Records: []models.ConstituencyRecord{
				{
					ID: "hn-1", LocalityID: "loc-hn",
					UnitNumber: intp(1), SeatCount: intp(1),
					NameVi: "Đơn vị số 1", NameFolded: "don vi so 1",
				},
			},
		},
		Localities: &models.LocalitiesPayload{
			CycleID: "qh15",
			Records: []models.LocalityRecord{
				{ID: "loc-hn", NameVi: "Hà Nội", NameFolded: "ha noi", Type: "city"},
			},
		},
		Results: &models.ResultsPayload{
			CycleID: "qh15",
			Records: []models.ResultsRecord{
				{
					ID: "r1", CandidateEntryID: strp("e2"),
					CandidateNameVi: "Tran Thi Binh (bien ban)", CandidateNameFolded: "tran thi binh",
					ConstituencyID: strp("hn-1"), OrderInUnit: intp(1),
					Votes: intp(50000), Percent: ptrFloat(61.2),
				},
				{
					ID: "r2", CandidateEntryID: strp("e1"),
					CandidateNameVi: "Nguyen Van An (bien ban)", CandidateNameFolded: "nguyen van an",
					ConstituencyID: strp("hn-1"), OrderInUnit: intp(2),
					Votes: intp(31000), Percent: ptrFloat(38.8),
				},
				{
					// Transcribed from the tabulation document but never linked
					// to an entry in the candidate index.
					ID: "r3", CandidateEntryID: strp("e-missing"),
					CandidateNameVi: "Phạm Thị Dung", CandidateNameFolded: "pham thi dung",
					ConstituencyID: strp("hn-1"), OrderInUnit: intp(3),
				},
			},
		},
	}
}

func ptrFloat(f float64) *float64 { return &f }

func TestConstituencyView(t *testing.T) {
	a := NewAssembler(zap.NewNop())
	view, err := a.ConstituencyView(testBundle(), "hn-1")
	if err != nil {
		t.Fatal(err)
	}

	if view.LocalityName != "Hà Nội" {
		t.Errorf("locality name = %q", view.LocalityName)
	}

	// Members in ballot order, not index order.
	if len(view.Members) != 2 {
		t.Fatalf("got %d members", len(view.Members))
	}
	if view.Members[0].EntryID != "e2" || view.Members[1].EntryID != "e1" {
		t.Errorf("member order = %s, %s", view.Members[0].EntryID, view.Members[1].EntryID)
	}

	if len(view.Results) != 3 {
		t.Fatalf("got %d result rows", len(view.Results))
	}

	// One seat: rank 1 wins, the rest lose.
	wantStatus := []string{StatusWin, StatusLose, StatusLose}
	for i, row := range view.Results {
		if row.Status != wantStatus[i] {
			t.Errorf("row %d status = %q, want %q", i, row.Status, wantStatus[i])
		}
	}

	// Joined rows display the index name; the unlinked row keeps its own
	// transcribed name and has no entry link.
	if view.Results[0].DisplayName != "Trần Thị Bình" || view.Results[0].EntryID != "e2" {
		t.Errorf("joined row = %q/%q", view.Results[0].DisplayName, view.Results[0].EntryID)
	}
	if view.Results[2].DisplayName != "Phạm Thị Dung" || view.Results[2].EntryID != "" {
		t.Errorf("unlinked row = %q/%q", view.Results[2].DisplayName, view.Results[2].EntryID)
	}
}

func TestConstituencyView_NotFound(t *testing.T) {
	a := NewAssembler(zap.NewNop())
	if _, err := a.ConstituencyView(testBundle(), "hn-99"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConstituencyView_IndeterminateWithoutSeatCount(t *testing.T) {
	b := testBundle()
	b.Constituencies.Records[0].SeatCount = nil

	a := NewAssembler(zap.NewNop())
	view, err := a.ConstituencyView(b, "hn-1")
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range view.Results {
		if row.Status != "" {
			t.Errorf("row %d status = %q, want indeterminate", i, row.Status)
		}
	}
}

func TestCandidateView(t *testing.T) {
	b := testBundle()
	detail := &models.CandidateDetailPayload{
		EntryID: "e1",
		CycleID: "qh15",
		Person:  models.Person{ID: "p1", FullName: "Nguyễn Văn An", FullNameFolded: "nguyen van an"},
		Entry:   models.CandidateEntry{ConstituencyID: "hn-1", ListOrder: intp(2)},
		Locality: &models.LocalityRecord{
			ID: "loc-hn", NameVi: "Hà Nội", NameFolded: "ha noi", Type: "city",
		},
		Constituency: &b.Constituencies.Records[0],
	}

	a := NewAssembler(zap.NewNop())
	view := a.CandidateView(b, detail)

	if view.LocalityName != "Hà Nội" || view.ConstituencyName != "Đơn vị số 1" {
		t.Errorf("names = %q / %q", view.LocalityName, view.ConstituencyName)
	}
	if view.Result == nil {
		t.Fatal("no result row joined")
	}
	if view.Result.Status != StatusLose {
		t.Errorf("status = %q, want %q", view.Result.Status, StatusLose)
	}
	if view.Result.DisplayName != "Nguyễn Văn An" {
		t.Errorf("display name = %q", view.Result.DisplayName)
	}
}

func TestCandidateView_PlaceholdersOnJoinMiss(t *testing.T) {
	b := testBundle()
	detail := &models.CandidateDetailPayload{
		EntryID: "e9",
		CycleID: "qh15",
		Person:  models.Person{ID: "p9", FullName: "Hoàng Văn Em"},
	}

	a := NewAssembler(zap.NewNop())
	view := a.CandidateView(b, detail)

	if view.LocalityName != UnknownLocality {
		t.Errorf("locality placeholder = %q", view.LocalityName)
	}
	if view.ConstituencyName != UnknownConstituency {
		t.Errorf("constituency placeholder = %q", view.ConstituencyName)
	}
	if view.Result != nil {
		t.Error("joined a result row for an entry with none")
	}
}

func TestCheck(t *testing.T) {
	b := testBundle()
	report := Check(b)

	if !report.OK() {
		t.Fatalf("clean bundle reported errors: %v", report.Errors)
	}
	// The unlinked results row is worth a warning, not an error.
	if len(report.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly the unlinked-row warning", report.Warnings)
	}
}

func TestCheck_FlagsBrokenReferences(t *testing.T) {
	b := testBundle()
	b.Candidates.Records[0].ConstituencyID = strp("hn-404")
	b.Candidates.Records = append(b.Candidates.Records, models.CandidateIndexRecord{
		EntryID: "e3", NameVi: "Vũ Văn Giáp", NameFolded: "vu van giap",
		ConstituencyID: strp("hn-1"), ListOrder: intp(1),
	})

	report := Check(b)
	if report.OK() {
		t.Fatal("broken bundle passed the check")
	}

	var unknownUnit, dupOrder bool
	for _, e := range report.Errors {
		switch {
		case strings.Contains(e, "unknown constituency hn-404"):
			unknownUnit = true
		case strings.Contains(e, "list order 1"):
			dupOrder = true
		}
	}
	if !unknownUnit {
		t.Errorf("missing unknown-constituency error in %v", report.Errors)
	}
	if !dupOrder {
		t.Errorf("missing duplicate-list-order error in %v", report.Errors)
	}
}

func TestCheckDetail(t *testing.T) {
	report := &Report{}
	CheckDetail(report, &models.CandidateDetailPayload{
		EntryID: "e1",
		Entry:   models.CandidateEntry{ConstituencyID: "hn-1"},
	})
	if len(report.Warnings) != 2 {
		t.Fatalf("warnings = %v, want missing-sources and unresolved-constituency", report.Warnings)
	}
}

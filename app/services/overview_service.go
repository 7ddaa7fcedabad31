package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/election-directory/app/models"
	"github.com/election-directory/internal/dataset"
)

// VoteLeader là một ứng cử viên trong bảng dẫn đầu phiếu bầu toàn quốc.
type VoteLeader struct {
	EntryID        *string  `json:"entry_id"`
	Name           string   `json:"name"`
	ConstituencyID *string  `json:"constituency_id"`
	Votes          int      `json:"votes"`
	Percent        *float64 `json:"percent"`
}

// MarginStat là chênh lệch phiếu giữa người trúng cử cuối và người trượt đầu
// trong một đơn vị bầu cử.
type MarginStat struct {
	ConstituencyID string `json:"constituency_id"`
	NameVi         string `json:"name_vi"`
	WinnerVotes    int    `json:"winner_votes"`
	LoserVotes     int    `json:"loser_votes"`
	Gap            int    `json:"gap"`
}

// QuickStats các con số nhanh trên trang tổng quan.
type QuickStats struct {
	Candidates       int          `json:"candidates"`
	Constituencies   int          `json:"constituencies"`
	Localities       int          `json:"localities"`
	Documents        int          `json:"documents"`
	TopVotes         []VoteLeader `json:"top_votes,omitempty"`
	NarrowestMargins []MarginStat `json:"narrowest_margins,omitempty"`
}

// Overview là trang tổng quan của một kỳ bầu cử.
type Overview struct {
	Cycle     *models.CycleInfo       `json:"cycle,omitempty"`
	Summary   *models.ResultsSummary  `json:"summary,omitempty"`
	Changelog []models.ChangeLogEntry `json:"changelog,omitempty"`
	Stats     QuickStats              `json:"stats"`
}

// OverviewService service build trang tổng quan.
type OverviewService struct {
	store  *dataset.Store
	logger *zap.Logger
}

// NewOverviewService tạo mới OverviewService
func NewOverviewService(store *dataset.Store, logger *zap.Logger) *OverviewService {
	return &OverviewService{store: store, logger: logger}
}

// Overview build trang tổng quan từ bundle của một kỳ. Phần nào chưa công bố
// thì để trống, không lỗi.
func (ovs *OverviewService) Overview(ctx context.Context, cycle string) (*Overview, error) {
	b, err := ovs.store.Bundle(ctx, cycle)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Stats: QuickStats{
			Candidates:     len(b.Candidates.Records),
			Constituencies: len(b.Constituencies.Records),
			Localities:     len(b.Localities.Records),
		},
	}
	if b.Timeline != nil {
		ov.Cycle = &b.Timeline.Cycle
	}
	if b.Documents != nil {
		ov.Stats.Documents = len(b.Documents.Records)
	}
	if b.Changelog != nil {
		ov.Changelog = b.Changelog.Records
	}
	if b.Results != nil {
		ov.Summary = b.Results.Summary
		ov.Stats.TopVotes = topVotes(b.Results.Records, 10)
		ov.Stats.NarrowestMargins = narrowestMargins(b, 5)
	}
	return ov, nil
}

// topVotes xếp hạng theo số phiếu tuyệt đối toàn quốc.
func topVotes(records []models.ResultsRecord, limit int) []VoteLeader {
	var leaders []VoteLeader
	for _, r := range records {
		if r.Votes == nil {
			continue
		}
		leaders = append(leaders, VoteLeader{
			EntryID:        r.CandidateEntryID,
			Name:           r.CandidateNameVi,
			ConstituencyID: r.ConstituencyID,
			Votes:          *r.Votes,
			Percent:        r.Percent,
		})
	}
	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].Votes > leaders[j].Votes
	})
	if len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}

// narrowestMargins tính gap giữa người trúng cử cuối và người trượt đầu theo
// từng đơn vị, trả về các đơn vị sít sao nhất.
func narrowestMargins(b *dataset.Bundle, limit int) []MarginStat {
	seats := make(map[string]*models.ConstituencyRecord)
	for i := range b.Constituencies.Records {
		c := &b.Constituencies.Records[i]
		seats[c.ID] = c
	}

	byUnit := make(map[string][]models.ResultsRecord)
	for _, r := range b.Results.Records {
		if r.ConstituencyID == nil || r.Votes == nil {
			continue
		}
		byUnit[*r.ConstituencyID] = append(byUnit[*r.ConstituencyID], r)
	}

	var margins []MarginStat
	for id, rows := range byUnit {
		unit := seats[id]
		if unit == nil || unit.SeatCount == nil {
			continue
		}
		n := *unit.SeatCount
		if n <= 0 || len(rows) <= n {
			continue
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return *rows[i].Votes > *rows[j].Votes
		})
		margins = append(margins, MarginStat{
			ConstituencyID: id,
			NameVi:         unit.NameVi,
			WinnerVotes:    *rows[n-1].Votes,
			LoserVotes:     *rows[n].Votes,
			Gap:            *rows[n-1].Votes - *rows[n].Votes,
		})
	}

	sort.SliceStable(margins, func(i, j int) bool {
		if margins[i].Gap != margins[j].Gap {
			return margins[i].Gap < margins[j].Gap
		}
		return margins[i].ConstituencyID < margins[j].ConstituencyID
	})
	if len(margins) > limit {
		margins = margins[:limit]
	}
	return margins
}

package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/election-directory/app/config"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
)

const adminRequiredFixtures = `{
	"cycle_id": "qh15", "generated_at": "2021-05-01T00:00:00Z",
	"records": []
}`

func newTestAdminService(t *testing.T, root string) (*AdminService, *LRUCacheService) {
	t.Helper()
	logger := zap.NewNop()
	cache, err := NewLRUCacheService(8, nil, logger)
	if err != nil {
		t.Fatal(err)
	}
	store := dataset.NewStore(dataset.NewLoader(dataset.NewFSFetcher(root), logger), logger)
	details := NewDetailService(store, assemble.NewAssembler(logger), cache, logger)
	as := NewAdminService(store, cache, details, nil, nil, logger)
	t.Cleanup(as.Close)
	return as, cache
}

// Invalidating one cycle must not cancel a pending invalidation of another.
func TestAdminService_InvalidatePerCycle(t *testing.T) {
	oldMs := config.C.Directory.DebounceMs
	config.C.Directory.DebounceMs = 20
	t.Cleanup(func() { config.C.Directory.DebounceMs = oldMs })

	root := t.TempDir()
	writeFixture(t, root, "data/elections/qh15/candidates_index.json", `{
		"cycle_id": "qh15", "generated_at": "2021-05-01T00:00:00Z",
		"records": [
			{"entry_id": "e1", "person_id": "p1", "name_vi": "A", "name_folded": "a"}
		]
	}`)
	writeFixture(t, root, "data/elections/qh15/constituencies.json", adminRequiredFixtures)
	writeFixture(t, root, "data/elections/qh15/localities.json", adminRequiredFixtures)

	as, cache := newTestAdminService(t, root)
	if as.debounce != 20*time.Millisecond {
		t.Fatalf("debounce = %v, want 20ms from config", as.debounce)
	}

	ctx := context.Background()
	b, err := as.store.Bundle(ctx, "qh15")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Candidates.Records) != 1 {
		t.Fatalf("initial bundle has %d records", len(b.Candidates.Records))
	}
	if err := cache.Set(ctx, "qh15/e1", &assemble.CandidateView{}); err != nil {
		t.Fatal(err)
	}

	// The pipeline republishes qh15 with one more record.
	writeFixture(t, root, "data/elections/qh15/candidates_index.json", `{
		"cycle_id": "qh15", "generated_at": "2021-05-02T00:00:00Z",
		"records": [
			{"entry_id": "e1", "person_id": "p1", "name_vi": "A", "name_folded": "a"},
			{"entry_id": "e2", "person_id": "p2", "name_vi": "B", "name_folded": "b"}
		]
	}`)

	// A second cycle is invalidated inside qh15's quiet period.
	as.InvalidateCycle("qh15")
	time.Sleep(5 * time.Millisecond)
	as.InvalidateCycle("qh14")
	time.Sleep(150 * time.Millisecond)

	b, err = as.store.Bundle(ctx, "qh15")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Candidates.Records) != 2 {
		t.Fatalf("bundle after invalidate has %d records, want 2", len(b.Candidates.Records))
	}
	if exists, _ := cache.Exists(ctx, "qh15/e1"); exists {
		t.Error("view cache was not cleared by the invalidation")
	}
}

// A burst on the same cycle still coalesces into one reload.
func TestAdminService_InvalidateSameCycleCoalesces(t *testing.T) {
	oldMs := config.C.Directory.DebounceMs
	config.C.Directory.DebounceMs = 30
	t.Cleanup(func() { config.C.Directory.DebounceMs = oldMs })

	root := t.TempDir()
	writeFixture(t, root, "data/elections/qh15/candidates_index.json", adminRequiredFixtures)
	writeFixture(t, root, "data/elections/qh15/constituencies.json", adminRequiredFixtures)
	writeFixture(t, root, "data/elections/qh15/localities.json", adminRequiredFixtures)

	as, _ := newTestAdminService(t, root)

	for i := 0; i < 5; i++ {
		as.InvalidateCycle("qh15")
		time.Sleep(5 * time.Millisecond)
	}
	as.mu.Lock()
	n := len(as.debouncers)
	as.mu.Unlock()
	if n != 1 {
		t.Errorf("burst on one cycle created %d debouncers, want 1", n)
	}
}

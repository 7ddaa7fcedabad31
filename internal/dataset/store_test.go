package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
)

const constituenciesFixture = `{
	"cycle_id": "qh15",
	"generated_at": "2021-05-01T00:00:00Z",
	"records": [
		{
			"id": "hn-1",
			"locality_id": "loc-hn",
			"unit_number": 1,
			"seat_count": 3,
			"name_vi": "Đơn vị số 1",
			"name_folded": "don vi so 1",
			"districts": []
		}
	]
}`

const localitiesFixture = `{
	"cycle_id": "qh15",
	"generated_at": "2021-05-01T00:00:00Z",
	"records": [
		{"id": "loc-hn", "name_vi": "Hà Nội", "name_folded": "ha noi", "type": "city"}
	]
}`

func writeRequiredFixtures(t *testing.T, root string) {
	t.Helper()
	writeFixture(t, root, "data/elections/qh15/candidates_index.json", candidatesFixture)
	writeFixture(t, root, "data/elections/qh15/constituencies.json", constituenciesFixture)
	writeFixture(t, root, "data/elections/qh15/localities.json", localitiesFixture)
}

// countingFetcher đếm số lần mỗi file được fetch.
type countingFetcher struct {
	inner Fetcher

	mu     sync.Mutex
	counts map[string]int
}

func (f *countingFetcher) Fetch(ctx context.Context, rel string) ([]byte, error) {
	f.mu.Lock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[rel]++
	f.mu.Unlock()
	return f.inner.Fetch(ctx, rel)
}

func (f *countingFetcher) count(rel string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[rel]
}

func TestStore_OptionalDatasetsDegradeToNil(t *testing.T) {
	root := t.TempDir()
	writeRequiredFixtures(t, root)
	// No results, documents, timeline or changelog published yet.

	store := NewStore(NewLoader(NewFSFetcher(root), zap.NewNop()), zap.NewNop())
	b, err := store.Bundle(context.Background(), "qh15")
	if err != nil {
		t.Fatal(err)
	}

	if b.Candidates == nil || b.Constituencies == nil || b.Localities == nil {
		t.Fatal("required dataset missing from bundle")
	}
	if b.Results != nil || b.Documents != nil || b.Timeline != nil || b.Changelog != nil {
		t.Fatal("unpublished optional dataset is not nil")
	}
}

func TestStore_RequiredDatasetFailsLoad(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "data/elections/qh15/candidates_index.json", candidatesFixture)
	// constituencies.json and localities.json missing.

	store := NewStore(NewLoader(NewFSFetcher(root), zap.NewNop()), zap.NewNop())
	_, err := store.Bundle(context.Background(), "qh15")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestStore_BundleIsCached(t *testing.T) {
	root := t.TempDir()
	writeRequiredFixtures(t, root)

	fetcher := &countingFetcher{inner: NewFSFetcher(root)}
	store := NewStore(NewLoader(fetcher, zap.NewNop()), zap.NewNop())

	ctx := context.Background()
	if _, err := store.Bundle(ctx, "qh15"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Bundle(ctx, "qh15"); err != nil {
		t.Fatal(err)
	}

	if got := fetcher.count("data/elections/qh15/candidates_index.json"); got != 1 {
		t.Fatalf("candidates_index fetched %d times, want 1", got)
	}
}

func TestStore_InvalidateForcesReload(t *testing.T) {
	root := t.TempDir()
	writeRequiredFixtures(t, root)

	fetcher := &countingFetcher{inner: NewFSFetcher(root)}
	store := NewStore(NewLoader(fetcher, zap.NewNop()), zap.NewNop())

	ctx := context.Background()
	if _, err := store.Bundle(ctx, "qh15"); err != nil {
		t.Fatal(err)
	}

	store.Invalidate("qh15")

	if _, err := store.Bundle(ctx, "qh15"); err != nil {
		t.Fatal(err)
	}
	if got := fetcher.count("data/elections/qh15/candidates_index.json"); got != 2 {
		t.Fatalf("candidates_index fetched %d times after invalidate, want 2", got)
	}
}

func TestStore_InvalidateAll(t *testing.T) {
	root := t.TempDir()
	writeRequiredFixtures(t, root)

	fetcher := &countingFetcher{inner: NewFSFetcher(root)}
	store := NewStore(NewLoader(fetcher, zap.NewNop()), zap.NewNop())

	ctx := context.Background()
	if _, err := store.Bundle(ctx, "qh15"); err != nil {
		t.Fatal(err)
	}
	store.InvalidateAll()
	if _, err := store.Bundle(ctx, "qh15"); err != nil {
		t.Fatal(err)
	}

	if got := fetcher.count("data/elections/qh15/localities.json"); got != 2 {
		t.Fatalf("localities fetched %d times, want 2", got)
	}
}

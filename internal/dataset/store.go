package dataset

import (
	"context"
	"errors"
	"sync"

	"github.com/election-directory/app/models"
	"go.uber.org/zap"
)

// Bundle holds everything a cycle's views render from. Candidates,
// constituencies and localities are required; the rest may be nil until the
// build pipeline publishes them.
type Bundle struct {
	CycleID        string
	Candidates     *models.CandidatesIndexPayload
	Constituencies *models.ConstituenciesPayload
	Localities     *models.LocalitiesPayload
	Results        *models.ResultsPayload
	Documents      *models.DocumentsPayload
	Timeline       *models.TimelinePayload
	Changelog      *models.ChangelogPayload
}

// Store caches one Bundle per cycle. Every view owns the bundle it got; the
// store never mutates a bundle after handing it out. A generation counter per
// cycle guards against stale loads: an invalidation bumps the counter, and an
// in-flight load started under an older generation is not cached when it
// completes.
type Store struct {
	loader *Loader
	logger *zap.Logger

	mu      sync.RWMutex
	gen     map[string]uint64
	bundles map[string]*Bundle
}

// NewStore tạo mới Store.
func NewStore(loader *Loader, logger *zap.Logger) *Store {
	return &Store{
		loader:  loader,
		logger:  logger,
		gen:     make(map[string]uint64),
		bundles: make(map[string]*Bundle),
	}
}

// Bundle returns the cached bundle for a cycle, loading it on first use.
func (s *Store) Bundle(ctx context.Context, cycle string) (*Bundle, error) {
	s.mu.RLock()
	cached := s.bundles[cycle]
	gen := s.gen[cycle]
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	b, err := s.load(ctx, cycle)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gen[cycle] == gen {
		s.bundles[cycle] = b
	} else {
		// A newer invalidation won the race; serve the data we have but
		// leave the cache for the fresher load.
		s.logger.Debug("discarding stale bundle", zap.String("cycle", cycle))
	}
	s.mu.Unlock()
	return b, nil
}

// CandidateDetail loads one candidate detail payload. Details are cached by
// the service layer, not here.
func (s *Store) CandidateDetail(ctx context.Context, cycle, entryID string) (*models.CandidateDetailPayload, error) {
	return s.loader.CandidateDetail(ctx, cycle, entryID)
}

// Invalidate drops the cached bundle for a cycle and bumps its generation so
// any in-flight load for the old data cannot repopulate the cache.
func (s *Store) Invalidate(cycle string) {
	s.mu.Lock()
	s.gen[cycle]++
	delete(s.bundles, cycle)
	s.mu.Unlock()
	s.logger.Info("bundle invalidated", zap.String("cycle", cycle))
}

// InvalidateAll drops every cached bundle.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	for cycle := range s.bundles {
		s.gen[cycle]++
		delete(s.bundles, cycle)
	}
	s.mu.Unlock()
	s.logger.Info("all bundles invalidated")
}

// load fetches a cycle's datasets concurrently. The three required datasets
// fail the whole load; optional ones degrade to nil.
func (s *Store) load(ctx context.Context, cycle string) (*Bundle, error) {
	b := &Bundle{CycleID: cycle}
	errCh := make(chan error, 7)

	go func() {
		p, err := s.loader.CandidatesIndex(ctx, cycle)
		b.Candidates = p
		errCh <- err
	}()
	go func() {
		p, err := s.loader.Constituencies(ctx, cycle)
		b.Constituencies = p
		errCh <- err
	}()
	go func() {
		p, err := s.loader.Localities(ctx, cycle)
		b.Localities = p
		errCh <- err
	}()
	go func() {
		p, err := s.loader.Results(ctx, cycle)
		b.Results = p
		errCh <- s.optional(cycle, "results", err)
	}()
	go func() {
		p, err := s.loader.Documents(ctx, cycle)
		b.Documents = p
		errCh <- s.optional(cycle, "documents", err)
	}()
	go func() {
		p, err := s.loader.Timeline(ctx, cycle)
		b.Timeline = p
		errCh <- s.optional(cycle, "timeline", err)
	}()
	go func() {
		p, err := s.loader.Changelog(ctx, cycle)
		b.Changelog = p
		errCh <- s.optional(cycle, "changelog", err)
	}()

	var firstErr error
	for i := 0; i < 7; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	s.logger.Info("bundle loaded",
		zap.String("cycle", cycle),
		zap.Int("candidates", len(b.Candidates.Records)),
		zap.Int("constituencies", len(b.Constituencies.Records)),
		zap.Bool("results", b.Results != nil))
	return b, nil
}

// optional swallows unavailability for datasets the views tolerate missing.
func (s *Store) optional(cycle, name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		s.logger.Debug("optional dataset not yet available",
			zap.String("cycle", cycle), zap.String("dataset", name))
		return nil
	}
	return err
}

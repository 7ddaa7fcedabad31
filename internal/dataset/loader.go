// Package dataset fetches and validates the per-cycle JSON documents the
// build pipeline publishes under data/elections/{cycle}/. The loader is the
// trust boundary: anything it cannot fetch or decode into the expected shape
// surfaces as ErrUnavailable, never as a loosely-typed value or a panic.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/election-directory/app/models"
	"go.uber.org/zap"
)

// ErrUnavailable means a dataset could not be fetched or failed validation.
// There is no retry anywhere: a failed load is terminal for the render pass
// and the caller shows a "not yet available" fallback.
var ErrUnavailable = fmt.Errorf("dataset unavailable")

func unavailable(rel string, cause error) error {
	return fmt.Errorf("dataset %s: %v: %w", rel, cause, ErrUnavailable)
}

// Fetcher retrieves the raw bytes of one published file, identified by its
// slash-separated path relative to the data root.
type Fetcher interface {
	Fetch(ctx context.Context, rel string) ([]byte, error)
}

// FSFetcher reads published files from a local directory tree.
type FSFetcher struct {
	root string
}

// NewFSFetcher tạo fetcher đọc trực tiếp từ thư mục xuất bản.
func NewFSFetcher(root string) *FSFetcher {
	return &FSFetcher{root: root}
}

func (f *FSFetcher) Fetch(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, unavailable(rel, err)
	}
	return b, nil
}

// HTTPFetcher reads published files from a static file host. The base URL is
// the single external configuration value the directory consumes.
type HTTPFetcher struct {
	base   string
	client *http.Client
}

// NewHTTPFetcher tạo fetcher đọc qua HTTP từ static host.
func NewHTTPFetcher(base string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rel string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base+"/"+rel, nil)
	if err != nil {
		return nil, unavailable(rel, err)
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, unavailable(rel, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, unavailable(rel, fmt.Errorf("status %d", res.StatusCode))
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, unavailable(rel, err)
	}
	return b, nil
}

// Loader decodes published files into their typed payloads.
type Loader struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewLoader tạo mới Loader.
func NewLoader(fetcher Fetcher, logger *zap.Logger) *Loader {
	return &Loader{fetcher: fetcher, logger: logger}
}

func cyclePath(cycle, name string) string {
	return path.Join("data", "elections", cycle, name+".json")
}

func (l *Loader) fetchJSON(ctx context.Context, rel string, v any) error {
	b, err := l.fetcher.Fetch(ctx, rel)
	if err != nil {
		l.logger.Debug("dataset fetch failed", zap.String("path", rel), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		l.logger.Warn("dataset decode failed", zap.String("path", rel), zap.Error(err))
		return unavailable(rel, err)
	}
	return nil
}

// CandidatesIndex loads candidates_index.json for a cycle.
func (l *Loader) CandidatesIndex(ctx context.Context, cycle string) (*models.CandidatesIndexPayload, error) {
	rel := cyclePath(cycle, "candidates_index")
	var p models.CandidatesIndexPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" || p.Records == nil {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// Constituencies loads constituencies.json for a cycle.
func (l *Loader) Constituencies(ctx context.Context, cycle string) (*models.ConstituenciesPayload, error) {
	rel := cyclePath(cycle, "constituencies")
	var p models.ConstituenciesPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" || p.Records == nil {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// Localities loads localities.json for a cycle.
func (l *Loader) Localities(ctx context.Context, cycle string) (*models.LocalitiesPayload, error) {
	rel := cyclePath(cycle, "localities")
	var p models.LocalitiesPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" || p.Records == nil {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// Results loads results.json for a cycle. Results are published later than
// the rest of a cycle's data, so callers treat ErrUnavailable as "not yet
// available" rather than a fault.
func (l *Loader) Results(ctx context.Context, cycle string) (*models.ResultsPayload, error) {
	rel := cyclePath(cycle, "results")
	var p models.ResultsPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// Documents loads documents.json for a cycle.
func (l *Loader) Documents(ctx context.Context, cycle string) (*models.DocumentsPayload, error) {
	rel := cyclePath(cycle, "documents")
	var p models.DocumentsPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// Timeline loads timeline.json for a cycle.
func (l *Loader) Timeline(ctx context.Context, cycle string) (*models.TimelinePayload, error) {
	rel := cyclePath(cycle, "timeline")
	var p models.TimelinePayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" || p.Cycle.ID == "" {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// Changelog loads changelog.json for a cycle.
func (l *Loader) Changelog(ctx context.Context, cycle string) (*models.ChangelogPayload, error) {
	rel := cyclePath(cycle, "changelog")
	var p models.ChangelogPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.CycleID == "" {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

// CandidateDetail loads one candidates_detail/{entry_id}.json file.
func (l *Loader) CandidateDetail(ctx context.Context, cycle, entryID string) (*models.CandidateDetailPayload, error) {
	rel := path.Join("data", "elections", cycle, "candidates_detail", entryID+".json")
	var p models.CandidateDetailPayload
	if err := l.fetchJSON(ctx, rel, &p); err != nil {
		return nil, err
	}
	if p.EntryID == "" {
		return nil, unavailable(rel, fmt.Errorf("malformed payload"))
	}
	return &p, nil
}

package directory

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one callback after a quiet
// period. There is exactly one outstanding timer: each Trigger cancels and
// replaces the previous one, so callbacks never accumulate. The filter
// pipeline itself is synchronous; this exists for callers that want to
// absorb keystroke-rate re-queries or repeated invalidations.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer tạo mới Debouncer với khoảng lặng cho trước.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

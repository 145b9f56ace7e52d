package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/models"
)

// DefaultProgressInterval is the minimum delay between two progress
// callbacks.
const DefaultProgressInterval = 100 * time.Millisecond

// ProgressReporter throttles progress callbacks. At most one snapshot is
// pending; a newer one replaces it.
type ProgressReporter struct {
	interval time.Duration
	sink     func(models.SyncProgress)

	mu        sync.Mutex
	pending   *models.SyncProgress
	lastFlush time.Time
	timer     *time.Timer

	// emitMu keeps sink calls in the order their snapshots were taken.
	emitMu sync.Mutex
}

// NewProgressReporter returns a reporter calling sink at most once per
// interval. A nil sink turns every call into a no-op.
func NewProgressReporter(interval time.Duration, sink func(models.SyncProgress)) *ProgressReporter {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &ProgressReporter{interval: interval, sink: sink}
}

// Schedule delivers p now if the interval has passed since the last
// delivery, otherwise when it passes.
func (r *ProgressReporter) Schedule(p models.SyncProgress) {
	if r.sink == nil {
		return
	}

	r.mu.Lock()
	now := time.Now()
	elapsed := now.Sub(r.lastFlush)
	if r.lastFlush.IsZero() || elapsed >= r.interval {
		r.stopTimerLocked()
		r.pending = nil
		r.lastFlush = now
		r.emitLocked(p)
		return
	}

	r.pending = &p
	if r.timer == nil {
		r.timer = time.AfterFunc(r.interval-elapsed, r.fire)
	}
	r.mu.Unlock()
}

// FlushPending delivers the pending snapshot, if any, immediately.
func (r *ProgressReporter) FlushPending() {
	if r.sink == nil {
		return
	}

	r.mu.Lock()
	r.stopTimerLocked()
	if r.pending == nil {
		r.mu.Unlock()
		// wait for a timer delivery that already took the snapshot
		r.emitMu.Lock()
		r.emitMu.Unlock()
		return
	}
	p := *r.pending
	r.pending = nil
	r.lastFlush = time.Now()
	r.emitLocked(p)
}

func (r *ProgressReporter) fire() {
	r.mu.Lock()
	r.timer = nil
	if r.pending == nil {
		r.mu.Unlock()
		return
	}
	p := *r.pending
	r.pending = nil
	r.lastFlush = time.Now()
	r.emitLocked(p)
}

// emitLocked releases r.mu and calls the sink. Callers hold r.mu.
func (r *ProgressReporter) emitLocked(p models.SyncProgress) {
	r.emitMu.Lock()
	r.mu.Unlock()
	defer r.emitMu.Unlock()
	r.sink(p)
}

func (r *ProgressReporter) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// progressTracker owns the progress of one sync run and forwards every
// change to the reporter.
type progressTracker struct {
	mu       sync.Mutex
	state    models.SyncProgress
	reporter *ProgressReporter
}

func newProgressTracker(reporter *ProgressReporter, twoWay bool) *progressTracker {
	return &progressTracker{reporter: reporter, state: models.SyncProgress{TwoWay: twoWay}}
}

func (t *progressTracker) update(fn func(p *models.SyncProgress)) {
	t.mu.Lock()
	fn(&t.state)
	snapshot := t.state
	t.mu.Unlock()

	t.reporter.Schedule(snapshot)
}

func (t *progressTracker) status(msg string) {
	t.update(func(p *models.SyncProgress) { p.Status = msg })
}

func (t *progressTracker) kind(kind models.EntityKind, fn func(k *models.KindProgress)) {
	t.update(func(p *models.SyncProgress) { fn(p.Kind(kind)) })
}

func (t *progressTracker) snapshot() models.SyncProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

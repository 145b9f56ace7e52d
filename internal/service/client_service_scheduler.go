package service

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// Trigger is the reason a sync is requested.
type Trigger int

const (
	TriggerUserInitiated Trigger = iota + 1
	TriggerConflictDetected
	TriggerEmergency
	TriggerDataChanged
	TriggerPeriodic
	TriggerNetworkRestored
	TriggerRetry
)

func (t Trigger) String() string {
	switch t {
	case TriggerUserInitiated:
		return "user-initiated"
	case TriggerConflictDetected:
		return "conflict-detected"
	case TriggerEmergency:
		return "emergency"
	case TriggerDataChanged:
		return "data-changed"
	case TriggerPeriodic:
		return "periodic"
	case TriggerNetworkRestored:
		return "network-restored"
	case TriggerRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// HighPriority reports whether t bypasses batching.
func (t Trigger) HighPriority() bool {
	return t == TriggerUserInitiated || t == TriggerConflictDetected || t == TriggerEmergency
}

// Syncer runs one sync. SyncCoordinator implements it.
type Syncer interface {
	Sync(ctx context.Context, opts SyncOptions, onProgress func(models.SyncProgress)) (SyncResult, error)
	IsSyncInProgress() bool
}

// SchedulerConfig holds the timings of AutoSyncScheduler.
type SchedulerConfig struct {
	Interval           time.Duration
	BatchWindow        time.Duration
	Debounce           time.Duration
	RetryBase          time.Duration
	RetryMax           time.Duration
	EmergencyThreshold int
	EmergencyDelay     time.Duration

	Options SyncOptions
}

// NewSchedulerConfig maps the client configuration.
func NewSchedulerConfig(w config.ClientWorkers, s config.ClientSync) SchedulerConfig {
	return SchedulerConfig{
		Interval:           w.SyncInterval,
		BatchWindow:        w.BatchWindow,
		Debounce:           w.Debounce,
		RetryBase:          w.RetryBase,
		RetryMax:           w.RetryMax,
		EmergencyThreshold: w.EmergencyThreshold,
		EmergencyDelay:     w.EmergencyDelay,
		Options: SyncOptions{
			IncludeBinaryData: s.IncludeBinary,
			TwoWay:            s.TwoWay,
			PruneMissing:      s.PruneMissing,
			Budget:            w.SyncBudget,
		},
	}
}

// RetryDelay is the wait after the given number of consecutive failures:
// min(RetryBase*2^(failures-1), RetryMax), or EmergencyDelay from
// EmergencyThreshold failures on.
func (c SchedulerConfig) RetryDelay(failures int) time.Duration {
	if failures < 1 {
		failures = 1
	}
	if c.EmergencyThreshold > 0 && failures >= c.EmergencyThreshold {
		return c.EmergencyDelay
	}
	delay := c.RetryBase
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= c.RetryMax {
			return c.RetryMax
		}
	}
	return min(delay, c.RetryMax)
}

// SchedulerStats is a snapshot of the scheduler state.
type SchedulerStats struct {
	Online              bool      `json:"online"`
	Pending             bool      `json:"pending"`
	Running             bool      `json:"running"`
	Queued              int       `json:"queued"`
	Runs                int       `json:"runs"`
	Failures            int       `json:"failures"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastTrigger         string    `json:"last_trigger,omitempty"`
	LastRunAt           time.Time `json:"last_run_at,omitzero"`
	LastError           string    `json:"last_error,omitempty"`
	NextRetryAt         time.Time `json:"next_retry_at,omitzero"`
}

// AutoSyncScheduler turns triggers into sync runs. High-priority triggers
// run at once; low-priority ones are batched and coalesced into one run.
type AutoSyncScheduler struct {
	syncer Syncer
	cfg    SchedulerConfig

	events chan Trigger
	online atomic.Bool
	wake   chan struct{}

	onProgress func(models.SyncProgress)
	onResult   func(SyncResult, error)

	statsMu sync.Mutex
	stats   SchedulerStats

	logger *logger.Logger
}

// SchedulerOption configures an AutoSyncScheduler.
type SchedulerOption func(*AutoSyncScheduler)

// WithProgress forwards the progress of every run to fn.
func WithProgress(fn func(models.SyncProgress)) SchedulerOption {
	return func(s *AutoSyncScheduler) { s.onProgress = fn }
}

// WithResult calls fn after every run, once Stats reflects it.
func WithResult(fn func(SyncResult, error)) SchedulerOption {
	return func(s *AutoSyncScheduler) { s.onResult = fn }
}

// NewAutoSyncScheduler returns a scheduler that considers itself online.
func NewAutoSyncScheduler(syncer Syncer, cfg SchedulerConfig, log *logger.Logger, opts ...SchedulerOption) *AutoSyncScheduler {
	s := &AutoSyncScheduler{
		syncer: syncer,
		cfg:    cfg,
		events: make(chan Trigger, 64),
		wake:   make(chan struct{}, 1),
		logger: log,
	}
	s.online.Store(true)
	s.stats.Online = true
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trigger requests a sync. It never blocks; when the queue is full the
// trigger is dropped since a sync is already due.
func (s *AutoSyncScheduler) Trigger(t Trigger) {
	select {
	case s.events <- t:
	default:
		s.logger.Warn().Str("trigger", t.String()).Msg("trigger queue full, trigger dropped")
	}
}

// SetOnline records connectivity. Going online with pending work starts a
// sync at once, without waiting for the batch window.
func (s *AutoSyncScheduler) SetOnline(online bool) {
	if s.online.Swap(online) == online {
		return
	}
	s.updateStats(func(st *SchedulerStats) { st.Online = online })
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stats returns a snapshot of the scheduler state.
func (s *AutoSyncScheduler) Stats() SchedulerStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	st := s.stats
	st.Running = s.syncer.IsSyncInProgress()
	return st
}

func (s *AutoSyncScheduler) updateStats(fn func(st *SchedulerStats)) {
	s.statsMu.Lock()
	fn(&s.stats)
	s.statsMu.Unlock()
}

// Run processes triggers until ctx is done.
func (s *AutoSyncScheduler) Run(ctx context.Context) error {
	log := s.logger.WithStr("worker", "scheduler")
	ctx = log.WithContext(ctx)
	log.Info().Dur("interval", s.cfg.Interval).Msg("auto-sync scheduler started")

	loop := &schedulerLoop{s: s}
	defer loop.stopTimers()

	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("auto-sync scheduler stopped")
			return nil
		case t := <-s.events:
			loop.enqueue(ctx, t)
		case <-tick:
			loop.enqueue(ctx, TriggerPeriodic)
		case <-s.wake:
			// deferred work runs as soon as the backend is back
			if s.online.Load() && loop.pending {
				loop.push(TriggerNetworkRestored)
				loop.runNow(ctx)
			}
		case <-loop.batchC:
			loop.stopBatch()
			loop.flush(ctx)
		case <-loop.retryC:
			loop.retryC, loop.retryTimer = nil, nil
			loop.enqueue(ctx, TriggerRetry)
		}
	}
}

// schedulerLoop is the state owned by the Run goroutine.
type schedulerLoop struct {
	s *AutoSyncScheduler

	queue triggerQueue
	seq   int

	batchTimer    *time.Timer
	batchC        <-chan time.Time
	batchDeadline time.Time
	debounceUntil time.Time

	retryTimer *time.Timer
	retryC     <-chan time.Time

	pending  bool
	failures int
}

func (l *schedulerLoop) push(t Trigger) {
	l.seq++
	heap.Push(&l.queue, queuedTrigger{trigger: t, seq: l.seq})
	l.s.updateStats(func(st *SchedulerStats) { st.Queued = l.queue.Len() })
}

// runNow cancels the pending batch and syncs everything queued.
func (l *schedulerLoop) runNow(ctx context.Context) {
	l.stopBatch()
	l.flush(ctx)
}

func (l *schedulerLoop) enqueue(ctx context.Context, t Trigger) {
	l.push(t)
	if t.HighPriority() {
		l.runNow(ctx)
		return
	}

	now := time.Now()
	if t == TriggerDataChanged && l.s.cfg.Debounce > 0 {
		l.debounceUntil = now.Add(l.s.cfg.Debounce)
	}

	deadline := l.batchDeadline
	if l.batchC == nil {
		deadline = now.Add(l.s.cfg.BatchWindow)
	}
	if l.debounceUntil.After(deadline) {
		deadline = l.debounceUntil
	}
	if l.batchC != nil && deadline.Equal(l.batchDeadline) {
		return
	}

	l.stopBatch()
	l.batchDeadline = deadline
	l.batchTimer = time.NewTimer(time.Until(deadline))
	l.batchC = l.batchTimer.C
}

// flush drains the queue into one sync run.
func (l *schedulerLoop) flush(ctx context.Context) {
	if l.queue.Len() == 0 {
		return
	}

	reason := l.queue[0].trigger
	coalesced := make([]string, 0, l.queue.Len())
	for l.queue.Len() > 0 {
		coalesced = append(coalesced, heap.Pop(&l.queue).(queuedTrigger).trigger.String())
	}
	l.s.updateStats(func(st *SchedulerStats) {
		st.Queued = 0
		st.LastTrigger = reason.String()
	})

	log := logger.FromContext(ctx)
	if !l.s.online.Load() {
		l.pending = true
		l.s.updateStats(func(st *SchedulerStats) { st.Pending = true })
		log.Info().Str("trigger", reason.String()).Msg("offline, sync deferred")
		return
	}

	log.Info().
		Str("trigger", reason.String()).
		Strs("coalesced", coalesced).
		Msg("starting scheduled sync")

	result, err := l.s.syncer.Sync(ctx, l.s.cfg.Options, l.s.onProgress)
	if l.s.onResult != nil {
		defer l.s.onResult(result, err)
	}

	switch {
	case err == nil:
		l.pending = false
		l.failures = 0
		l.stopRetry()
		l.s.updateStats(func(st *SchedulerStats) {
			st.Runs++
			st.Pending = false
			st.ConsecutiveFailures = 0
			st.LastRunAt = time.Now()
			st.LastError = ""
			st.NextRetryAt = time.Time{}
		})
	case errors.Is(err, ErrLockConflict):
		l.pending = true
		l.s.updateStats(func(st *SchedulerStats) { st.Pending = true })
		log.Debug().Msg("sync already running, work left pending")
	case ctx.Err() != nil:
		return
	default:
		l.failures++
		l.s.updateStats(func(st *SchedulerStats) {
			st.Runs++
			st.Failures++
			st.ConsecutiveFailures = l.failures
			st.LastRunAt = time.Now()
			st.LastError = err.Error()
		})
		if errors.Is(err, ErrAuth) {
			log.Error().Err(err).Msg("sync rejected, login required")
			return
		}
		l.scheduleRetry(ctx, err)
	}
}

func (l *schedulerLoop) scheduleRetry(ctx context.Context, err error) {
	delay := l.s.cfg.RetryDelay(l.failures)
	l.stopRetry()
	l.retryTimer = time.NewTimer(delay)
	l.retryC = l.retryTimer.C

	next := time.Now().Add(delay)
	l.s.updateStats(func(st *SchedulerStats) { st.NextRetryAt = next })
	logger.FromContext(ctx).Warn().
		Err(err).
		Int("failures", l.failures).
		Dur("retry_in", delay).
		Msg("sync failed, retry scheduled")
}

func (l *schedulerLoop) stopBatch() {
	if l.batchTimer != nil {
		l.batchTimer.Stop()
	}
	l.batchTimer, l.batchC = nil, nil
	l.batchDeadline = time.Time{}
}

func (l *schedulerLoop) stopRetry() {
	if l.retryTimer != nil {
		l.retryTimer.Stop()
	}
	l.retryTimer, l.retryC = nil, nil
}

func (l *schedulerLoop) stopTimers() {
	l.stopBatch()
	l.stopRetry()
}

type queuedTrigger struct {
	trigger Trigger
	seq     int
}

// triggerQueue orders high-priority triggers first, then by arrival.
type triggerQueue []queuedTrigger

func (q triggerQueue) Len() int { return len(q) }

func (q triggerQueue) Less(i, j int) bool {
	hi, hj := q[i].trigger.HighPriority(), q[j].trigger.HighPriority()
	if hi != hj {
		return hi
	}
	return q[i].seq < q[j].seq
}

func (q triggerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *triggerQueue) Push(x any) { *q = append(*q, x.(queuedTrigger)) }

func (q *triggerQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

package syncer

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Status is the human-visible save state of an open canvas session.
type Status int

const (
	StatusSaved Status = iota
	StatusSaving
	StatusUnsaved
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "Saved"
	case StatusSaving:
		return "Saving"
	case StatusUnsaved:
		return "Unsaved"
	}
	return "Unknown"
}

// Saver persists the current snapshot of a canvas. The engine only ever
// talks to the server through this boundary.
type Saver interface {
	SaveSnapshot(ctx context.Context, canvasID string, snapshot json.RawMessage) error
}

const (
	defaultDebounce    = 3 * time.Second
	defaultSaveTimeout = 10 * time.Second
)

// Engine reconciles an in-memory, continuously edited canvas with its
// server-held record. Local mutations are coalesced behind a debounce
// timer so a burst of edits produces exactly one write after the burst
// settles; SaveNow bypasses the timer. At most one write is in flight at a
// time; a save requested while a write is in flight raises a queued intent
// that triggers exactly one follow-up write when the in-flight one
// completes. Every write reads the current live snapshot, so edits that
// land during a write are captured by the next one.
type Engine struct {
	saver       Saver
	canvasID    string
	debounce    time.Duration
	saveTimeout time.Duration
	statusFn    func(Status)
	errorFn     func(error)

	mu       sync.Mutex
	status   Status
	snapshot json.RawMessage
	dirty    bool
	pending  bool
	inFlight bool
	closed   bool
	timer    *time.Timer
}

type Option func(*Engine)

// WithDebounce overrides the 3s quiet period after the last mutation.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithSaveTimeout bounds each write; on expiry the engine reverts to
// Unsaved and surfaces the error instead of hanging in Saving.
func WithSaveTimeout(d time.Duration) Option {
	return func(e *Engine) { e.saveTimeout = d }
}

// WithStatusFunc registers a callback for save-status transitions. The
// callback runs with the engine's internal state locked and must not call
// back into the engine.
func WithStatusFunc(fn func(Status)) Option {
	return func(e *Engine) { e.statusFn = fn }
}

// WithErrorFunc registers a callback for failed writes.
func WithErrorFunc(fn func(error)) Option {
	return func(e *Engine) { e.errorFn = fn }
}

// NewEngine starts a session for a loaded canvas in the Saved state.
func NewEngine(saver Saver, canvasID string, snapshot json.RawMessage, opts ...Option) *Engine {
	e := &Engine{
		saver:       saver,
		canvasID:    canvasID,
		snapshot:    snapshot,
		status:      StatusSaved,
		debounce:    defaultDebounce,
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Status returns the current save status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Update records a local mutation. The debounce timer is (re)started in
// every state, so edits arriving during a write still schedule a later one.
func (e *Engine) Update(snapshot json.RawMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.snapshot = snapshot
	e.dirty = true
	if e.status == StatusSaved {
		e.setStatusLocked(StatusUnsaved)
	}
	e.restartTimerLocked()
}

// SaveNow is the explicit manual save. It cancels any pending debounce
// timer and writes immediately; even in the Saved state the write is
// honored, since re-writing the snapshot is idempotent. If a write is
// already in flight, the intent is queued instead of dropped.
func (e *Engine) SaveNow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopTimerLocked()
	if e.inFlight {
		e.pending = true
		return
	}
	e.startSaveLocked()
}

// Close tears the session down. A pending debounce timer is cancelled; an
// in-flight write completes fire-and-forget, but no transitions are
// applied afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.stopTimerLocked()
}

func (e *Engine) setStatusLocked(s Status) {
	if e.status == s {
		return
	}
	e.status = s
	if e.statusFn != nil {
		e.statusFn(s)
	}
}

func (e *Engine) restartTimerLocked() {
	e.stopTimerLocked()
	e.timer = time.AfterFunc(e.debounce, e.timerFired)
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) timerFired() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.inFlight {
		e.pending = true
		return
	}
	e.startSaveLocked()
}

// startSaveLocked begins the single in-flight write. The dirty flag is
// cleared up front so edits arriving during the write are detectable when
// it completes.
func (e *Engine) startSaveLocked() {
	e.inFlight = true
	e.dirty = false
	e.setStatusLocked(StatusSaving)
	go e.save(e.snapshot)
}

func (e *Engine) save(snapshot json.RawMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), e.saveTimeout)
	err := e.saver.SaveSnapshot(ctx, e.canvasID, snapshot)
	cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
	if e.closed {
		return
	}

	if err != nil {
		// The pending change is not lost: status reverts to Unsaved and
		// the next mutation or manual save retries.
		e.dirty = true
		e.setStatusLocked(StatusUnsaved)
		if e.errorFn != nil {
			e.errorFn(err)
		}
		if e.pending {
			e.pending = false
			e.startSaveLocked()
		}
		return
	}

	if e.pending {
		e.pending = false
		e.startSaveLocked()
		return
	}
	if e.dirty {
		// Edits raced the write; the restarted debounce timer will flush
		// them, so reporting Saved here would be a lie.
		e.setStatusLocked(StatusUnsaved)
		return
	}
	e.setStatusLocked(StatusSaved)
}

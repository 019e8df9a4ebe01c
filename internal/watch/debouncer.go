package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer turns bursts of change notifications into single runs.
//
// A run starts once no Trigger has arrived for the quiet period and receives
// the path of the most recent Trigger. Runs never overlap: when a burst ends
// while a run is in progress, the next run starts as soon as it returns.
type Debouncer struct {
	quiet time.Duration
	run   func(path string)

	mu      sync.Mutex // guards pending, path, stopped
	pending *time.Timer
	path    string
	stopped bool

	running sync.Mutex // held for the duration of a run
}

// NewDebouncer creates a Debouncer that calls run after quiet has passed
// without a Trigger.
func NewDebouncer(quiet time.Duration, run func(path string)) *Debouncer {
	return &Debouncer{quiet: quiet, run: run}
}

// Trigger records a change to path and restarts the quiet period.
// Triggers after Stop are ignored.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.path = path
	if d.pending == nil {
		d.pending = time.AfterFunc(d.quiet, func() { d.execute("") })
		return
	}
	d.pending.Reset(d.quiet)
}

// Now runs immediately with path, waiting for a run in progress to finish
// first. It does nothing after Stop.
func (d *Debouncer) Now(path string) {
	d.execute(path)
}

// execute performs one run. An empty path means the last triggered path.
func (d *Debouncer) execute(path string) {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()
	stopped := d.stopped
	if path == "" {
		path = d.path
	}
	d.mu.Unlock()
	if stopped {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("watch: run panicked", slog.String("path", path), slog.Any("error", r))
		}
	}()
	d.run(path)
}

// Stop cancels a pending run and waits for a run in progress to return.
// It must not be called from the run function.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.pending != nil {
		d.pending.Stop()
	}
	d.mu.Unlock()

	d.running.Lock()
	defer d.running.Unlock()
}

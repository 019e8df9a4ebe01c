package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoFile is returned by Run when Options.File is empty.
var ErrNoFile = errors.New("watch: no file to watch")

// RunFunc performs one run. trigger is "(initial)" for the first run and the
// changed path afterwards.
type RunFunc func(ctx context.Context, trigger string) error

// Options configures Run.
type Options struct {
	// File is the path whose changes trigger a run.
	File string

	// Debounce is the quiet period before a run starts.
	Debounce time.Duration

	// Logger receives watcher errors. Defaults to slog.Default().
	Logger *slog.Logger

	// Out receives one status line per run. Defaults to io.Discard.
	Out io.Writer
}

// Run performs an initial run, then runs again each time opts.File is
// written, created or renamed into place. Runs never overlap, and a run in
// progress finishes before Run returns. Run blocks until ctx is cancelled and
// returns nil in that case.
func Run(ctx context.Context, opts Options, fn RunFunc) error {
	if opts.File == "" {
		return ErrNoFile
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	target, err := filepath.Abs(opts.File)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", opts.File, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %q: %w", filepath.Dir(target), err)
	}

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.File, opts.Debounce)

	debouncer := NewDebouncer(opts.Debounce, func(trigger string) {
		if ctx.Err() != nil {
			return
		}
		doRun(ctx, opts.Out, fn, trigger)
	})
	defer debouncer.Stop()

	debouncer.Now("(initial)")

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(opts.Out, "stopped watching")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isRelevant(event, target) {
				debouncer.Trigger(event.Name)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Error("watcher error", slog.String("error", werr.Error()))
		}
	}
}

func doRun(ctx context.Context, out io.Writer, fn RunFunc, trigger string) {
	start := time.Now()
	now := start.Format("15:04:05")

	if err := fn(ctx, trigger); err != nil {
		fmt.Fprintf(out, "[%s] %s -> ERROR: %v\n", now, trigger, err)
		return
	}
	fmt.Fprintf(out, "[%s] %s -> OK (%s)\n", now, trigger, time.Since(start).Round(time.Millisecond))
}

// isRelevant reports whether event changes the contents at target.
// Removal is ignored: there is nothing to read until the file reappears.
func isRelevant(event fsnotify.Event, target string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}

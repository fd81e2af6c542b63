package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/lvtools/internal/logging"
)

// DefaultDebounce is how long RunWatch waits for the file system to settle.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures RunWatch.
type WatchOptions struct {
	Logger   *slog.Logger
	Debounce time.Duration
	// OnChange is called with the first changed path of each batch, before the rerun.
	OnChange func(path string, events int)
	// OnResult is called after every run, including the initial one.
	OnResult func(err error)
}

// RunWatch calls run once, then again after every batch of changes, until
// ctx is done or changes is closed. Runs never overlap. Failed runs are
// logged and the loop keeps waiting for the next change.
func RunWatch(ctx context.Context, changes <-chan string, run func(context.Context) error, opts WatchOptions) error {
	if changes == nil {
		return errors.New("watch: no change feed")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	runOnce := func() {
		err := run(ctx)
		if err != nil && !IsInterrupted(err) {
			opts.Logger.Error("Run failed", "err", err)
		}
		if opts.OnResult != nil && ctx.Err() == nil {
			opts.OnResult(err)
		}
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			opts.Logger.Info("Stopping watcher")
			return nil
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			events, open := settle(ctx, changes, opts.Debounce)
			if ctx.Err() != nil {
				return nil
			}
			opts.Logger.Info("Change detected, triggering sync", "path", path, "events", events)
			if opts.OnChange != nil {
				opts.OnChange(path, events)
			}
			runOnce()
			if !open {
				return nil
			}
		}
	}
}

// settle swallows follow-up events until changes stays quiet for d.
// It returns how many events the batch held and whether changes is still open.
func settle(ctx context.Context, changes <-chan string, d time.Duration) (int, bool) {
	events := 1
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return events, true
		case <-timer.C:
			return events, true
		case _, ok := <-changes:
			if !ok {
				return events, false
			}
			events++
			timer.Reset(d)
		}
	}
}

package mirror

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lvtools/internal/fsutil"
	"github.com/aretw0/lvtools/internal/logging"
)

// ErrSourceNotDir is returned when the source root exists but is not a directory.
var ErrSourceNotDir = errors.New("source is not a directory")

// Syncer runs mirror passes for one Config.
type Syncer struct {
	cfg    Config
	logger *slog.Logger
	hooks  Hooks
	dryRun bool
	now    func() time.Time
}

// Option defines a functional option for configuring the Syncer.
type Option func(*Syncer)

// WithLogger sets a custom structured logger for the syncer.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// WithHooks registers observers for performed changes.
func WithHooks(hooks Hooks) Option {
	return func(s *Syncer) {
		s.hooks = hooks
	}
}

// WithDryRun makes the syncer report changes without performing them.
func WithDryRun(dryRun bool) Option {
	return func(s *Syncer) {
		s.dryRun = dryRun
	}
}

// New creates a Syncer for cfg. An empty extension list means DefaultExtensions.
func New(cfg Config, opts ...Option) *Syncer {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	s := &Syncer{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Config returns the configuration the syncer runs with.
func (s *Syncer) Config() Config {
	return s.cfg
}

// Sync is a convenience wrapper for New(cfg, opts...).Sync(ctx).
func Sync(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	return New(cfg, opts...).Sync(ctx)
}

// Sync runs the prune pass and then the copy pass. The returned report is
// never nil and describes everything done before a failure.
func (s *Syncer) Sync(ctx context.Context) (*Report, error) {
	start := s.now()
	report := &Report{DryRun: s.dryRun}
	defer func() { report.Duration = s.now().Sub(start) }()

	info, err := os.Stat(s.cfg.Source)
	if err != nil {
		return report, fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrSourceNotDir, s.cfg.Source)
	}

	s.logger.Debug("Mirror started", "src", s.cfg.Source, "dst", s.cfg.Destination, "dry_run", s.dryRun)

	if err := s.Prune(ctx, report); err != nil {
		return report, fmt.Errorf("prune pass: %w", err)
	}
	if err := s.Copy(ctx, report); err != nil {
		return report, fmt.Errorf("copy pass: %w", err)
	}

	s.logger.Debug("Mirror finished", "copied", len(report.Copied), "removed", len(report.Removed), "dirs", len(report.CreatedDirs))
	return report, nil
}

// Prune deletes destination files whose relative path has no counterpart in
// the source. A missing destination root counts as an empty tree.
func (s *Syncer) Prune(ctx context.Context, report *Report) error {
	dst := s.cfg.Destination
	if ok, err := fsutil.Exists(dst); err != nil {
		return err
	} else if !ok {
		s.logger.Debug("Destination missing, nothing to prune", "dst", dst)
		return nil
	}

	return filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !s.cfg.Tracks(d.Name()) || linksToDir(path, d) {
			return nil
		}

		rel, err := filepath.Rel(dst, path)
		if err != nil {
			return err
		}
		exists, err := fsutil.Exists(filepath.Join(s.cfg.Source, rel))
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		if !s.dryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
			if s.hooks.OnRemove != nil {
				s.hooks.OnRemove(ctx, rel)
			}
		}
		s.logger.Debug("Removed", "path", rel, "dry_run", s.dryRun)
		report.Removed = append(report.Removed, rel)
		return nil
	})
}

// Copy recreates every source directory under the destination and copies
// every tracked file over, overwriting unconditionally.
func (s *Syncer) Copy(ctx context.Context, report *Report) error {
	src := s.cfg.Source

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(s.cfg.Destination, rel)

		if d.IsDir() {
			return s.ensureDir(ctx, report, rel, target)
		}
		if !s.cfg.Tracks(d.Name()) {
			return nil
		}
		if linksToDir(path, d) {
			s.logger.Debug("Skipped directory link", "path", rel)
			return nil
		}

		var size int64
		if s.dryRun {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			size = info.Size()
		} else {
			if size, err = fsutil.CopyFile(path, target); err != nil {
				return err
			}
			if s.hooks.OnCopy != nil {
				s.hooks.OnCopy(ctx, rel, size)
			}
		}
		s.logger.Debug("Copied", "path", rel, "bytes", size, "dry_run", s.dryRun)
		report.Copied = append(report.Copied, rel)
		report.Bytes += size
		return nil
	})
}

func (s *Syncer) ensureDir(ctx context.Context, report *Report, rel, target string) error {
	exists, err := fsutil.Exists(target)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if !s.dryRun {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		if s.hooks.OnMkdir != nil {
			s.hooks.OnMkdir(ctx, rel)
		}
	}
	s.logger.Debug("Created directory", "path", rel, "dry_run", s.dryRun)
	report.CreatedDirs = append(report.CreatedDirs, rel)
	return nil
}

// linksToDir reports whether d is a symlink resolving to a directory.
// WalkDir does not follow links, so it lists those as non-directories.
func linksToDir(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package mirror

import (
	"context"
	"strings"
	"time"
)

// DefaultExtensions are the file suffixes tracked when none are configured.
var DefaultExtensions = []string{".c", ".cpp", ".h"}

// Config describes one mirroring: two roots and the tracked extensions.
// The tags serve the YAML config file and flag decoding in internal/config.
type Config struct {
	Source      string   `yaml:"source" json:"source" mapstructure:"source" validate:"required"`
	Destination string   `yaml:"destination" json:"destination" mapstructure:"destination" validate:"required,nefield=Source"`
	Extensions  []string `yaml:"extensions" json:"extensions" mapstructure:"extensions" validate:"required,min=1,dive,startswith=.,min=2"`
}

// Tracks reports whether a file name ends with one of the tracked extensions.
// Matching is case-sensitive.
func (c Config) Tracks(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Report lists what a run did, or would do in dry-run mode.
// Paths are relative to the destination root, using the OS separator.
type Report struct {
	Removed     []string
	Copied      []string
	CreatedDirs []string
	Bytes       int64
	DryRun      bool
	Duration    time.Duration
}

// Empty reports whether the run changed nothing besides rewriting files.
func (r *Report) Empty() bool {
	return len(r.Removed) == 0 && len(r.Copied) == 0 && len(r.CreatedDirs) == 0
}

// Hooks observe the filesystem changes a run performs.
// They are not called in dry-run mode. Any of them may be nil.
type Hooks struct {
	OnRemove func(ctx context.Context, rel string)
	OnCopy   func(ctx context.Context, rel string, size int64)
	OnMkdir  func(ctx context.Context, rel string)
}

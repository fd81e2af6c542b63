package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lvtools/pkg/mirror"
	"github.com/muesli/termenv"
)

// Format selects how a mirror report is printed.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --report flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or markdown)", s)
	}
}

// Printer writes reports and system messages to a terminal or a pipe.
type Printer struct {
	w   io.Writer
	out *termenv.Output
	tty bool
}

// NewPrinter creates a Printer. Without a tty, output carries no color codes.
func NewPrinter(w io.Writer, tty bool) *Printer {
	var opts []termenv.OutputOption
	if !tty {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Printer{w: w, out: termenv.NewOutput(w, opts...), tty: tty}
}

// System prints a standardized system message.
func (p *Printer) System(format string, args ...any) {
	fmt.Fprintf(p.w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// Print writes r in the requested format.
func (p *Printer) Print(r *mirror.Report, format Format) error {
	if format == FormatMarkdown {
		rendered, err := NewRenderer(p.tty)(ReportMarkdown(r))
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		_, err = io.WriteString(p.w, rendered)
		return err
	}
	p.printText(r)
	return nil
}

func (p *Printer) printText(r *mirror.Report) {
	removed := p.out.Color("#fb7185")
	copied := p.out.Color("#4ade80")
	mkdir := p.out.Color("#818cf8")

	for _, rel := range r.Removed {
		fmt.Fprintf(p.w, "%s %s\n", p.out.String("removed").Foreground(removed), filepath.ToSlash(rel))
	}
	for _, rel := range r.CreatedDirs {
		fmt.Fprintf(p.w, "%s %s\n", p.out.String("mkdir  ").Foreground(mkdir), filepath.ToSlash(rel))
	}
	for _, rel := range r.Copied {
		fmt.Fprintf(p.w, "%s %s\n", p.out.String("copied ").Foreground(copied), filepath.ToSlash(rel))
	}

	fmt.Fprintln(p.w, p.out.String(Summary(r)).Bold())
}

// Summary is the one-line outcome of a run.
func Summary(r *mirror.Report) string {
	s := fmt.Sprintf("%d copied (%s), %d removed, %d directories created in %s",
		len(r.Copied), humanBytes(r.Bytes), len(r.Removed), len(r.CreatedDirs), r.Duration.Round(time.Millisecond))
	if r.DryRun {
		return "dry run: " + s
	}
	return s
}

// ReportMarkdown renders r as a markdown document.
func ReportMarkdown(r *mirror.Report) string {
	var b strings.Builder

	b.WriteString("# Mirror report")
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimPrefix(Summary(r), "dry run: "))

	if r.Empty() {
		b.WriteString("_Nothing to do._\n")
		return b.String()
	}

	b.WriteString("| Action | Path |\n| --- | --- |\n")
	rows := func(action string, paths []string) {
		for _, rel := range paths {
			fmt.Fprintf(&b, "| %s | `%s` |\n", action, filepath.ToSlash(rel))
		}
	}
	rows("removed", r.Removed)
	rows("mkdir", r.CreatedDirs)
	rows("copied", r.Copied)
	return b.String()
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

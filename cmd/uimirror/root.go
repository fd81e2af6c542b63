package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/lvtools"
	"github.com/aretw0/lvtools/internal/cli"
	"github.com/aretw0/lvtools/internal/config"
	"github.com/aretw0/lvtools/internal/faults"
	"github.com/aretw0/lvtools/internal/logging"
	"github.com/aretw0/lvtools/internal/metrics"
	"github.com/aretw0/lvtools/internal/presentation/tui"
	"github.com/aretw0/lvtools/pkg/mirror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// flagKeys maps config-overriding flags to their settings key.
var flagKeys = map[string]string{
	"src": "source",
	"dst": "destination",
	"ext": "extensions",
}

type options struct {
	configFile  string
	metricsFile string
	report      string
	dryRun      bool
	watch       bool
	quiet       bool
	debug       bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "uimirror [src] [dst]",
		Short: "Mirror generated UI sources into the firmware tree",
		Long: `Makes the destination's .c/.cpp/.h files match the source tree: files with no
source counterpart are removed, then every tracked source file is copied over.

Settings come from uimirror.yaml (or --config), then flags, then the
positional arguments, each overriding the previous.`,
		Args:          usageArgs(cobra.MaximumNArgs(2)),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMirror(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "Settings file (default "+config.DefaultFile+" when present)")
	f.String("src", "", "Source directory")
	f.String("dst", "", "Destination directory")
	f.StringSlice("ext", nil, "Tracked extensions, repeatable or comma separated (default .c,.cpp,.h)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without touching the destination")
	f.BoolVarP(&opts.watch, "watch", "w", false, "Keep running and mirror again whenever the source changes")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write prometheus metrics to this file after every run")
	f.StringVar(&opts.report, "report", string(tui.FormatText), "Report format: text or markdown")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print the run report")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging to stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return faults.Usage(err)
	})
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and exits with the code matching its error.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	ctx.Cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", faults.Message(err))
		return faults.Classify(err).ExitCode()
	}
	return 0
}

func runMirror(cmd *cobra.Command, args []string, opts options) error {
	if opts.watch && opts.dryRun {
		return faults.Usagef("--watch and --dry-run cannot be used together")
	}
	format, err := tui.ParseFormat(opts.report)
	if err != nil {
		return faults.Usage(err)
	}

	cfg, err := loadConfig(cmd.Flags(), args, opts.configFile)
	if err != nil {
		return err
	}

	logger := logging.ForDebug(opts.debug)
	out := cmd.OutOrStdout()
	printer := tui.NewPrinter(out, isTerminal(out))
	recorder := metrics.New()

	syncer := mirror.New(cfg,
		mirror.WithLogger(logger),
		mirror.WithHooks(recorder.Hooks()),
		mirror.WithDryRun(opts.dryRun),
	)

	once := func(ctx context.Context) error {
		report, err := syncer.Sync(ctx)
		recorder.ObserveRun(report, err)
		if opts.metricsFile != "" {
			if werr := recorder.WriteTextfile(opts.metricsFile); werr != nil {
				logger.Error("Metrics not written", "path", opts.metricsFile, "err", werr)
				if err == nil {
					err = werr
				}
			}
		}
		if err != nil {
			if errors.Is(err, mirror.ErrSourceNotDir) {
				return faults.Usage(err)
			}
			return err
		}
		if opts.quiet {
			return nil
		}
		return printer.Print(report, format)
	}

	ctx := cmd.Context()
	if !opts.watch {
		err := once(ctx)
		if cli.IsInterrupted(err) {
			logger.Info("Mirror interrupted")
			printer.System("Interrupted.")
			return nil
		}
		return err
	}

	return watch(ctx, syncer, once, printer, logger, opts.quiet)
}

func watch(ctx context.Context, syncer *mirror.Syncer, once func(context.Context) error, printer *tui.Printer, logger *slog.Logger, quiet bool) error {
	src := syncer.Config().Source
	changes, err := syncer.Watch(ctx)
	if err != nil {
		return err
	}

	if !quiet {
		printer.Banner("uimirror", lvtools.Version)
	}
	logger.Info("Starting watcher", "src", src, "dst", syncer.Config().Destination)
	printer.System("Watching '%s'.", src)

	return cli.RunWatch(ctx, changes, once, cli.WatchOptions{
		Logger: logger,
		OnChange: func(path string, _ int) {
			if rel, err := filepath.Rel(src, path); err == nil {
				path = filepath.ToSlash(rel)
			}
			printer.System("Change detected in '%s'.", path)
		},
		OnResult: func(err error) {
			if err != nil {
				printer.System("Mirror failed: %s", faults.Message(err))
			}
			printer.System("Waiting for changes...")
		},
	})
}

// loadConfig layers defaults, the settings file, explicit flags and
// positional arguments, in that order.
func loadConfig(fs *pflag.FlagSet, args []string, path string) (mirror.Config, error) {
	required := path != ""
	if !required {
		path = config.DefaultFile
	}

	fileLayer, err := config.LoadFile(path, required)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return mirror.Config{}, faults.Usage(err)
		}
		return mirror.Config{}, err
	}

	argLayer := map[string]any{}
	if len(args) > 0 {
		argLayer["source"] = args[0]
	}
	if len(args) > 1 {
		argLayer["destination"] = args[1]
	}

	cfg, err := config.Resolve(config.Defaults(), fileLayer, cli.FlagOverrides(fs, flagKeys), argLayer)
	if err != nil {
		return mirror.Config{}, faults.Usage(err)
	}
	return cfg, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return faults.Usage(check(cmd, args))
	}
}

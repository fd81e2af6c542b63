package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/lvtools/internal/faults"
	"github.com/aretw0/lvtools/internal/logging"
	"github.com/aretw0/lvtools/pkg/hexarray"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		cfg      hexarray.Config
		toStdout bool
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "filetohex <input>",
		Short: "Convert a text file into an LVGL C byte array",
		Long: `Reads a text file and writes <name>.c next to it, holding the file contents
as a const uint8_t array plus its length, ready to be compiled into firmware.`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd.OutOrStdout(), args[0], cfg, toStdout, logging.ForDebug(debug))
		},
	}

	f := cmd.Flags()
	f.BoolVar(&cfg.FilterCharacter, "filter-character", false, "Drop every non-ASCII character before encoding")
	f.BoolVar(&cfg.NullTerminate, "null-terminate", false, "Append a zero byte to the array")
	f.BoolVar(&cfg.UTF8, "utf8", false, "Encode characters as UTF-8 instead of one byte each")
	f.StringVar(&cfg.Name, "name", "", "Array identifier (default: input base name)")
	f.StringVar(&cfg.Header, "header", hexarray.DefaultHeader, "Header named in the #include line")
	f.BoolVar(&toStdout, "stdout", false, "Print the generated source instead of writing <name>.c")
	f.BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return faults.Usage(err)
	})
	cmd.CompletionOptions.DisableDefaultCmd = true
	setVersion(cmd)
	return cmd
}

// Execute runs the root command and exits with the code matching its error.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", faults.Message(err))
		return faults.Classify(err).ExitCode()
	}
	return 0
}

func runEmit(out io.Writer, input string, cfg hexarray.Config, toStdout bool, logger *slog.Logger) error {
	if toStdout {
		src, err := hexarray.Generate(input, cfg, hexarray.WithLogger(logger))
		if err != nil {
			return classifyEmit(err)
		}
		_, err = io.WriteString(out, src.Text)
		return err
	}

	output, err := hexarray.EmitFile(input, cfg, hexarray.WithLogger(logger))
	if err != nil {
		return classifyEmit(err)
	}
	logger.Info("Array written", "input", input, "output", output)
	return nil
}

// classifyEmit marks errors the user fixes by changing flags or input.
func classifyEmit(err error) error {
	if errors.Is(err, hexarray.ErrUnencodable) || errors.Is(err, hexarray.ErrOverwriteInput) {
		return faults.Usage(err)
	}
	return err
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return faults.Usage(check(cmd, args))
	}
}

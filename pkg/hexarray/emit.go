package hexarray

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/lvtools/internal/fsutil"
	"github.com/aretw0/lvtools/internal/logging"
)

// ErrOverwriteInput is returned when the output path would replace the input file.
var ErrOverwriteInput = errors.New("output file would overwrite the input")

// Source is a generated C file held in memory.
type Source struct {
	Name  string // array identifier
	Bytes []byte // encoded array contents
	Text  string // full C source
}

// Option defines a functional option for EmitFile and Generate.
type Option func(*emitter)

type emitter struct {
	logger *slog.Logger
}

// WithLogger sets a structured logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *emitter) {
		e.logger = logger
	}
}

func newEmitter(opts []Option) *emitter {
	e := &emitter{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Build encodes text and renders it as an array called name.
func Build(name, text string, cfg Config) (*Source, error) {
	if cfg.Name != "" {
		name = cfg.Name
	}
	name = Identifier(name)

	data, err := Encode(text, cfg)
	if err != nil {
		return nil, err
	}

	return &Source{
		Name:  name,
		Bytes: data,
		Text:  Render(name, cfg.Header, data),
	}, nil
}

// Generate reads input and builds its C source without writing anything.
func Generate(input string, cfg Config, opts ...Option) (*Source, error) {
	e := newEmitter(opts)

	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	e.logger.Debug("Input read", "path", input, "bytes", len(raw))

	src, err := Build(BaseName(input), DecodeText(raw), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", input, err)
	}
	e.logger.Debug("Array built", "name", src.Name, "len", len(src.Bytes))
	return src, nil
}

// EmitFile generates the C source for input and writes it to OutputPath(input).
// It returns the path written.
func EmitFile(input string, cfg Config, opts ...Option) (string, error) {
	e := newEmitter(opts)
	output := OutputPath(input)

	if same, err := samePath(input, output); err != nil {
		return "", err
	} else if same {
		return "", fmt.Errorf("%w: %s", ErrOverwriteInput, input)
	}

	src, err := Generate(input, cfg, opts...)
	if err != nil {
		return "", err
	}

	if err := fsutil.WriteFileAtomic(output, []byte(src.Text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", output, err)
	}
	e.logger.Debug("Output written", "path", output)
	return output, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

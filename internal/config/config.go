// Package config loads the directory mirror settings from a YAML file, flags
// and arguments, merged in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/aretw0/lvtools/pkg/mirror"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is loaded from the working directory when no config file is named.
const DefaultFile = "uimirror.yaml"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their config file key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Defaults returns the lowest-precedence settings layer.
func Defaults() map[string]any {
	return map[string]any{
		"extensions": slices.Clone(mirror.DefaultExtensions),
	}
}

// LoadFile reads a YAML (or JSON) settings file into a layer. When required
// is false, a missing file yields an empty layer.
func LoadFile(path string, required bool) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	layer := map[string]any{}
	if err := yaml.Unmarshal(data, &layer); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, path, err)
	}
	return layer, nil
}

// Resolve merges layers (later layers win, empty values are skipped),
// decodes them into a mirror.Config, normalizes paths and extensions and
// validates the result.
func Resolve(layers ...map[string]any) (mirror.Config, error) {
	merged := map[string]any{}
	for _, layer := range layers {
		for k, v := range layer {
			if isEmpty(v) {
				continue
			}
			merged[k] = v
		}
	}

	var cfg mirror.Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(merged); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := normalize(&cfg); err != nil {
		return cfg, err
	}
	if err := check(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

func normalize(cfg *mirror.Config) error {
	for _, p := range []*string{&cfg.Source, &cfg.Destination} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", *p, err)
		}
		*p = abs
	}

	exts := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		if !slices.Contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	cfg.Extensions = exts
	return nil
}

func check(cfg mirror.Config) error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if len(errs) == 0 && cfg.Source != cfg.Destination {
		if within(cfg.Destination, cfg.Source) {
			errs = append(errs, &ValidationError{Key: "destination", Reason: "must not be inside source", Value: cfg.Destination})
		} else if within(cfg.Source, cfg.Destination) {
			errs = append(errs, &ValidationError{Key: "source", Reason: "must not be inside destination", Value: cfg.Source})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	ve := &ValidationError{Key: fe.Field(), Value: fe.Value()}
	switch fe.Tag() {
	case "required":
		ve.Reason = "is required"
		ve.Value = nil
	case "nefield":
		ve.Reason = "must differ from " + strings.ToLower(fe.Param())
	case "startswith":
		ve.Reason = fmt.Sprintf("must start with %q", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			ve.Reason = "must list at least " + fe.Param() + " entry"
		} else {
			ve.Reason = "must be at least " + fe.Param() + " characters long"
		}
	default:
		ve.Reason = "failed " + fe.Tag() + " check"
	}
	return ve
}

// within reports whether path lies strictly below root.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

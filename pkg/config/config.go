package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Load reads and validates a configuration file.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(ctx, cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path. An empty path loads DefaultFile from the working
// directory when present and falls back to DefaultConfig otherwise.
// Returns the path actually loaded, or "" for built-in defaults.
func LoadOrDefault(ctx context.Context, path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(ctx, path)
		return cfg, path, err
	}

	if _, err := os.Stat(DefaultFile); err == nil {
		cfg, err := Load(ctx, DefaultFile)
		return cfg, DefaultFile, err
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(ctx, cfg); err != nil {
		return nil, "", fmt.Errorf("validating config: %w", err)
	}
	return cfg, "", nil
}

// Validate fills zero-valued fields with their defaults and checks every
// field rule.
func Validate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("applying defaults: %w", err)
	}

	if err := validate.StructCtx(ctx, cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	return nil
}

// fieldMessage renders a field error as "display.frame2.color: ...".
func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "hexcolor":
		return fmt.Sprintf("%s: %q is not a hex color", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s: %v must be one of [%s]", field, fe.Value(), fe.Param())
	case "gt", "gte", "lte":
		return fmt.Sprintf("%s: %v fails %s=%s", field, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

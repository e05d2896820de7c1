package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// RunConfig is the [run] section.
type RunConfig struct {
	// Root names the program frame in tracebacks.
	Root     string `toml:"root" yaml:"root"`
	MaxDepth int    `toml:"max_depth" yaml:"max_depth"`
	Jobs     int    `toml:"jobs" yaml:"jobs"`
	Ext      string `toml:"ext" yaml:"ext"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Color   string `toml:"color" yaml:"color"`   // auto | on | off
	Format  string `toml:"format" yaml:"format"` // pretty | json | msgpack
	Timings bool   `toml:"timings" yaml:"timings"`
}

// Config is a parsed project file. Keys missing from the file keep defaults.
type Config struct {
	Run    RunConfig    `toml:"run" yaml:"run"`
	Output OutputConfig `toml:"output" yaml:"output"`

	// Path is the file the config came from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

var (
	// ErrUnknownKey reports a key the schema does not define.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidValue reports a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Run: RunConfig{
			Root:     "<program>",
			MaxDepth: 256,
			Jobs:     0,
			Ext:      ".tly",
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: "pretty",
		},
	}
}

// Load parses path, choosing the decoder by extension.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = DecodeTOML(bytes.NewReader(data))
	case ".yaml", ".yml":
		cfg, err = DecodeYAML(bytes.NewReader(data))
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds and loads the nearest project file above startDir.
// Without one it returns Defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return Load(path)
}

// DecodeTOML reads a TOML project file on top of Defaults.
func DecodeTOML(r io.Reader) (Config, error) {
	cfg := Defaults()
	meta, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// DecodeYAML reads a YAML project file on top of Defaults.
func DecodeYAML(r io.Reader) (Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return Config{}, fmt.Errorf("%w: %v", ErrUnknownKey, err)
		}
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Run.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: run.max_depth must be >= 0, got %d", ErrInvalidValue, c.Run.MaxDepth))
	}
	if c.Run.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: run.jobs must be >= 0, got %d", ErrInvalidValue, c.Run.Jobs))
	}
	if !strings.HasPrefix(c.Run.Ext, ".") {
		errs = append(errs, fmt.Errorf("%w: run.ext must start with '.', got %q", ErrInvalidValue, c.Run.Ext))
	}
	if strings.TrimSpace(c.Run.Root) == "" {
		errs = append(errs, fmt.Errorf("%w: run.root must not be empty", ErrInvalidValue))
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("%w: output.color must be auto|on|off, got %q", ErrInvalidValue, c.Output.Color))
	}
	switch c.Output.Format {
	case "pretty", "json", "msgpack":
	default:
		errs = append(errs, fmt.Errorf("%w: output.format must be pretty|json|msgpack, got %q", ErrInvalidValue, c.Output.Format))
	}
	return errors.Join(errs...)
}

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/roach88/vdgen/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPackagePrefix is the package the Material icon sets live under.
const DefaultPackagePrefix = "androidx.compose.material.icons"

// DefaultFiles are looked up, in order, when no config path is given.
var DefaultFiles = []string{"vdgen.yaml", "vdgen.yml", "vdgen.toml"}

// Config holds settings shared by all commands.
type Config struct {
	PackagePrefix string `yaml:"package_prefix" toml:"package_prefix" json:"package_prefix"`
	Theme         string `yaml:"theme" toml:"theme" json:"theme"`
	OutputDir     string `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
	ByPackage     bool   `yaml:"by_package" toml:"by_package" json:"by_package"`
	Database      string `yaml:"database" toml:"database" json:"database"`
	Workers       int    `yaml:"workers" toml:"workers" json:"workers"`
	Preprocess    bool   `yaml:"preprocess" toml:"preprocess" json:"preprocess"`
	DetectTheme   bool   `yaml:"detect_theme" toml:"detect_theme" json:"detect_theme"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-" toml:"-" json:"path,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		PackagePrefix: DefaultPackagePrefix,
		Theme:         ir.Filled.PackageName(),
		Preprocess:    true,
	}
}

// Error reports a config file that cannot be read or is invalid.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads the config at path. With an empty path it tries
// DefaultFiles in dir and falls back to Default when none exists.
func Load(path, dir string) (*Config, error) {
	if path == "" {
		for _, name := range DefaultFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return LoadFile(candidate)
			}
		}
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates one config file. The format follows the
// extension: .toml is TOML, anything else is YAML.
func LoadFile(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	cfg, err := Parse(data, formatOf(expanded))
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg.Path = expanded
	return cfg, nil
}

// Format is a config file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Parse decodes data over Default, validates it and expands paths.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	var raw map[string]any

	switch format {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}

	if err := validate(raw); err != nil {
		return nil, err
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the decoded document against the embedded CUE schema.
func validate(raw map[string]any) error {
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	value := schema.Unify(ctx.Encode(raw))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.OutputDir, &c.Database} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ThemeValue returns the configured theme.
func (c *Config) ThemeValue() (ir.Theme, error) {
	return ir.ParseTheme(c.Theme)
}

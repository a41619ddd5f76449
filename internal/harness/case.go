package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vdgen/internal/config"
	"github.com/roach88/vdgen/internal/ir"
)

// Case is one conformance case.
type Case struct {
	// Name uniquely identifies this case.
	Name string `yaml:"name"`

	// Description explains what this case covers.
	Description string `yaml:"description,omitempty"`

	// Icon overrides the property name derived from the source name.
	// Inline sources are named after Icon, or Name when Icon is empty.
	Icon string `yaml:"icon,omitempty"`

	// Theme is a theme package name. Default: filled.
	Theme string `yaml:"theme,omitempty"`

	// PackagePrefix defaults to the Material icons package.
	PackagePrefix *string `yaml:"package_prefix,omitempty"`

	// Preprocess rewrites white path colours to black. Default: true.
	Preprocess *bool `yaml:"preprocess,omitempty"`

	// Source is the inline vector drawable XML.
	Source string `yaml:"source,omitempty"`

	// File is a vector drawable path relative to the case file.
	// Exactly one of Source and File is set.
	File string `yaml:"file,omitempty"`

	// Expect describes the outcome.
	Expect Expect `yaml:"expect"`

	// Golden is a file, relative to the case file, that the generated
	// output must equal.
	Golden string `yaml:"golden,omitempty"`

	// RunToken is the fixed run token. Default: "test-run-default".
	RunToken string `yaml:"run_token,omitempty"`

	// dir is the directory of the case file.
	dir string
}

// Error kinds accepted in Expect.Error.
const (
	ErrorPathSyntax       = "path_syntax"
	ErrorStructural       = "structural"
	ErrorMissingAttribute = "missing_attribute"
)

// Expect lists the checks applied to a case outcome. Zero fields are not
// checked.
type Expect struct {
	// Error is the expected error kind. When set, the conversion must fail.
	Error string `yaml:"error,omitempty"`

	// ErrorContains must appear in the error message.
	ErrorContains string `yaml:"error_contains,omitempty"`

	// Line is the expected line of a structural or missing attribute error.
	Line int `yaml:"line,omitempty"`

	// Offset is the expected offset of a path syntax error.
	Offset *int `yaml:"offset,omitempty"`

	AutoMirrored *bool  `yaml:"auto_mirrored,omitempty"`
	Package      string `yaml:"package,omitempty"`
	FileName     string `yaml:"file_name,omitempty"`

	// Nodes is the expected number of top-level vector nodes.
	Nodes *int `yaml:"nodes,omitempty"`

	// Contains lists fragments the output must contain.
	Contains []string `yaml:"contains,omitempty"`

	// NotContains lists fragments the output must not contain.
	NotContains []string `yaml:"not_contains,omitempty"`

	// Warnings lists the lint codes expected, in order.
	Warnings []string `yaml:"warnings,omitempty"`
}

// LoadCase reads and parses a case YAML file.
// Unknown fields are rejected so that typos do not silently skip checks.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	var c Case
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	c.dir = filepath.Dir(path)

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid case %s: %w", path, err)
	}
	return &c, nil
}

// LoadCases loads every .yaml and .yml file in dir, sorted by file name.
func LoadCases(dir string) ([]*Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	cases := make([]*Case, 0, len(names))
	seen := make(map[string]string)
	for _, name := range names {
		c, err := LoadCase(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("case name %q used by both %s and %s", c.Name, prev, name)
		}
		seen[c.Name] = name
		cases = append(cases, c)
	}
	return cases, nil
}

func (c *Case) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if (c.Source == "") == (c.File == "") {
		return fmt.Errorf("exactly one of source and file is required")
	}
	if _, err := c.theme(); err != nil {
		return err
	}
	switch c.Expect.Error {
	case "", ErrorPathSyntax, ErrorStructural, ErrorMissingAttribute:
	default:
		return fmt.Errorf("unknown expected error kind %q", c.Expect.Error)
	}
	if c.Expect.Error != "" && c.Golden != "" {
		return fmt.Errorf("golden cannot be combined with an expected error")
	}
	return nil
}

func (c *Case) theme() (ir.Theme, error) {
	if c.Theme == "" {
		return ir.Filled, nil
	}
	return ir.ParseTheme(c.Theme)
}

func (c *Case) packagePrefix() string {
	if c.PackagePrefix == nil {
		return config.DefaultPackagePrefix
	}
	return *c.PackagePrefix
}

func (c *Case) preprocess() bool {
	return c.Preprocess == nil || *c.Preprocess
}

// sourceName is the name the icon is loaded under.
func (c *Case) sourceName() string {
	if c.File != "" {
		return filepath.Join(c.dir, c.File)
	}
	if c.Icon != "" {
		return c.Icon + ".xml"
	}
	return c.Name + ".xml"
}

func (c *Case) goldenPath() string {
	return filepath.Join(c.dir, c.Golden)
}

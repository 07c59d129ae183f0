// Package config loads the generator's YAML configuration file.
//
// A missing field keeps its default. Unknown fields are rejected so a typo
// such as "target:" for "targets:" fails loudly instead of being ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bindgen/internal/emit"
)

// DefaultFile is the configuration file looked up when none is named.
const DefaultFile = "bindgen.yaml"

// Width limits for rendered documentation.
const (
	MinDocWidth = 40
	MaxDocWidth = 200
)

// Config is the generator configuration.
type Config struct {
	// OutputDir receives every generated file.
	OutputDir string `yaml:"output_dir"`

	// Targets selects the binding backends, by name (c, go, python, rust).
	Targets []string `yaml:"targets"`

	// APIDir optionally names a directory of CUE definitions merged into
	// the compiled-in API.
	APIDir string `yaml:"api_dir,omitempty"`

	// Store is the SQLite database holding the doc cache and run journal.
	// Empty disables both.
	Store string `yaml:"store"`

	// DocWidth is the wrap width for documentation comments.
	DocWidth int `yaml:"doc_width"`

	// Bindtests controls whether the bindtests sequence is replayed in
	// each target's generated tests.
	Bindtests bool `yaml:"bindtests"`
}

// Error reports an unusable configuration.
type Error struct {
	Path    string // file the configuration came from, "" for defaults
	Field   string // offending field, "" when the file itself is bad
	Message string
	Err     error
}

func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = "config"
	}
	if e.Field != "" {
		where += ": " + e.Field
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Default returns the configuration used when no file is given.
func Default() Config {
	targets := make([]string, 0, len(emit.AllTargets()))
	for _, t := range emit.AllTargets() {
		targets = append(targets, t.String())
	}
	return Config{
		OutputDir: "generated",
		Targets:   targets,
		Store:     filepath.Join(".bindgen", "state.db"),
		DocWidth:  72,
		Bindtests: true,
	}
}

// Load reads the file at path. Relative paths inside the file are resolved
// against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Path: path, Message: "cannot read", Err: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return Config{}, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// LoadOptional behaves like Load, except that a missing DefaultFile yields
// the defaults. An explicitly named file must exist.
func LoadOptional(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(DefaultFile)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Message: "malformed YAML", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return &Error{Field: "output_dir", Message: "must not be empty"}
	}
	if len(c.Targets) == 0 {
		return &Error{Field: "targets", Message: "must name at least one target"}
	}
	seen := make(map[string]bool)
	for _, name := range c.Targets {
		if _, err := emit.ParseTarget(name); err != nil {
			return &Error{Field: "targets", Message: fmt.Sprintf("unknown target %q", name)}
		}
		if seen[name] {
			return &Error{Field: "targets", Message: fmt.Sprintf("target %q listed twice", name)}
		}
		seen[name] = true
	}
	if c.DocWidth < MinDocWidth || c.DocWidth > MaxDocWidth {
		return &Error{Field: "doc_width", Message: fmt.Sprintf("%d is outside [%d, %d]", c.DocWidth, MinDocWidth, MaxDocWidth)}
	}
	return nil
}

// ParsedTargets returns Targets as emit targets. Call only on a validated
// configuration.
func (c *Config) ParsedTargets() []emit.Target {
	out := make([]emit.Target, 0, len(c.Targets))
	for _, name := range c.Targets {
		t, err := emit.ParseTarget(name)
		if err != nil {
			panic("config: unvalidated target " + name)
		}
		out = append(out, t)
	}
	return out
}

func (c *Config) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.OutputDir = abs(c.OutputDir)
	c.APIDir = abs(c.APIDir)
	c.Store = abs(c.Store)
}

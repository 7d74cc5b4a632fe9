// Package config loads .reactlint.yaml project configuration.
//
// A configuration file looks like:
//
//	settings:
//	  react:
//	    pragma: React
//	    createClass: createReactClass
//	    importSource: react
//	  componentWrapperFunctions:
//	    - observer
//	    - { property: styled }
//	    - { property: memo, object: <pragma> }
//	rules:
//	  no-multi-comp: [warn, { ignoreStateless: true }]
//	  prop-types: error
//	  require-default-props: off
//	include: ["src/**/*.{js,jsx,ts,tsx}"]
//	exclude: ["**/*.stories.*"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/reactlint/pkg/components"
	"github.com/gnana997/reactlint/pkg/lint"
)

// FileNames are the configuration file names Find looks for, in order.
var FileNames = []string{".reactlint.yaml", ".reactlint.yml"}

// ErrUnknownRule is returned when the configuration names a rule that does
// not exist. It is the same sentinel the linter uses.
var ErrUnknownRule = lint.ErrUnknownRule

// Config is the decoded configuration file.
type Config struct {
	Settings Settings             `yaml:"settings"`
	Rules    map[string]RuleEntry `yaml:"rules"`
	Include  []string             `yaml:"include"`
	Exclude  []string             `yaml:"exclude"`
	// Workers overrides the worker pool size; zero picks it from the CPU
	// count.
	Workers int `yaml:"workers"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Settings mirror components.Settings in the file layout.
type Settings struct {
	React                     ReactSettings `yaml:"react"`
	ComponentWrapperFunctions []Wrapper     `yaml:"componentWrapperFunctions"`
}

// ReactSettings name the framework identifiers.
type ReactSettings struct {
	Pragma       string `yaml:"pragma"`
	CreateClass  string `yaml:"createClass"`
	ImportSource string `yaml:"importSource"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes configuration data. Unknown keys are rejected; an empty
// document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.DiscoverOptions().ValidatePatterns(); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

// Find looks for a configuration file in dir and its parents. It returns ""
// when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve loads the explicit path when set, and otherwise the file Find
// locates from dir, falling back to Default.
func Resolve(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	found, err := Find(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to find config: %w", err)
	}
	if found == "" {
		return Default(), nil
	}
	return Load(found)
}

// Validate checks the configured rule names against the known ones. The
// error for an unknown name carries the closest known name, if any.
func (c *Config) Validate(known []string) error {
	var errs []error
	for _, name := range sortedRuleNames(c.Rules) {
		if slices.Contains(known, name) {
			continue
		}
		if s := Suggest(name, known); s != "" {
			errs = append(errs, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownRule, name, s))
		} else {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRule, name))
		}
	}
	return errors.Join(errs...)
}

// ComponentSettings returns the detection settings.
func (c *Config) ComponentSettings() components.Settings {
	s := components.Settings{
		Pragma:       c.Settings.React.Pragma,
		CreateClass:  c.Settings.React.CreateClass,
		ImportSource: c.Settings.React.ImportSource,
	}
	for _, w := range c.Settings.ComponentWrapperFunctions {
		s.WrapperFunctions = append(s.WrapperFunctions, components.WrapperFunction(w))
	}
	return s
}

// LintOptions returns the linter options. The cache is left to the caller.
func (c *Config) LintOptions() lint.Options {
	opts := lint.Options{
		Settings: c.ComponentSettings(),
		Workers:  c.Workers,
	}
	if len(c.Rules) > 0 {
		opts.Rules = make(map[string]lint.RuleConfig, len(c.Rules))
		for name, entry := range c.Rules {
			opts.Rules[name] = lint.RuleConfig(entry)
		}
	}
	return opts
}

// DiscoverOptions returns the file selection. Configured excludes extend the
// defaults; configured includes replace them.
func (c *Config) DiscoverOptions() lint.DiscoverOptions {
	opts := lint.DefaultDiscoverOptions()
	if len(c.Include) > 0 {
		opts.Include = slices.Clone(c.Include)
	}
	opts.Exclude = append(opts.Exclude, c.Exclude...)
	return opts
}

func sortedRuleNames(rules map[string]RuleEntry) []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

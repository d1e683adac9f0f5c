// Package options holds the configuration of conversions and type synthesis.
// Configuration files are YAML or TOML, picked by file extension.
package options

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"reflex/internal/common"
	"reflex/primitive"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultTypePrefix is the name prefix of synthesized types.
const DefaultTypePrefix = "Synthesized"

type Config struct {
	// Categories restricts primitive conversions, empty means all.
	Categories Categories `yaml:"categories" toml:"categories"`
	// TimeLayouts are Go layouts or one of the names rfc3339, rfc3339nano, datetime, dateonly, kitchen.
	TimeLayouts []string `yaml:"time_layouts" toml:"time_layouts"`
	TrueWords   []string `yaml:"true_words" toml:"true_words"`
	FalseWords  []string `yaml:"false_words" toml:"false_words"`

	// TypePrefix names synthesized types.
	TypePrefix string `yaml:"type_prefix" toml:"type_prefix"`
	// Registry records every synthesized type in a type registry.
	Registry bool `yaml:"registry" toml:"registry"`

	// Verbosity is the log level used by the command line tool.
	Verbosity int `yaml:"verbosity" toml:"verbosity"`
}

var namedLayouts = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"dateonly":    time.DateOnly,
	"kitchen":     time.Kitchen,
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opts := primitive.DefaultOptions()

	return &Config{
		Categories:  Categories{"all"},
		TimeLayouts: opts.TimeLayouts,
		TrueWords:   opts.TrueWords,
		FalseWords:  opts.FalseWords,
		TypePrefix:  DefaultTypePrefix,
	}
}

// Load reads a configuration file, values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", common.ErrInvalidArgument, filepath.Ext(path))
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown config key %q", common.ErrInvalidArgument, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: unknown config format %q", common.ErrInvalidArgument, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Categories.Resolve(); err != nil {
		return err
	}

	if c.TypePrefix == "" {
		return fmt.Errorf("%w: type_prefix must not be empty", common.ErrInvalidArgument)
	}

	for _, word := range c.TrueWords {
		for _, other := range c.FalseWords {
			if strings.EqualFold(word, other) {
				return fmt.Errorf("%w: %q is both a true and a false word", common.ErrInvalidArgument, word)
			}
		}
	}

	return nil
}

// CastOptions translates the configuration into primitive cast options.
func (c *Config) CastOptions() (primitive.Options, error) {
	allowed, err := c.Categories.Resolve()
	if err != nil {
		return primitive.Options{}, err
	}

	layouts := make([]string, 0, len(c.TimeLayouts))
	for _, layout := range c.TimeLayouts {
		if named, ok := namedLayouts[strings.ToLower(layout)]; ok {
			layout = named
		}
		layouts = append(layouts, layout)
	}

	lower := func(words []string) []string {
		res := make([]string, len(words))
		for i, word := range words {
			res[i] = strings.ToLower(word)
		}
		return res
	}

	return primitive.Options{
		Allowed:     allowed,
		TimeLayouts: layouts,
		TrueWords:   lower(c.TrueWords),
		FalseWords:  lower(c.FalseWords),
	}, nil
}

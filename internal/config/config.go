// Package config loads the optional docdoc configuration file.
//
// Precedence, highest first: command-line flags, DOCDOC_* environment
// variables, this file, built-in defaults. The file is YAML with environment
// variables expanded before parsing.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/markdown"
)

// Built-in defaults.
const (
	DefaultConfigFile = "docdoc.yaml"
	DefaultTheme      = "/usr/local/share/docdoc/themes/default"
	DefaultTemplate   = "index.html"
	DefaultOutputDir  = "dist"
)

// Config represents the application configuration.
type Config struct {
	Theme         string        `yaml:"theme,omitempty"`
	Template      string        `yaml:"template,omitempty"`
	Dialect       string        `yaml:"dialect,omitempty"`
	Output        OutputConfig  `yaml:"output"`
	ExtraMetadata []string      `yaml:"extra_metadata,omitempty"`
	Logging       LoggingConfig `yaml:"logging"`
	Metrics       MetricsConfig `yaml:"metrics"`
}

// OutputConfig controls where pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	// PreserveFirstComponent keeps the leading directory of the source path.
	PreserveFirstComponent bool `yaml:"preserve_first_component"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration holding only built-in defaults.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from path after loading .env files.
//
// A missing file is only an error when required is true; otherwise the
// defaults are returned.
func Load(path string, required bool) (*Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return nil, err
	}

	// #nosec G304 -- the configuration path is chosen by the user.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Parse(data, path)
	case stderrors.Is(err, fs.ErrNotExist) && !required:
		return Default(), nil
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", path).
			Build()
	default:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}
}

// Parse decodes configuration data; source names it in errors.
func Parse(data []byte, source string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").
			WithContext("path", source).
			Build()
	}

	if err := cfg.normalize(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			WithContext("path", source).
			Build()
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// normalize canonicalizes enumerated values, rejecting unknown ones.
// Empty values stay empty so applyDefaults can fill them.
func (c *Config) normalize() error {
	if c.Dialect != "" {
		d, err := markdown.ParseDialect(c.Dialect)
		if err != nil {
			return err
		}
		c.Dialect = string(d)
	}
	level, err := logLevelNormalizer.Parse(string(c.Logging.Level))
	if err != nil {
		return err
	}
	c.Logging.Level = level
	format, err := logFormatNormalizer.Parse(string(c.Logging.Format))
	if err != nil {
		return err
	}
	c.Logging.Format = format
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	if cfg.Dialect == "" {
		cfg.Dialect = string(markdown.CommonMark)
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

// SkipFirstSegment reports whether the leading source directory is dropped.
func (c *Config) SkipFirstSegment() bool {
	return !c.Output.PreserveFirstComponent
}

// Init writes a configuration file holding the defaults to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	// #nosec G306 -- configuration carries no secrets by default.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}

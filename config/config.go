// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads pyenv-activate settings from a YAML file, environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jongio/pyenv-activate/cmdutil"
	"github.com/jongio/pyenv-activate/logutil"
	"github.com/jongio/pyenv-activate/pathutil"
	"github.com/jongio/pyenv-activate/security"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// AppName names the config and cache directories.
const AppName = "pyenv-activate"

// FileName is the config file name inside the config directory.
const FileName = "config.yaml"

// Environment variable overrides.
const (
	EnvPyenvRoot = pathutil.EnvPyenvRoot
	EnvDebug     = logutil.EnvDebug
	EnvShell     = "PYENV_ACTIVATE_SHELL"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Defaults.
const (
	DefaultCacheTTL        = 24 * time.Hour
	DefaultBreakerFailures = cmdutil.DefaultBreakerFailures
	DefaultBreakerTimeout  = cmdutil.DefaultBreakerTimeout
)

// Flag names registered by BindFlags.
const (
	FlagPyenvRoot       = "pyenv-root"
	FlagPyenvCommand    = "pyenv-command"
	FlagShell           = "shell"
	FlagDebug           = "debug"
	FlagLogFormat       = "log-format"
	FlagCommandTimeout  = "command-timeout"
	FlagCacheDir        = "cache-dir"
	FlagCacheTTL        = "cache-ttl"
	FlagNoCache         = "no-cache"
	FlagBreakerFailures = "breaker-failures"
	FlagBreakerTimeout  = "breaker-timeout"
	FlagRateLimit       = "rate-limit"
)

// Config holds every tunable setting.
type Config struct {
	PyenvRoot      string        `yaml:"pyenvRoot"`
	PyenvCommand   string        `yaml:"pyenvCommand"`
	Shell          string        `yaml:"shell"`
	Debug          bool          `yaml:"debug"`
	LogFormat      string        `yaml:"logFormat"`
	CommandTimeout time.Duration `yaml:"commandTimeout"`
	RateLimit      int           `yaml:"rateLimit"` // pyenv/python spawns per second; 0 is unlimited
	Cache          CacheConfig   `yaml:"cache"`
	Breaker        BreakerConfig `yaml:"breaker"`
}

// CacheConfig configures the interpreter version cache.
type CacheConfig struct {
	Dir      string        `yaml:"dir"`
	TTL      time.Duration `yaml:"ttl"`
	Disabled bool          `yaml:"disabled"`
}

// BreakerConfig configures the circuit breaker around the pyenv executable.
type BreakerConfig struct {
	Failures int           `yaml:"failures"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PyenvCommand:   pathutil.PyenvTool,
		LogFormat:      LogFormatText,
		CommandTimeout: cmdutil.DefaultTimeout,
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
		Breaker: BreakerConfig{
			Failures: DefaultBreakerFailures,
			Timeout:  DefaultBreakerTimeout,
		},
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the config file at path over the defaults and applies
// environment overrides. An empty path means DefaultPath, which may be
// missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			logutil.Debug("skipping config file", "error", err)
		}
		path = p
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			logutil.Debug("no config file", "path", path)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's config file
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// The file names the pyenv executable that gets run.
	if err := security.ValidateFilePermissions(path); errors.Is(err, security.ErrInsecureFilePermissions) && !security.IsContainerEnvironment() {
		logutil.Warn("config file is writable by other users", "path", path)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPyenvRoot); ok && v != "" {
		c.PyenvRoot = v
	}
	if v, ok := lookup(EnvDebug); ok && v == "true" {
		c.Debug = true
	}
	if v, ok := lookup(EnvShell); ok && v != "" {
		c.Shell = v
	}
}

// BindFlags registers the config override flags on fs.
// Values only take effect through ApplyFlags when the flag was set.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagPyenvRoot, "", "pyenv root directory (overrides $PYENV_ROOT)")
	fs.String(FlagPyenvCommand, "", "pyenv executable name or path")
	fs.String(FlagShell, "", "shell to generate commands for (default: detected)")
	fs.Bool(FlagDebug, false, "enable debug logging")
	fs.String(FlagLogFormat, "", "log format: text or json")
	fs.Duration(FlagCommandTimeout, 0, "timeout for each pyenv invocation")
	fs.String(FlagCacheDir, "", "interpreter cache directory")
	fs.Duration(FlagCacheTTL, 0, "interpreter cache entry lifetime")
	fs.Bool(FlagNoCache, false, "disable the interpreter cache")
	fs.Int(FlagBreakerFailures, 0, "consecutive pyenv failures before giving up (0 never gives up)")
	fs.Duration(FlagBreakerTimeout, 0, "how long to stop calling pyenv after it keeps failing")
	fs.Int(FlagRateLimit, 0, "maximum pyenv invocations per second (0 is unlimited)")
}

// ApplyFlags copies the flags registered by BindFlags that were set on fs.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var errs []error
	visit := func(name string, apply func() error) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			if err := apply(); err != nil {
				errs = append(errs, fmt.Errorf("--%s: %w", name, err))
			}
		}
	}

	visit(FlagPyenvRoot, stringFlag(fs, FlagPyenvRoot, &c.PyenvRoot))
	visit(FlagPyenvCommand, stringFlag(fs, FlagPyenvCommand, &c.PyenvCommand))
	visit(FlagShell, stringFlag(fs, FlagShell, &c.Shell))
	visit(FlagLogFormat, stringFlag(fs, FlagLogFormat, &c.LogFormat))
	visit(FlagCacheDir, stringFlag(fs, FlagCacheDir, &c.Cache.Dir))
	visit(FlagDebug, boolFlag(fs, FlagDebug, &c.Debug))
	visit(FlagNoCache, boolFlag(fs, FlagNoCache, &c.Cache.Disabled))
	visit(FlagCommandTimeout, durationFlag(fs, FlagCommandTimeout, &c.CommandTimeout))
	visit(FlagCacheTTL, durationFlag(fs, FlagCacheTTL, &c.Cache.TTL))
	visit(FlagBreakerTimeout, durationFlag(fs, FlagBreakerTimeout, &c.Breaker.Timeout))
	visit(FlagBreakerFailures, intFlag(fs, FlagBreakerFailures, &c.Breaker.Failures))
	visit(FlagRateLimit, intFlag(fs, FlagRateLimit, &c.RateLimit))

	return errors.Join(errs...)
}

func stringFlag(fs *pflag.FlagSet, name string, dst *string) func() error {
	return func() error {
		v, err := fs.GetString(name)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func boolFlag(fs *pflag.FlagSet, name string, dst *bool) func() error {
	return func() error {
		v, err := fs.GetBool(name)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func intFlag(fs *pflag.FlagSet, name string, dst *int) func() error {
	return func() error {
		v, err := fs.GetInt(name)
		if err == nil {
			*dst = v
		}
		return err
	}
}

func durationFlag(fs *pflag.FlagSet, name string, dst *time.Duration) func() error {
	return func() error {
		v, err := fs.GetDuration(name)
		if err == nil {
			*dst = v
		}
		return err
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logFormat %q must be %q or %q", c.LogFormat, LogFormatText, LogFormatJSON))
	}
	if c.CommandTimeout < 0 {
		errs = append(errs, fmt.Errorf("commandTimeout must not be negative: %s", c.CommandTimeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rateLimit must not be negative: %d", c.RateLimit))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative: %s", c.Cache.TTL))
	}
	if c.Breaker.Failures < 0 {
		errs = append(errs, fmt.Errorf("breaker.failures must not be negative: %d", c.Breaker.Failures))
	}
	if c.Breaker.Timeout < 0 {
		errs = append(errs, fmt.Errorf("breaker.timeout must not be negative: %s", c.Breaker.Timeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// StructuredLogs reports whether logs should be written as JSON.
func (c *Config) StructuredLogs() bool {
	return c.LogFormat == LogFormatJSON
}

// CacheDir returns the configured cache directory, defaulting to the user
// cache directory.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return pathutil.ExpandHome(c.Cache.Dir), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

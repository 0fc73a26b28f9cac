// Package config loads compose-menu settings from an optional file.
//
// The file is YAML by default. Files ending in .json or .jsonc are read as
// JSON with comments: github.com/tidwall/jsonc strips comments and trailing
// commas before encoding/json parses the result.
//
// Values are layered: built-in defaults, then the file, then any flag the
// user set explicitly (applied by the cli package).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/compose-menu/internal/composer"
	"github.com/shinji-kodama/compose-menu/internal/daemon"
	"github.com/shinji-kodama/compose-menu/internal/docker"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// DefaultFileName is looked up in the working directory when no config
// file is named explicitly.
const DefaultFileName = ".compose-menu.yaml"

// Config is the on-disk configuration.
type Config struct {
	// Dir is the composers directory.
	Dir string `yaml:"dir" json:"dir"`

	// Service is the service-manager unit of the container runtime.
	Service string `yaml:"service" json:"service"`

	// Probe is "systemctl" or "engine".
	Probe string `yaml:"probe" json:"probe"`

	// Sudo forces sudo on or off. Unset means "sudo unless running as root".
	Sudo *bool `yaml:"sudo" json:"sudo"`

	// ComposeCommand is the compose executable plus fixed leading arguments.
	ComposeCommand []string `yaml:"compose_command" json:"compose_command"`

	// MaxAttempts bounds the number of daemon probes. 0 means unlimited.
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`

	// RetryInterval is the first backoff delay, e.g. "1s".
	RetryInterval string `yaml:"retry_interval" json:"retry_interval"`

	// MaxRetryInterval caps the backoff delay, e.g. "15s".
	MaxRetryInterval string `yaml:"max_retry_interval" json:"max_retry_interval"`

	// Validate rejects non-compose selections before launching.
	Validate bool `yaml:"validate" json:"validate"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dir:              composer.DefaultDir,
		Service:          daemon.DefaultService,
		Probe:            model.ProbeSystemctl.String(),
		ComposeCommand:   append([]string(nil), docker.DefaultComposeCommand...),
		MaxAttempts:      daemon.DefaultMaxAttempts,
		RetryInterval:    daemon.DefaultRetryInterval.String(),
		MaxRetryInterval: daemon.DefaultMaxRetryInterval.String(),
	}
}

// Load reads the config file at path on top of the defaults.
//
// Returns a CLIError with ExitConfigError if the file cannot be read or
// parsed.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	if err := decode(path, data, &cfg); err != nil {
		return cfg, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultFileName from dir if it exists. A missing file
// yields the defaults and found == false.
func LoadDefault(dir string) (cfg Config, found bool, err error) {
	path := filepath.Join(dir, DefaultFileName)
	if _, statErr := os.Stat(path); statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return Default(), false, nil
		}
		return Default(), false, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to stat config file %s", path), statErr)
	}
	cfg, err = Load(path)
	return cfg, true, err
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Settings is a validated Config in the types the rest of the program uses.
type Settings struct {
	Dir            string
	Service        string
	Probe          model.ProbeMode
	Sudo           *bool
	ComposeCommand []string
	Backoff        daemon.Backoff
	Validate       bool
}

// Resolve validates cfg and converts it to Settings.
// Returns a CLIError with ExitConfigError on the first invalid value.
func (cfg Config) Resolve() (Settings, error) {
	s := Settings{
		Dir:            strings.TrimSpace(cfg.Dir),
		Service:        strings.TrimSpace(cfg.Service),
		Sudo:           cfg.Sudo,
		ComposeCommand: cfg.ComposeCommand,
		Validate:       cfg.Validate,
	}

	if s.Dir == "" {
		return s, model.NewCLIError(model.ExitConfigError, "composers directory must not be empty")
	}
	if s.Service == "" {
		return s, model.NewCLIError(model.ExitConfigError, "service name must not be empty")
	}
	if len(s.ComposeCommand) == 0 || strings.TrimSpace(s.ComposeCommand[0]) == "" {
		return s, model.NewCLIError(model.ExitConfigError, "compose command must not be empty")
	}

	probe, err := model.ParseProbeMode(cfg.Probe)
	if err != nil {
		return s, model.WrapCLIError(model.ExitConfigError, "invalid probe", err)
	}
	s.Probe = probe

	if cfg.MaxAttempts < 0 {
		return s, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("max attempts must be >= 0, got %d", cfg.MaxAttempts))
	}
	interval, err := parseDuration("retry interval", cfg.RetryInterval)
	if err != nil {
		return s, err
	}
	maxInterval, err := parseDuration("max retry interval", cfg.MaxRetryInterval)
	if err != nil {
		return s, err
	}
	s.Backoff = daemon.Backoff{
		MaxAttempts: cfg.MaxAttempts,
		Interval:    interval,
		MaxInterval: maxInterval,
	}
	return s, nil
}

// parseDuration accepts Go duration strings; empty means zero.
func parseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("invalid %s %q", field, value), err)
	}
	if d < 0 {
		return 0, model.NewCLIError(model.ExitConfigError, fmt.Sprintf("%s must not be negative", field))
	}
	return d, nil
}

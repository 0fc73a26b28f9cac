package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/compose-menu/internal/model"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requireConfigError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestDefault_Resolve verifies the built-in settings match the original
// tool's behavior plus the bounded retry loop.
func TestDefault_Resolve(t *testing.T) {
	s, err := Default().Resolve()
	require.NoError(t, err)

	assert.Equal(t, "./composers", s.Dir)
	assert.Equal(t, "docker", s.Service)
	assert.Equal(t, model.ProbeSystemctl, s.Probe)
	assert.Nil(t, s.Sudo)
	assert.Equal(t, []string{"docker-compose"}, s.ComposeCommand)
	assert.Equal(t, 10, s.Backoff.MaxAttempts)
	assert.Equal(t, time.Second, s.Backoff.Interval)
	assert.Equal(t, 15*time.Second, s.Backoff.MaxInterval)
	assert.False(t, s.Validate)
}

// TestLoad_YAML verifies YAML values overlay the defaults.
func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "menu.yaml", `
dir: /srv/stacks
probe: engine
sudo: false
compose_command: [docker, compose]
max_attempts: 0
retry_interval: 500ms
validate: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	s, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, "/srv/stacks", s.Dir)
	assert.Equal(t, "docker", s.Service, "unset keys keep their default")
	assert.Equal(t, model.ProbeEngine, s.Probe)
	require.NotNil(t, s.Sudo)
	assert.False(t, *s.Sudo)
	assert.Equal(t, []string{"docker", "compose"}, s.ComposeCommand)
	assert.Equal(t, 0, s.Backoff.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, s.Backoff.Interval)
	assert.Equal(t, 15*time.Second, s.Backoff.MaxInterval)
	assert.True(t, s.Validate)
}

// TestLoad_JSONC verifies comments and trailing commas are accepted in
// .jsonc files.
func TestLoad_JSONC(t *testing.T) {
	path := writeConfig(t, "menu.jsonc", `{
  // the runtime unit
  "service": "podman",
  /* bounded retries */
  "max_attempts": 3,
  "sudo": true,
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "podman", cfg.Service)
	assert.Equal(t, 3, cfg.MaxAttempts)
	require.NotNil(t, cfg.Sudo)
	assert.True(t, *cfg.Sudo)
	assert.Equal(t, "./composers", cfg.Dir)
}

// TestLoad_Errors verifies unreadable and unparsable files.
func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	requireConfigError(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "dir: [unterminated\n"))
	requireConfigError(t, err)

	_, err = Load(writeConfig(t, "bad.json", `{"dir": 42}`))
	requireConfigError(t, err)
}

// TestLoadDefault verifies the working-directory lookup.
func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, found, err := LoadDefault(dir)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("service: containerd\n"), 0o644))
	cfg, found, err = LoadDefault(dir)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "containerd", cfg.Service)
}

// TestResolve_Invalid covers each rejected value.
func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dir", func(c *Config) { c.Dir = "  " }},
		{"empty service", func(c *Config) { c.Service = "" }},
		{"empty compose command", func(c *Config) { c.ComposeCommand = nil }},
		{"blank compose binary", func(c *Config) { c.ComposeCommand = []string{" "} }},
		{"unknown probe", func(c *Config) { c.Probe = "ping" }},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }},
		{"bad interval", func(c *Config) { c.RetryInterval = "soon" }},
		{"negative interval", func(c *Config) { c.MaxRetryInterval = "-1s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, err := cfg.Resolve()
			requireConfigError(t, err)
		})
	}
}

// TestResolve_EmptyIntervalMeansNoDelay verifies an explicit empty interval.
func TestResolve_EmptyIntervalMeansNoDelay(t *testing.T) {
	cfg := Default()
	cfg.RetryInterval = ""
	s, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Zero(t, s.Backoff.Interval)
}

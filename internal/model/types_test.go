package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEntry_DisplayName verifies file stem extraction, including dotfiles,
// multiple extensions and directories.
func TestEntry_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"yaml file", "composers/web.yml", "web", true},
		{"multiple extensions keeps all but last", "composers/db.compose.yaml", "db.compose", true},
		{"no extension", "composers/Makefile", "Makefile", true},
		{"dotfile keeps full name", "composers/.env", ".env", true},
		{"dotfile with extension", "composers/.hidden.yml", ".hidden", true},
		{"trailing dot", "composers/odd.", "odd", true},
		{"directory with trailing slash", "composers/stack/", "stack", true},
		{"bare name", "web.yml", "web", true},
		{"empty path", "", "", false},
		{"dot", ".", "", false},
		{"dot dot", "..", "", false},
		{"root", "/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewEntry(tt.path, false).DisplayName()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestParseProbeMode verifies string-to-mode conversion,
// including case normalization and error cases.
func TestParseProbeMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ProbeMode
		hasError bool
	}{
		{"systemctl", ProbeSystemctl, false},
		{"engine", ProbeEngine, false},
		{"Engine", ProbeEngine, false},
		{" SYSTEMCTL ", ProbeSystemctl, false},
		{"docker", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseProbeMode(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, string(tt.expected), result.String())
		})
	}
}

// TestCLIError verifies message formatting and unwrapping.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitDaemonUnavailable, "daemon is down")
		assert.Equal(t, "daemon is down", err.Error())
		assert.Equal(t, ExitDaemonUnavailable, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapCLIError(ExitDirectoryUnreadable, "cannot read composers", cause)
		assert.Equal(t, "cannot read composers: permission denied", err.Error())
		assert.True(t, errors.Is(err, cause))

		var target *CLIError
		require.True(t, errors.As(error(err), &target))
		assert.Equal(t, ExitDirectoryUnreadable, target.Code)
	})
}

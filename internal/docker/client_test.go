package docker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetectUnixSocket verifies that the first existing path wins.
func TestDetectUnixSocket(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.sock")
	second := filepath.Join(dir, "second.sock")
	require.NoError(t, os.WriteFile(second, nil, 0o600))

	host, err := detectUnixSocket([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "unix://"+second, host)

	require.NoError(t, os.WriteFile(first, nil, 0o600))
	host, err = detectUnixSocket([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "unix://"+first, host)
}

// TestDetectUnixSocket_NoneFound verifies the error lists the paths tried.
func TestDetectUnixSocket_NoneFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "docker.sock")
	_, err := detectUnixSocket([]string{missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

// TestNewClient_FromDockerHost verifies DOCKER_HOST is honored without
// touching the filesystem or the network.
func TestNewClient_FromDockerHost(t *testing.T) {
	t.Setenv("DOCKER_HOST", "tcp://127.0.0.1:2375")

	c, err := NewClient()
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, "tcp://127.0.0.1:2375", c.Host())
}

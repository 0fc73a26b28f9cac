// Package docker provides Docker Engine API wrappers and the compose
// launch step for the compose-menu CLI.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows) and a bounded readiness Ping
//   - Starting "<compose> -f <file> up" as a detached child process
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker

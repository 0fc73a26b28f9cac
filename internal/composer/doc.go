// Package composer discovers and presents the compose definitions that the
// menu offers.
//
// This package handles:
//   - Listing the immediate children of the composers directory, sorted by
//     full path (lister.go)
//   - Rendering the numbered, 1-indexed menu text (menu.go)
//   - Reading the service names out of a compose file with gopkg.in/yaml.v3,
//     used by "list --json" and by pre-launch validation (compose.go)
package composer

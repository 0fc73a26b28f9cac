// compose.go reads just enough of a compose file to name its services.
//
// The menu itself never needs this: entries are shown by file stem and any
// child of the composers directory is selectable. Service names are only
// used for "list --json" output and for the optional --validate check that
// runs before the orchestration command is started.
package composer

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/compose-menu/internal/model"
)

// composeFile is the subset of a Compose document we care about.
// Service bodies are decoded as raw nodes so that arbitrary service
// definitions (build, image, extends, ...) never fail the parse.
type composeFile struct {
	// Name is the optional top-level project name.
	Name string `yaml:"name"`

	// Services maps service names to their (ignored) definitions.
	Services map[string]yaml.Node `yaml:"services"`
}

// ParseServices extracts the sorted service names from compose YAML.
// A document without a services section yields an empty, non-nil slice.
func ParseServices(data []byte) ([]string, error) {
	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse compose YAML: %w", err)
	}

	services := make([]string, 0, len(cf.Services))
	for name := range cf.Services {
		services = append(services, name)
	}
	// Sort for deterministic output; map iteration order is random.
	sort.Strings(services)
	return services, nil
}

// LoadServices reads the compose file at path and returns its service names.
func LoadServices(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file %s: %w", path, err)
	}
	services, err := ParseServices(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return services, nil
}

// Validate checks that entry points at a readable compose file that defines
// at least one service. Returns a CLIError with ExitInvalidCompose otherwise.
func Validate(entry model.Entry) error {
	if entry.IsDir {
		return model.NewCLIError(model.ExitInvalidCompose,
			fmt.Sprintf("%s is a directory, not a compose file", entry.Path))
	}

	services, err := LoadServices(entry.Path)
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidCompose,
			fmt.Sprintf("invalid compose file %s", entry.Path), err)
	}
	if len(services) == 0 {
		return model.NewCLIError(model.ExitInvalidCompose,
			fmt.Sprintf("compose file %s defines no services", entry.Path))
	}
	return nil
}

// Package cli — settings.go turns flags and the optional config file into
// resolved settings, and builds the components that act on them.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-menu/internal/config"
	"github.com/shinji-kodama/compose-menu/internal/daemon"
	"github.com/shinji-kodama/compose-menu/internal/docker"
	"github.com/shinji-kodama/compose-menu/internal/launch"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// settingsFlags holds the flags that can override config file values.
// A flag only takes effect when the user set it explicitly.
type settingsFlags struct {
	configPath       string
	dir              string
	service          string
	probe            string
	sudo             bool
	composeCommand   []string
	maxAttempts      int
	retryInterval    time.Duration
	maxRetryInterval time.Duration
	validate         bool
}

// register binds the flags as persistent flags so subcommands share them.
func (f *settingsFlags) register(cmd *cobra.Command) {
	def := config.Default()
	pf := cmd.PersistentFlags()

	pf.StringVar(&f.configPath, "config", "",
		"Config file (YAML, or JSON with comments for .json/.jsonc); default ./"+config.DefaultFileName+" if present")
	pf.StringVarP(&f.dir, "dir", "d", def.Dir, "Directory containing the compose files")
	pf.StringVar(&f.service, "service", def.Service, "Service-manager unit of the container daemon")
	pf.StringVar(&f.probe, "probe", def.Probe, "Readiness probe: systemctl or engine")
	pf.BoolVar(&f.sudo, "sudo", os.Geteuid() != 0, "Run systemctl and compose through sudo")
	pf.StringSliceVar(&f.composeCommand, "compose-command", def.ComposeCommand,
		`Compose executable and leading args, comma separated (e.g. "docker,compose")`)
	pf.IntVar(&f.maxAttempts, "max-attempts", def.MaxAttempts, "Maximum daemon probes before giving up (0 = unlimited)")
	pf.DurationVar(&f.retryInterval, "retry-interval", daemon.DefaultRetryInterval, "Initial delay between restart and re-probe")
	pf.DurationVar(&f.maxRetryInterval, "max-retry-interval", daemon.DefaultMaxRetryInterval, "Upper bound for the retry delay")
	pf.BoolVar(&f.validate, "validate", false, "Refuse to launch files that are not compose files with services")
}

// resolve loads the config file and applies explicitly set flags on top.
func (f *settingsFlags) resolve(cmd *cobra.Command) (config.Settings, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return config.Settings{}, err
	}

	changed := cmd.Flags().Changed
	if changed("dir") {
		cfg.Dir = f.dir
	}
	if changed("service") {
		cfg.Service = f.service
	}
	if changed("probe") {
		cfg.Probe = f.probe
	}
	if changed("sudo") {
		sudo := f.sudo
		cfg.Sudo = &sudo
	}
	if changed("compose-command") {
		cfg.ComposeCommand = f.composeCommand
	}
	if changed("max-attempts") {
		cfg.MaxAttempts = f.maxAttempts
	}
	if changed("retry-interval") {
		cfg.RetryInterval = f.retryInterval.String()
	}
	if changed("max-retry-interval") {
		cfg.MaxRetryInterval = f.maxRetryInterval.String()
	}
	if changed("validate") {
		cfg.Validate = f.validate
	}

	return cfg.Resolve()
}

func (f *settingsFlags) loadConfig() (config.Config, error) {
	if f.configPath != "" {
		VerboseLog("Loading config from %s", f.configPath)
		return config.Load(f.configPath)
	}

	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, model.WrapCLIError(model.ExitConfigError, "failed to determine working directory", err)
	}
	cfg, found, err := config.LoadDefault(wd)
	if found {
		VerboseLog("Loaded config from %s", config.DefaultFileName)
	}
	return cfg, err
}

// newWaiter builds the daemon readiness loop for s. Restarts always go
// through systemctl, serialized by a per-service lock file; the probe is
// systemctl or the Engine API.
func newWaiter(s config.Settings) (*daemon.Waiter, *daemon.Systemctl) {
	systemctl := daemon.NewSystemctl(s.Service, s.Sudo, logger)

	var prober daemon.Prober = systemctl
	if s.Probe == model.ProbeEngine {
		prober = daemon.NewEngineProber(logger)
	}
	restarter := daemon.NewLockedRestarter(systemctl, daemon.LockPath(systemctl.Service), logger)
	return daemon.NewWaiter(prober, restarter, s.Backoff, logger), systemctl
}

// newLauncher builds the Launcher for s, echoing to out.
func newLauncher(s config.Settings, out io.Writer) *launch.Launcher {
	waiter, systemctl := newWaiter(s)
	return &launch.Launcher{
		Daemon:   waiter,
		Compose:  docker.NewCompose(s.ComposeCommand, systemctl.UseSudo),
		Out:      out,
		Validate: s.Validate,
		Logger:   logger,
	}
}

// Package cli implements the scenelaunch command-line interface.
//
// # Commands
//
//   - launch: apply settings from flags and start the renderer
//   - args: print the renderer command line without starting it
//   - settings: show the settings table and quality tiers
//   - tui: pick settings interactively and launch from there
//   - config: show the config file location and contents
//   - completion: generate shell completions
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context in PersistentPreRunE.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenelaunch/internal/config"
	"github.com/matzehuels/scenelaunch/pkg/buildinfo"
	"github.com/matzehuels/scenelaunch/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scenelaunch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the default location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Scenelaunch starts the Vulkan scene renderer with chosen quality settings",
		Long:          `Scenelaunch collects rendering-quality settings (anti-aliasing, shadows, SSAO, lighting, scene assets), encodes them into the renderer's positional command line, starts the renderer and streams its output back.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+defaultConfigHint()+")")

	root.AddCommand(c.launchCommand())
	root.AddCommand(c.argsCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the config file named by --config or the default one.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("config loaded", "renderer", cfg.Renderer, "presets", len(cfg.LightingPresets()))
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// launchOptions merges config with the --renderer and --dir overrides.
func launchOptions(cfg config.Config, renderer, dir string) pipeline.Options {
	opts := cfg.Options()
	if renderer != "" {
		opts.Renderer = renderer
	}
	if dir != "" {
		opts.Dir = dir
	}
	return opts
}

func defaultConfigHint() string {
	p, err := config.Path()
	if err != nil {
		return "$XDG_CONFIG_HOME/" + appName + "/config.toml"
	}
	return p
}

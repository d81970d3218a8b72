package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenelaunch/pkg/args"
	"github.com/matzehuels/scenelaunch/pkg/launcher"
	"github.com/matzehuels/scenelaunch/pkg/pipeline"
	"github.com/matzehuels/scenelaunch/pkg/relay"
	"github.com/matzehuels/scenelaunch/pkg/settings"
)

// launchOpts holds the command-line flags for the launch command.
type launchOpts struct {
	settings settingsFlags
	renderer string // overrides the config's renderer
	dir      string // overrides the config's working directory
	dryRun   bool   // print the command line and stop
}

// launchCommand creates the launch command, the CLI's trigger action.
func (c *CLI) launchCommand() *cobra.Command {
	var opts launchOpts

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Start the renderer with the given settings",
		Long: `Start the renderer with the given settings and stream its output.

Non-empty output lines are printed to stdout as they arrive; status goes to
stderr. Ctrl-C asks the renderer to stop and kills it after a grace period.`,
		Example: `  scenelaunch launch --aa 4x --shadow-quality Medium --ssao --lighting Dusk --assets mercedes,tree`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runLaunch(cmd, &opts)
		},
	}

	opts.settings.register(cmd)
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "renderer executable (overrides config)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "renderer working directory (overrides config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the command line without starting the renderer")

	return cmd
}

func (c *CLI) runLaunch(cmd *cobra.Command, opts *launchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	m := settings.New()
	if err := opts.settings.apply(cmd, m, cfg.LightingPresets()); err != nil {
		return err
	}
	snap := m.Snapshot()
	po := launchOptions(cfg, opts.renderer, opts.dir)

	printCommand(po.Renderer, args.Encode(snap))
	if opts.dryRun {
		return nil
	}

	spin := newSpinnerWithContext(ctx, "Starting renderer...")
	spin.Start()
	defer spin.Stop()

	out := relay.NewWriterSink(cmd.OutOrStdout())
	sink := relay.SinkFunc(func(line string) {
		spin.Stop()
		out.Line(line)
	})

	prog := newProgress(logger)
	run, err := c.newRunner().Launch(ctx, snap, po, pipeline.Events{Sink: sink})
	if err != nil {
		spin.Stop()
		return err
	}
	logger.Debug("waiting for renderer", "id", run.ID(), "pid", run.Pid())

	interrupted := false
	select {
	case <-run.Done():
	case <-ctx.Done():
		interrupted = true
		spin.Stop()
		printWarning("Interrupted, stopping renderer")
		if err := terminate(run, po.GracePeriod); err != nil {
			logger.Warn("terminate renderer", "err", err)
		}
		<-run.Done()
	}
	spin.Stop()

	exit := run.Wait()
	prog.done("Renderer exited", "code", exit.ExitCode, "lines", exit.Lines)
	if exit.Dropped > 0 {
		printWarning("%d output lines dropped", exit.Dropped)
	}
	if interrupted {
		return ctx.Err()
	}
	if exit.ExitCode != 0 {
		return fmt.Errorf("renderer exited with code %d", exit.ExitCode)
	}
	printSuccess("Renderer finished")
	return nil
}

// terminate stops run, allowing a little more than the grace period for the
// kill to land.
func terminate(run *pipeline.Run, grace time.Duration) error {
	if grace <= 0 {
		grace = launcher.DefaultGracePeriod
	}
	ctx, cancel := context.WithTimeout(context.Background(), grace+time.Second)
	defer cancel()
	return run.Terminate(ctx)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenelaunch/pkg/args"
	"github.com/matzehuels/scenelaunch/pkg/settings"
)

// argsCommand prints the renderer command line for the given settings.
func (c *CLI) argsCommand() *cobra.Command {
	var (
		flags settingsFlags
		split bool
	)

	cmd := &cobra.Command{
		Use:   "args",
		Short: "Print the renderer arguments for the given settings",
		Example: `  scenelaunch args
  1 1024 10 0 Noon 0 0 0 0

  scenelaunch args --aa 4x --shadow-quality Medium --ssao --lighting Dusk --assets mercedes,tree
  4 2048 10 1 Dusk 1 0 0 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			m := settings.New()
			if err := flags.apply(cmd, m, cfg.LightingPresets()); err != nil {
				return err
			}

			tokens := args.Encode(m.Snapshot())
			if split {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, "\n"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&split, "split", false, "print one argument per line")
	return cmd
}

// settingsCommand shows the effective settings and the quality tier tables.
func (c *CLI) settingsCommand() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the settings table and quality tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			m := settings.New()
			if err := flags.apply(cmd, m, cfg.LightingPresets()); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render("Renderer arguments"))
			fmt.Fprintln(w, renderSettingsTable(m.Snapshot()))
			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Quality tiers"))
			for _, q := range settings.Qualities() {
				res, _ := settings.ShadowResolution(q)
				dist, _ := settings.ShadowDistance(q)
				fmt.Fprintf(w, "  %-8s %s %s\n", q,
					StyleNumber.Render(fmt.Sprintf("%5d px", res)),
					StyleNumber.Render(fmt.Sprintf("%3d m", dist)))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Lighting presets"))
			fmt.Fprintln(w, "  "+StyleValue.Render(strings.Join(cfg.LightingPresets(), ", ")))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

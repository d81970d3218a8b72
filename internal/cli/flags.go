package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenelaunch/pkg/errors"
	"github.com/matzehuels/scenelaunch/pkg/settings"
)

// antiAliasingLabels are the labels the settings form offers, lowest first.
var antiAliasingLabels = []string{"No", "2x", "4x", "8x"}

// settingsFlags holds the render-setting flags shared by launch and args.
// Only flags the user actually set are turned into setter calls.
type settingsFlags struct {
	antiAliasing   string
	shadowQuality  string
	shadowDistance string
	ssao           bool
	lighting       string
	assets         []string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.antiAliasing, "aa", "No", "anti-aliasing: No, 2x, 4x, 8x")
	fs.StringVar(&f.shadowQuality, "shadow-quality", string(settings.QualityLow), "shadow map quality: Low, Medium, Height, Ultra")
	fs.StringVar(&f.shadowDistance, "shadow-distance", string(settings.QualityLow), "shadow draw distance: Low, Medium, Height, Ultra")
	fs.BoolVar(&f.ssao, "ssao", false, "enable screen-space ambient occlusion")
	fs.StringVar(&f.lighting, "lighting", settings.DefaultLighting, "lighting preset (e.g. Noon, Clouds, Sunset, Dusk, Night)")
	fs.StringSliceVar(&f.assets, "assets", nil, "scene assets to load: mercedes, supercar, house, tree (comma-separated)")
}

// apply replays the changed flags onto m, one setter per flag. The first
// rejected value is returned; setters already applied stay applied.
func (f *settingsFlags) apply(cmd *cobra.Command, m *settings.Model, presets []string) error {
	changed := cmd.Flags().Changed

	if changed("aa") {
		if err := m.SetAntiAliasingLabel(f.antiAliasing); err != nil {
			return err
		}
	}
	if changed("shadow-quality") {
		if err := m.SetShadowQuality(settings.Quality(f.shadowQuality)); err != nil {
			return err
		}
	}
	if changed("shadow-distance") {
		if err := m.SetShadowDistance(settings.Quality(f.shadowDistance)); err != nil {
			return err
		}
	}
	if changed("ssao") {
		m.SetAmbientOcclusion(f.ssao)
	}
	if changed("lighting") {
		if err := errors.ValidateLightingLabel(f.lighting); err != nil {
			return err
		}
		if !slices.Contains(presets, f.lighting) {
			printWarning("lighting preset %q is not one of %v; passing it through", f.lighting, presets)
		}
		m.SetLighting(f.lighting)
	}
	if changed("assets") {
		for _, name := range f.assets {
			if err := m.SetAssetByName(name, true); err != nil {
				return err
			}
		}
	}
	return nil
}

package settings

import (
	"strconv"
	"strings"

	"github.com/matzehuels/scenelaunch/pkg/errors"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultAntiAliasingSamples disables multisampling.
	DefaultAntiAliasingSamples = 1

	// DefaultShadowMapResolution is the Low shadow quality tier.
	DefaultShadowMapResolution = 1024

	// DefaultShadowDrawDistance is the Low shadow distance tier.
	DefaultShadowDrawDistance = 10

	// DefaultLighting is the lighting preset used until the user picks one.
	DefaultLighting = "Noon"
)

// LightingPresets lists the lighting labels the UI suggests. The renderer
// ships skyboxes for the first three (Noon, Clouds, Sunset); Dusk and Night
// are extra suggestions. The model stores any label.
var LightingPresets = []string{"Noon", "Clouds", "Sunset", "Dusk", "Night"}

// AntiAliasingSamples lists the valid multisample counts.
var AntiAliasingSamples = []int{1, 2, 4, 8}

// =============================================================================
// RenderSettings
// =============================================================================

// RenderSettings is one complete set of renderer options. It is a plain value:
// copying it yields an independent snapshot.
type RenderSettings struct {
	AntiAliasingSamples int
	ShadowMapResolution int
	ShadowDrawDistance  int
	AmbientOcclusion    bool
	Lighting            string
	Assets              [AssetCount]bool
}

// Default returns the settings a fresh session starts with.
func Default() RenderSettings {
	return RenderSettings{
		AntiAliasingSamples: DefaultAntiAliasingSamples,
		ShadowMapResolution: DefaultShadowMapResolution,
		ShadowDrawDistance:  DefaultShadowDrawDistance,
		Lighting:            DefaultLighting,
	}
}

// Asset reports whether the given asset category is enabled.
func (s RenderSettings) Asset(a Asset) bool {
	if !a.Valid() {
		return false
	}
	return s.Assets[a]
}

// =============================================================================
// Model
// =============================================================================

// Model is the mutable settings record of a UI session.
type Model struct {
	current RenderSettings
}

// New creates a model holding the default settings.
func New() *Model {
	return &Model{current: Default()}
}

// Snapshot returns a copy of the current settings.
func (m *Model) Snapshot() RenderSettings {
	return m.current
}

// Reset replaces the whole record with defaults.
func (m *Model) Reset() {
	m.current = Default()
}

// SetAntiAliasing sets the multisample count. The value must be one of
// [AntiAliasingSamples].
func (m *Model) SetAntiAliasing(samples int) error {
	for _, v := range AntiAliasingSamples {
		if v == samples {
			m.current.AntiAliasingSamples = samples
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unsupported anti-aliasing sample count %d", samples)
}

// SetAntiAliasingLabel sets the multisample count from a UI label such as
// "No", "2x", "4x" or "8x". The leading digit is the sample count.
func (m *Model) SetAntiAliasingLabel(label string) error {
	if label == "No" {
		return m.SetAntiAliasing(1)
	}
	if label == "" {
		return errors.New(errors.ErrCodeInvalidInput, "empty anti-aliasing label")
	}
	n, err := strconv.Atoi(label[:1])
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "unknown anti-aliasing label %q", label)
	}
	return m.SetAntiAliasing(n)
}

// SetShadowQuality sets the shadow map resolution from a quality tier.
func (m *Model) SetShadowQuality(q Quality) error {
	v, err := shadowResolutions.lookup(q)
	if err != nil {
		return err
	}
	m.current.ShadowMapResolution = v
	return nil
}

// SetShadowDistance sets the shadow draw distance from a quality tier.
func (m *Model) SetShadowDistance(q Quality) error {
	v, err := shadowDistances.lookup(q)
	if err != nil {
		return err
	}
	m.current.ShadowDrawDistance = v
	return nil
}

// SetAmbientOcclusion enables or disables SSAO.
func (m *Model) SetAmbientOcclusion(enabled bool) {
	m.current.AmbientOcclusion = enabled
}

// SetAmbientOcclusionLabel enables SSAO when label is "SSAO" and disables it
// for any other label ("Off", "None", ...).
func (m *Model) SetAmbientOcclusionLabel(label string) {
	m.SetAmbientOcclusion(label == "SSAO")
}

// SetLighting stores the lighting preset label verbatim.
func (m *Model) SetLighting(label string) {
	m.current.Lighting = label
}

// SetAsset enables or disables one asset category. Setting the same value
// twice leaves the model unchanged.
func (m *Model) SetAsset(a Asset, enabled bool) error {
	if !a.Valid() {
		return errors.New(errors.ErrCodeInvalidAsset, "unknown asset category %d", int(a))
	}
	m.current.Assets[a] = enabled
	return nil
}

// SetAssetByName is SetAsset keyed by the category name ("mercedes", "tree", ...).
func (m *Model) SetAssetByName(name string, enabled bool) error {
	a, err := ParseAsset(name)
	if err != nil {
		return err
	}
	return m.SetAsset(a, enabled)
}

// =============================================================================
// Assets
// =============================================================================

// Asset is one optional category of scene models.
type Asset int

// Asset categories, in argument order.
const (
	AssetMercedes Asset = iota
	AssetSupercar
	AssetHouse
	AssetTree

	// AssetCount is the number of known categories.
	AssetCount
)

var assetNames = [AssetCount]string{"mercedes", "supercar", "house", "tree"}

// Assets returns every category in argument order.
func Assets() []Asset {
	out := make([]Asset, AssetCount)
	for i := range out {
		out[i] = Asset(i)
	}
	return out
}

// Valid reports whether a is a known category.
func (a Asset) Valid() bool {
	return a >= 0 && a < AssetCount
}

func (a Asset) String() string {
	if !a.Valid() {
		return "asset(" + strconv.Itoa(int(a)) + ")"
	}
	return assetNames[a]
}

// ParseAsset resolves a category name, case-insensitively. A trailing
// "models" suffix is accepted so "mercedesModels" and "mercedes" are the same.
func ParseAsset(name string) (Asset, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "models")
	for i, n := range assetNames {
		if n == key {
			return Asset(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidAsset, "unknown asset category %q (must be one of %s)",
		name, strings.Join(assetNames[:], ", "))
}

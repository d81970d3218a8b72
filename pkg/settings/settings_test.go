package settings

import (
	"testing"

	"github.com/matzehuels/scenelaunch/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := New().Snapshot()

	if s.AntiAliasingSamples != 1 {
		t.Errorf("AntiAliasingSamples = %d, want 1", s.AntiAliasingSamples)
	}
	if s.ShadowMapResolution != 1024 {
		t.Errorf("ShadowMapResolution = %d, want 1024", s.ShadowMapResolution)
	}
	if s.ShadowDrawDistance != 10 {
		t.Errorf("ShadowDrawDistance = %d, want 10", s.ShadowDrawDistance)
	}
	if s.AmbientOcclusion {
		t.Error("AmbientOcclusion should default to off")
	}
	if s.Lighting != "Noon" {
		t.Errorf("Lighting = %q, want Noon", s.Lighting)
	}
	for _, a := range Assets() {
		if s.Asset(a) {
			t.Errorf("asset %s should default to off", a)
		}
	}
}

func TestQualityTables(t *testing.T) {
	tests := []struct {
		label    string
		resol    int
		distance int
	}{
		{"Low", 1024, 10},
		{"Medium", 2048, 20},
		{"Height", 4096, 40},
		{"Ultra", 8192, 60},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			q, err := ParseQuality(tt.label)
			if err != nil {
				t.Fatalf("ParseQuality(%q) error: %v", tt.label, err)
			}

			m := New()
			if err := m.SetShadowQuality(q); err != nil {
				t.Fatalf("SetShadowQuality() error: %v", err)
			}
			if err := m.SetShadowDistance(q); err != nil {
				t.Fatalf("SetShadowDistance() error: %v", err)
			}

			s := m.Snapshot()
			if s.ShadowMapResolution != tt.resol {
				t.Errorf("ShadowMapResolution = %d, want %d", s.ShadowMapResolution, tt.resol)
			}
			if s.ShadowDrawDistance != tt.distance {
				t.Errorf("ShadowDrawDistance = %d, want %d", s.ShadowDrawDistance, tt.distance)
			}
		})
	}
}

func TestInvalidQualityLabel(t *testing.T) {
	for _, label := range []string{"High", "low", "", "Extreme"} {
		t.Run(label, func(t *testing.T) {
			m := New()
			_ = m.SetShadowQuality(QualityUltra)
			before := m.Snapshot()

			err := m.SetShadowQuality(Quality(label))
			if !errors.Is(err, errors.ErrCodeInvalidQualityLabel) {
				t.Errorf("SetShadowQuality(%q) error = %v, want INVALID_QUALITY_LABEL", label, err)
			}
			err = m.SetShadowDistance(Quality(label))
			if !errors.Is(err, errors.ErrCodeInvalidQualityLabel) {
				t.Errorf("SetShadowDistance(%q) error = %v, want INVALID_QUALITY_LABEL", label, err)
			}
			if m.Snapshot() != before {
				t.Errorf("model changed after rejected label: got %+v, want %+v", m.Snapshot(), before)
			}

			if _, err := ParseQuality(label); err == nil {
				t.Errorf("ParseQuality(%q) should fail", label)
			}
		})
	}
}

func TestSetAntiAliasingLabel(t *testing.T) {
	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{"No", 1, false},
		{"2x", 2, false},
		{"4x", 4, false},
		{"8x", 8, false},
		{"3x", 1, true},
		{"x4", 1, true},
		{"", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			m := New()
			err := m.SetAntiAliasingLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetAntiAliasingLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if got := m.Snapshot().AntiAliasingSamples; got != tt.want {
				t.Errorf("AntiAliasingSamples = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetAmbientOcclusionLabel(t *testing.T) {
	m := New()
	m.SetAmbientOcclusionLabel("SSAO")
	if !m.Snapshot().AmbientOcclusion {
		t.Error("SSAO label should enable ambient occlusion")
	}
	m.SetAmbientOcclusionLabel("Off")
	if m.Snapshot().AmbientOcclusion {
		t.Error("non-SSAO label should disable ambient occlusion")
	}
}

func TestSetAssetIdempotent(t *testing.T) {
	m := New()
	if err := m.SetAsset(AssetHouse, true); err != nil {
		t.Fatalf("SetAsset() error: %v", err)
	}
	once := m.Snapshot()

	if err := m.SetAsset(AssetHouse, true); err != nil {
		t.Fatalf("SetAsset() error: %v", err)
	}
	if m.Snapshot() != once {
		t.Error("setting the same asset value twice should not change the model")
	}
	if !once.Asset(AssetHouse) {
		t.Error("house should be enabled")
	}
}

func TestSetAssetInvalid(t *testing.T) {
	m := New()
	if err := m.SetAsset(AssetCount, true); !errors.Is(err, errors.ErrCodeInvalidAsset) {
		t.Errorf("SetAsset(AssetCount) error = %v, want INVALID_ASSET", err)
	}
	if err := m.SetAsset(Asset(-1), true); !errors.Is(err, errors.ErrCodeInvalidAsset) {
		t.Errorf("SetAsset(-1) error = %v, want INVALID_ASSET", err)
	}
}

func TestParseAsset(t *testing.T) {
	tests := []struct {
		name    string
		want    Asset
		wantErr bool
	}{
		{"mercedes", AssetMercedes, false},
		{"mercedesModels", AssetMercedes, false},
		{"Supercar", AssetSupercar, false},
		{" house ", AssetHouse, false},
		{"treeModels", AssetTree, false},
		{"boat", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAsset(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAsset(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAsset(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	m := New()
	snap := m.Snapshot()

	m.SetLighting("Dusk")
	_ = m.SetAsset(AssetTree, true)

	if snap.Lighting != "Noon" || snap.Asset(AssetTree) {
		t.Errorf("snapshot changed after model mutation: %+v", snap)
	}
}

func TestReset(t *testing.T) {
	m := New()
	_ = m.SetAntiAliasing(8)
	_ = m.SetShadowQuality(QualityUltra)
	m.SetAmbientOcclusion(true)
	m.SetLighting("Night")
	_ = m.SetAssetByName("supercar", true)

	m.Reset()
	if m.Snapshot() != Default() {
		t.Errorf("Reset() left %+v, want defaults", m.Snapshot())
	}
}

func TestLightingPresetsStartWithRendererSkyboxes(t *testing.T) {
	want := []string{"Noon", "Clouds", "Sunset"}
	if len(LightingPresets) < len(want) {
		t.Fatalf("LightingPresets = %v", LightingPresets)
	}
	for i, w := range want {
		if LightingPresets[i] != w {
			t.Errorf("LightingPresets[%d] = %q, want %q", i, LightingPresets[i], w)
		}
	}
	if LightingPresets[0] != DefaultLighting {
		t.Errorf("first preset %q is not the default %q", LightingPresets[0], DefaultLighting)
	}
}

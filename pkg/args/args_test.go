package args

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/scenelaunch/pkg/settings"
)

func TestEncodeDefaults(t *testing.T) {
	got := String(settings.Default())
	want := "1 1024 10 0 Noon 0 0 0 0"
	if got != want {
		t.Errorf("String(Default()) = %q, want %q", got, want)
	}
}

func TestEncodeUserChoices(t *testing.T) {
	m := settings.New()
	if err := m.SetAntiAliasingLabel("4x"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetShadowQuality(settings.QualityMedium); err != nil {
		t.Fatal(err)
	}
	m.SetAmbientOcclusionLabel("SSAO")
	m.SetLighting("Dusk")
	if err := m.SetAsset(settings.AssetMercedes, true); err != nil {
		t.Fatal(err)
	}
	if err := m.SetAsset(settings.AssetTree, true); err != nil {
		t.Fatal(err)
	}

	got := Encode(m.Snapshot())
	want := []string{"4", "2048", "10", "1", "Dusk", "1", "0", "0", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode() = %v, want %v", got, want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	m := settings.New()
	_ = m.SetAntiAliasing(8)
	m.SetLighting("Sunset")
	snap := m.Snapshot()

	a, b := Encode(snap), Encode(snap)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Encode() not deterministic: %v vs %v", a, b)
	}
	if String(snap) != String(snap) {
		t.Error("String() not deterministic")
	}
}

func TestEncodeTokenOrder(t *testing.T) {
	// Mutate fields in reverse order; positions must not move.
	m := settings.New()
	_ = m.SetAsset(settings.AssetTree, true)
	_ = m.SetAsset(settings.AssetHouse, true)
	m.SetLighting("Night")
	m.SetAmbientOcclusion(true)
	_ = m.SetShadowDistance(settings.QualityUltra)
	_ = m.SetShadowQuality(settings.QualityHeight)
	_ = m.SetAntiAliasing(2)

	got := Encode(m.Snapshot())
	if len(got) != Count {
		t.Fatalf("len(Encode()) = %d, want %d", len(got), Count)
	}

	want := map[string]string{
		"aaSamples":  "2",
		"shadowDim":  "4096",
		"shadowDist": "60",
		"ssao":       "1",
		"lighting":   "Night",
		"mercedes":   "0",
		"supercar":   "0",
		"house":      "1",
		"tree":       "1",
	}
	for i, name := range Names {
		if got[i] != want[name] {
			t.Errorf("token %d (%s) = %q, want %q", i, name, got[i], want[name])
		}
	}
}

func TestEncodeToggleIdempotent(t *testing.T) {
	m := settings.New()
	_ = m.SetAsset(settings.AssetSupercar, true)
	first := Encode(m.Snapshot())
	_ = m.SetAsset(settings.AssetSupercar, true)
	second := Encode(m.Snapshot())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("toggling twice changed encoding: %v vs %v", first, second)
	}
}

func TestEncodeLightingWithSpaces(t *testing.T) {
	s := settings.Default()
	s.Lighting = "Late Dusk"

	got := Encode(s)
	if got[4] != "Late Dusk" {
		t.Errorf("lighting token = %q, want it kept as one argument", got[4])
	}
	if !strings.Contains(String(s), " Late Dusk ") {
		t.Errorf("String() = %q, want label unescaped", String(s))
	}
}

// Package args encodes render settings into the renderer's positional
// command line.
//
// The renderer reads nine positional arguments:
//
//	<aaSamples> <shadowDim> <shadowDist> <ssao:0|1> <lighting> <mercedes:0|1> <supercar:0|1> <house:0|1> <tree:0|1>
//
// [Encode] produces them as an argument vector handed straight to process
// creation, so the lighting label is never re-split or quoted. [String] joins
// them with single spaces for display.
package args

import (
	"strconv"
	"strings"

	"github.com/matzehuels/scenelaunch/pkg/settings"
)

// Count is the number of positional arguments the renderer expects.
const Count = 5 + int(settings.AssetCount)

// Names labels each position, in order.
var Names = [Count]string{
	"aaSamples", "shadowDim", "shadowDist", "ssao", "lighting",
	"mercedes", "supercar", "house", "tree",
}

// Encode converts a settings snapshot into the renderer's argument vector.
// It performs no validation.
func Encode(s settings.RenderSettings) []string {
	out := make([]string, 0, Count)
	out = append(out,
		strconv.Itoa(s.AntiAliasingSamples),
		strconv.Itoa(s.ShadowMapResolution),
		strconv.Itoa(s.ShadowDrawDistance),
		flag(s.AmbientOcclusion),
		s.Lighting,
	)
	for _, a := range settings.Assets() {
		out = append(out, flag(s.Asset(a)))
	}
	return out
}

// String returns the legacy single-string command line.
func String(s settings.RenderSettings) string {
	return strings.Join(Encode(s), " ")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

package settings

import (
	"strings"

	"github.com/matzehuels/scenelaunch/pkg/errors"
)

// Quality is a tier label selected in the UI.
type Quality string

// Quality tiers. QualityHeight is the third tier; its label is kept as the UI
// sends it.
const (
	QualityLow    Quality = "Low"
	QualityMedium Quality = "Medium"
	QualityHeight Quality = "Height"
	QualityUltra  Quality = "Ultra"
)

// Qualities returns the tiers from lowest to highest.
func Qualities() []Quality {
	return []Quality{QualityLow, QualityMedium, QualityHeight, QualityUltra}
}

// ParseQuality checks that label is a known tier. Matching is exact.
func ParseQuality(label string) (Quality, error) {
	q := Quality(label)
	for _, known := range Qualities() {
		if q == known {
			return q, nil
		}
	}
	return "", invalidQuality(label)
}

// qualityTable maps each tier to a concrete value, in tier order.
type qualityTable [4]int

var (
	shadowResolutions = qualityTable{1024, 2048, 4096, 8192}
	shadowDistances   = qualityTable{10, 20, 40, 60}
)

func (t qualityTable) lookup(q Quality) (int, error) {
	for i, known := range Qualities() {
		if q == known {
			return t[i], nil
		}
	}
	return 0, invalidQuality(string(q))
}

// ShadowResolution returns the shadow map resolution of a tier.
func ShadowResolution(q Quality) (int, error) { return shadowResolutions.lookup(q) }

// ShadowDistance returns the shadow draw distance of a tier.
func ShadowDistance(q Quality) (int, error) { return shadowDistances.lookup(q) }

func invalidQuality(label string) error {
	names := make([]string, 0, 4)
	for _, q := range Qualities() {
		names = append(names, string(q))
	}
	return errors.New(errors.ErrCodeInvalidQualityLabel, "unknown quality label %q (must be one of %s)",
		label, strings.Join(names, ", "))
}

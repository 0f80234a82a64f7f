package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bake/internal/adapters/detector"
)

func TestResolveMode_Override(t *testing.T) {
	assert.Equal(t, detector.ModePretty,
		detector.ResolveMode(detector.ModeLinear, "pretty"))
	assert.Equal(t, detector.ModeLinear,
		detector.ResolveMode(detector.ModePretty, "linear"))
	assert.Equal(t, detector.ModeLinear,
		detector.ResolveMode(detector.ModePretty, "ci"))
}

func TestResolveMode_AutoKeepsDetected(t *testing.T) {
	assert.Equal(t, detector.ModeLinear,
		detector.ResolveMode(detector.ModeLinear, "auto"))
	assert.Equal(t, detector.ModePretty,
		detector.ResolveMode(detector.ModePretty, ""))
}

func TestResolveMode_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, detector.ModeLinear,
		detector.ResolveMode(detector.ModeLinear, "holographic"))
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
}

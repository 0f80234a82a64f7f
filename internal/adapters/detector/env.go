// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty forces the styled interactive renderer.
	ModePretty
	// ModeLinear forces the linear CI renderer.
	ModeLinear
)

// DetectEnvironment returns the recommended output mode based on the
// environment: linear when stdout is not a TTY or a CI variable is set,
// pretty otherwise.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModePretty
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "linear", "ci":
		return ModeLinear
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}

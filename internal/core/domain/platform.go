package domain

import "runtime"

// Platform identifies the family of operating system a task targets.
type Platform string

const (
	// PlatformAny matches every platform. Used as a task predicate.
	PlatformAny Platform = "any"
	// PlatformWindows matches Windows hosts.
	PlatformWindows Platform = "windows"
	// PlatformPOSIX matches every non-Windows host.
	PlatformPOSIX Platform = "posix"
)

// DetectPlatform returns the platform of the current host.
func DetectPlatform() Platform {
	if runtime.GOOS == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

// ParsePlatform converts a user-supplied platform name into a Platform.
// An empty string or "auto" resolves to the detected host platform.
func ParsePlatform(s string) (Platform, error) {
	switch s {
	case "", "auto":
		return DetectPlatform(), nil
	case string(PlatformWindows):
		return PlatformWindows, nil
	case string(PlatformPOSIX):
		return PlatformPOSIX, nil
	default:
		return "", ErrUnknownPlatform
	}
}

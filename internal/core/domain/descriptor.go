package domain

import "time"

// Descriptor is the declarative packaging definition loaded from bake.yaml.
// It names the package, the source-control identity used during the build,
// the packages assembled alongside, the staged files to exclude and the
// Windows installer upgrade code.
type Descriptor struct {
	Name         string
	Identity     Identity
	ToolVersion  string
	InstallDir   string
	Dependencies []string
	Exclusions   []string
	MSI          MSI
}

// MSI holds the Windows installer settings.
type MSI struct {
	// UpgradeCode is the fixed identifier the installer format requires to
	// allow in-place upgrades between package versions.
	UpgradeCode string
}

// ResolveInstallDir returns the configured install directory, falling back to
// the platform convention: /opt/<name> on POSIX, C:\<name> on Windows.
func (d Descriptor) ResolveInstallDir(platform Platform) string {
	if d.InstallDir != "" {
		return d.InstallDir
	}
	if platform == PlatformWindows {
		return `C:\` + d.Name
	}
	return "/opt/" + d.Name
}

// BuildIteration is the fixed iteration of every produced package.
const BuildIteration = 1

// buildVersionLayout renders a timestamp as YYYYMMDDhhmmss.
const buildVersionLayout = "20060102150405"

// BuildVersion stamps a package version from the build start time in UTC.
func BuildVersion(now time.Time) string {
	return now.UTC().Format(buildVersionLayout)
}

// Manifest describes one assembled package: the stamped version, the target
// platform and the digests of every staged file that survived exclusion.
type Manifest struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Iteration    int           `yaml:"iteration"`
	Platform     Platform      `yaml:"platform"`
	InstallDir   string        `yaml:"installDir"`
	Dependencies []string      `yaml:"dependencies,omitempty"`
	UpgradeCode  string        `yaml:"upgradeCode,omitempty"`
	Files        []ManifestFile `yaml:"files"`
}

// ManifestFile is one staged file entry with its xxhash64 content digest.
type ManifestFile struct {
	Path   string `yaml:"path"`
	Size   int64  `yaml:"size"`
	Digest string `yaml:"digest"`
}

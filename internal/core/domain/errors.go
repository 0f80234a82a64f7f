package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownPlatform is returned when a platform name cannot be parsed.
	ErrUnknownPlatform = zerr.New("unknown platform, expected 'windows' or 'posix'")

	// ErrConfigNotFound is returned when no bake.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find bake.yaml")

	// ErrConfigReadFailed is returned when the descriptor file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the descriptor file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingPackageName is returned when the descriptor has no package name.
	ErrMissingPackageName = zerr.New("missing package name")

	// ErrInvalidPackageName is returned when a package name is invalid.
	ErrInvalidPackageName = zerr.New("package name can only contain alphanumeric characters, hyphens and underscores")

	// ErrInvalidUpgradeCode is returned when the MSI upgrade code is not a GUID.
	ErrInvalidUpgradeCode = zerr.New("invalid MSI upgrade code, expected a GUID")

	// ErrInvalidIdentity is returned when the configured identity email is malformed.
	ErrInvalidIdentity = zerr.New("invalid identity email")

	// ErrPipelineFailed is returned when the pipeline aborts on a failing task.
	ErrPipelineFailed = zerr.New("pipeline execution failed")

	// ErrTaskFailed is returned when a single task exits non-zero.
	ErrTaskFailed = zerr.New("task execution failed")

	// ErrStagingNotFound is returned when the staged install tree does not exist.
	ErrStagingNotFound = zerr.New("staging directory not found")

	// ErrManifestWriteFailed is returned when the package manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write package manifest")
)

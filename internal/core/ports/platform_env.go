package ports

import "go.trai.ch/bake/internal/core/domain"

// PlatformEnv supplies the per-platform environment table applied to every
// task. It replaces inline platform conditionals with an injected strategy,
// so plans stay declarative and testable on any host.
//
//go:generate mockgen -source=platform_env.go -destination=mocks/mock_platform_env.go -package=mocks
type PlatformEnv interface {
	// Environment returns the environment variables for the platform in
	// "KEY=VALUE" format. PATH entries are prepended to the inherited PATH
	// by the executor.
	Environment(platform domain.Platform) []string
}

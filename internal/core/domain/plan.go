package domain

import "strings"

// Identity is the source-control identity configured before the build so that
// automated commits made during it succeed. It is written into the repository
// configuration, never the host-global one.
type Identity struct {
	Email string
	Name  string
}

// Default identity used when the descriptor does not configure one.
const (
	DefaultIdentityEmail = "builder@bake.invalid"
	DefaultIdentityName  = "bake builder"
)

// ReducedParallelismVar limits the test harness of the built toolchain to a
// single thread. The legacy orchestrator (major version 12) ran without it;
// every other version needs it to keep functional tests stable.
const (
	ReducedParallelismVar   = "RUST_TEST_THREADS"
	ReducedParallelismValue = "1"
)

// LegacyToolMajor is the orchestration-tool major version that does not
// receive the reduced-parallelism hint.
const LegacyToolMajor = "12"

// PlanSpec carries the inputs needed to derive the build plan.
type PlanSpec struct {
	RepoPath    string
	Platform    Platform
	ToolVersion string
	Identity    Identity
}

// NewPlan returns the ordered, platform-filtered task sequence for the spec.
// Every task runs in the repository checkout. The order is fixed: clean,
// identity configuration, build, test, behavioral test. On Windows the
// separate test steps are folded into the build, so they never appear.
func NewPlan(spec PlanSpec) []Task {
	identity := spec.Identity
	if identity.Email == "" {
		identity.Email = DefaultIdentityEmail
	}
	if identity.Name == "" {
		identity.Name = DefaultIdentityName
	}

	testEnv := map[string]string{}
	if ReducedParallelism(spec.ToolVersion) {
		testEnv[ReducedParallelismVar] = ReducedParallelismValue
	}

	all := []Task{
		{
			Name:       "clean",
			Command:    []string{"cargo", "clean"},
			WorkingDir: spec.RepoPath,
			Only:       PlatformAny,
		},
		{
			Name:       "configure-identity-email",
			Command:    []string{"git", "config", "user.email", identity.Email},
			WorkingDir: spec.RepoPath,
			Only:       PlatformAny,
		},
		{
			Name:       "configure-identity-name",
			Command:    []string{"git", "config", "user.name", identity.Name},
			WorkingDir: spec.RepoPath,
			Only:       PlatformAny,
		},
		{
			Name:        "build",
			Command:     []string{"cargo", "build", "--release"},
			WorkingDir:  spec.RepoPath,
			Environment: testEnv,
			Only:        PlatformAny,
		},
		{
			Name:        "test",
			Command:     []string{"cargo", "test", "--release"},
			WorkingDir:  spec.RepoPath,
			Environment: testEnv,
			Only:        PlatformPOSIX,
		},
		{
			Name:       "functional-test",
			Command:    []string{"make", "functional"},
			WorkingDir: spec.RepoPath,
			Only:       PlatformPOSIX,
		},
	}

	plan := make([]Task, 0, len(all))
	for _, task := range all {
		if task.AppliesTo(spec.Platform) {
			plan = append(plan, task)
		}
	}
	return plan
}

// ReducedParallelism reports whether the reduced-parallelism hint applies for
// the given orchestration-tool version. Only the legacy major version is
// exempt; an unknown or empty version gets the hint.
func ReducedParallelism(toolVersion string) bool {
	return toolMajor(toolVersion) != LegacyToolMajor
}

// toolMajor extracts the major component of a version string ("13.0" -> "13").
func toolMajor(version string) string {
	major, _, _ := strings.Cut(version, ".")
	return major
}

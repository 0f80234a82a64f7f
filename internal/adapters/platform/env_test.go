package platform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/platform"
	"go.trai.ch/bake/internal/core/domain"
)

func envMap(t *testing.T, env []string) map[string]string {
	t.Helper()
	m := make(map[string]string, len(env))
	for _, e := range env {
		k, v, ok := strings.Cut(e, "=")
		require.True(t, ok, "malformed entry %q", e)
		m[k] = v
	}
	return m
}

func TestEnv_POSIXIsEmpty(t *testing.T) {
	env := platform.NewEnv().Environment(domain.PlatformPOSIX)
	assert.Empty(t, env)
}

func TestEnv_WindowsTable(t *testing.T) {
	env := platform.NewEnv().Environment(domain.PlatformWindows)
	m := envMap(t, env)

	assert.Contains(t, m, "PATH")
	assert.Contains(t, m, "TOOLCHAIN_HOME")
	assert.Contains(t, m, "INCLUDE")
	assert.Contains(t, m, "LIB")
	assert.Contains(t, m, "SSL_CERT_FILE")
}

// The original recipe carried duplicated PATH entries; the table must not.
func TestEnv_WindowsPathDeduplicated(t *testing.T) {
	m := envMap(t, platform.NewEnv().Environment(domain.PlatformWindows))

	seen := make(map[string]bool)
	for _, entry := range strings.Split(m["PATH"], ";") {
		assert.False(t, seen[entry], "duplicated PATH entry %q", entry)
		seen[entry] = true
	}
}

func TestEnv_Deterministic(t *testing.T) {
	e := platform.NewEnv()
	assert.Equal(t,
		e.Environment(domain.PlatformWindows),
		e.Environment(domain.PlatformWindows))
}

func TestEnv_NoUnquotedArtifacts(t *testing.T) {
	for _, entry := range platform.NewEnv().Environment(domain.PlatformWindows) {
		assert.NotContains(t, entry, `"`, "quoting artifact in %q", entry)
	}
}

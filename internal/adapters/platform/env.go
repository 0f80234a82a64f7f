// Package platform provides the per-platform environment tables applied to
// every build task.
package platform

import (
	"sort"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
)

// Env implements ports.PlatformEnv with static per-platform tables.
//
// POSIX hosts rely on the standard toolchain discovery conventions, so their
// table is empty. Windows lacks them: the build tool only finds the compiler,
// linker inputs and the TLS trust store through explicit variables.
type Env struct {
	tables map[domain.Platform]map[string]string
}

// Windows toolchain locations. Each PATH entry appears exactly once; the
// executor prepends the joined list to the inherited PATH.
var windowsPathEntries = []string{
	`C:\toolchain\rust\bin`,
	`C:\toolchain\mingw64\bin`,
	`C:\Program Files\Git\cmd`,
	`C:\wix\bin`,
}

var windowsTable = map[string]string{
	"PATH":           strings.Join(windowsPathEntries, ";"),
	"TOOLCHAIN_HOME": `C:\toolchain\rust`,
	"INCLUDE":        `C:\toolchain\mingw64\include`,
	"LIB":            `C:\toolchain\mingw64\lib`,
	"SSL_CERT_FILE":  `C:\toolchain\mingw64\ssl\certs\cacert.pem`,
}

// NewEnv creates the default platform environment tables.
func NewEnv() *Env {
	return &Env{
		tables: map[domain.Platform]map[string]string{
			domain.PlatformWindows: windowsTable,
			domain.PlatformPOSIX:   {},
		},
	}
}

// Environment returns the environment variables for the platform in
// "KEY=VALUE" format, sorted for deterministic output.
func (e *Env) Environment(platform domain.Platform) []string {
	table := e.tables[platform]

	env := make([]string, 0, len(table))
	for k, v := range table {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

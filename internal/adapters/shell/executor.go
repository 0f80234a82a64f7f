// Package shell provides a process-based executor for running tasks.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
//
// Output is streamed through plain pipes rather than a PTY: the pipeline is
// strictly sequential and its output must be capturable for error reporting
// on every platform, Windows included.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the task's command and waits for it to complete.
//
// The final environment is resolved from an allow-listed copy of the system
// environment, the platform environment table (PATH entries prepended) and
// the task's own overrides, in that order.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error {
	if len(task.Command) == 0 {
		return nil
	}

	name := task.Command[0]
	args := task.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env, task.Environment)

	// Resolve the executable against the resolved PATH, not the inherited
	// one: on Windows the toolchain lives in the platform table's entries.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // plan-provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if task.WorkingDir != "" {
		cmd.Dir = task.WorkingDir
	}
	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}

// allowListedEnvVars are the system environment variables tasks may inherit.
// Everything else comes from the platform table or the task itself, keeping
// builds reproducible across hosts. The Windows entries are required for
// process creation and command resolution to work at all.
var allowListedEnvVars = map[string]struct{}{
	"HOME":        {},
	"TERM":        {},
	"USER":        {},
	"PATH":        {},
	"SYSTEMROOT":  {},
	"SYSTEMDRIVE": {},
	"COMSPEC":     {},
	"PATHEXT":     {},
	"TEMP":        {},
	"TMP":         {},
	"USERPROFILE": {},
	"HOMEDRIVE":   {},
	"HOMEPATH":    {},
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv, platformEnv []string, taskEnv map[string]string) []string {
	// 1. Start with the system environment (allow-list only)
	envMap := filterSystemEnv(sysEnv)

	// 2. Apply the platform table (prepend PATH)
	applyPlatformEnv(envMap, platformEnv)

	// 3. Apply task environment overrides
	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[strings.ToUpper(k)]; allowed {
				envMap[k] = v
			}
		}
	}
	return envMap
}

func applyPlatformEnv(envMap map[string]string, platformEnv []string) {
	for _, entry := range platformEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env. On Windows, PATHEXT extensions are tried for extensionless
// names, so "git" resolves to "git.exe".
func lookPath(file string, env []string) (string, error) {
	var path, pathext string
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok {
			switch strings.ToUpper(k) {
			case "PATH":
				path = v
			case "PATHEXT":
				pathext = v
			}
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
		if ext := findWithPathExt(candidate, pathext); ext != "" {
			return ext, nil
		}
	}
	return "", exec.ErrNotFound
}

// findWithPathExt tries the PATHEXT extensions for an extensionless candidate.
func findWithPathExt(candidate, pathext string) string {
	if runtime.GOOS != "windows" || pathext == "" {
		return ""
	}
	if filepath.Ext(candidate) != "" {
		return ""
	}
	for _, ext := range filepath.SplitList(pathext) {
		withExt := candidate + strings.ToLower(ext)
		if err := findExecutable(withExt); err == nil {
			return withExt
		}
	}
	return ""
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if runtime.GOOS == "windows" {
		if d.Mode().IsRegular() {
			return nil
		}
		return os.ErrPermission
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

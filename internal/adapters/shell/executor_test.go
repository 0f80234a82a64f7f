package shell_test

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/shell"
	"go.trai.ch/bake/internal/core/domain"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-task",
		Command:    []string{"sh", "-c", "echo line1; echo line2"},
		WorkingDir: tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	require.Contains(t, output, "line1")
	require.Contains(t, output, "line2")
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-cwd",
		Command:    []string{"pwd"},
		WorkingDir: tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), tmpDir)
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:    "test-env-task",
		Command: []string{"sh", "-c", "echo $MY_TEST_VAR"},
		Environment: map[string]string{
			"MY_TEST_VAR": "test-value-123",
		},
		WorkingDir: tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "test-value-123")
}

func TestExecutor_Execute_PlatformEnv(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-platform-env",
		Command:    []string{"sh", "-c", "echo $TOOLCHAIN_HOME"},
		WorkingDir: tmpDir,
	}

	platformEnv := []string{"TOOLCHAIN_HOME=/opt/toolchain"}
	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, platformEnv, &stdout, io.Discard)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "/opt/toolchain")
}

func TestExecutor_Execute_TaskEnvOverridesPlatformEnv(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:        "test-env-priority",
		Command:     []string{"sh", "-c", "echo $SHARED_VAR"},
		Environment: map[string]string{"SHARED_VAR": "from-task"},
		WorkingDir:  tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, []string{"SHARED_VAR=from-platform"}, &stdout, io.Discard)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "from-task")
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-fail",
		Command:    []string{"sh", "-c", "exit 42"},
		WorkingDir: tmpDir,
	}

	err := executor.Execute(context.Background(), task, nil, io.Discard, io.Discard)
	require.Error(t, err)
	require.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-invalid",
		Command:    []string{"nonexistent-command-xyz123"},
		WorkingDir: tmpDir,
	}

	err := executor.Execute(context.Background(), task, nil, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-empty",
		Command:    []string{},
		WorkingDir: tmpDir,
	}

	err := executor.Execute(context.Background(), task, nil, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_StderrSeparated(t *testing.T) {
	skipOnWindows(t)
	executor := shell.NewExecutor()
	tmpDir := t.TempDir()

	task := &domain.Task{
		Name:       "test-stderr",
		Command:    []string{"sh", "-c", "echo out; echo err >&2"},
		WorkingDir: tmpDir,
	}

	var stdout, stderr bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "out")
	require.Contains(t, stderr.String(), "err")
	require.False(t, strings.Contains(stdout.String(), "err"))
}

package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment_AllowList(t *testing.T) {
	sysEnv := []string{
		"PATH=/usr/bin",
		"HOME=/home/builder",
		"SECRET_TOKEN=should-not-leak",
	}

	env := resolveEnvironment(sysEnv, nil, nil)

	assert.Contains(t, env, "PATH=/usr/bin")
	assert.Contains(t, env, "HOME=/home/builder")
	for _, e := range env {
		assert.False(t, strings.HasPrefix(e, "SECRET_TOKEN="), "allow-list leaked: %s", e)
	}
}

func TestResolveEnvironment_PathPrepend(t *testing.T) {
	sysEnv := []string{"PATH=/usr/bin"}
	platformEnv := []string{"PATH=/opt/toolchain/bin"}

	env := resolveEnvironment(sysEnv, platformEnv, nil)

	sep := string(os.PathListSeparator)
	assert.Contains(t, env, "PATH=/opt/toolchain/bin"+sep+"/usr/bin")
}

func TestResolveEnvironment_PlatformPathWithoutSystemPath(t *testing.T) {
	env := resolveEnvironment(nil, []string{"PATH=/opt/toolchain/bin"}, nil)
	assert.Contains(t, env, "PATH=/opt/toolchain/bin")
}

func TestResolveEnvironment_TaskOverridesWin(t *testing.T) {
	sysEnv := []string{"HOME=/home/builder"}
	platformEnv := []string{"SSL_CERT_FILE=/etc/ssl/platform.pem"}
	taskEnv := map[string]string{"SSL_CERT_FILE": "/etc/ssl/task.pem"}

	env := resolveEnvironment(sysEnv, platformEnv, taskEnv)
	assert.Contains(t, env, "SSL_CERT_FILE=/etc/ssl/task.pem")
}

func TestLookPath_FindsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit based lookup")
	}

	tmpDir := t.TempDir()
	bin := filepath.Join(tmpDir, "mytool")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	found, err := lookPath("mytool", []string{"PATH=" + tmpDir})
	require.NoError(t, err)
	assert.Equal(t, bin, found)
}

func TestLookPath_MissingExecutable(t *testing.T) {
	_, err := lookPath("definitely-not-here", []string{"PATH=" + t.TempDir()})
	require.Error(t, err)
}

func TestLookPath_NoPath(t *testing.T) {
	_, err := lookPath("mytool", nil)
	require.Error(t, err)
}

func TestLookPath_SkipsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit based lookup")
	}

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "mytool"), []byte("data"), 0o644))

	_, err := lookPath("mytool", []string{"PATH=" + tmpDir})
	require.Error(t, err)
}

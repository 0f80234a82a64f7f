package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/config"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func writeBakefile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bake.yaml"), []byte(content), 0o644))
}

func TestLoader_Load_FullDescriptor(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, `
name: delivery-cli
identity:
  email: builder@example.com
  name: Builder
toolVersion: "13.0"
installDir: /usr/local/delivery-cli
dependencies:
  - openssl
  - cacerts
exclusions:
  - "**/*.pdb"
  - "embedded/docs/**"
msi:
  upgradeCode: 2F64963E-6B36-4BE5-B5DF-BFB51E0B97AC
`)

	desc, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "delivery-cli", desc.Name)
	assert.Equal(t, "builder@example.com", desc.Identity.Email)
	assert.Equal(t, "Builder", desc.Identity.Name)
	assert.Equal(t, "13.0", desc.ToolVersion)
	assert.Equal(t, "/usr/local/delivery-cli", desc.InstallDir)
	assert.Equal(t, []string{"openssl", "cacerts"}, desc.Dependencies)
	assert.Equal(t, []string{"**/*.pdb", "embedded/docs/**"}, desc.Exclusions)
	assert.Equal(t, "2F64963E-6B36-4BE5-B5DF-BFB51E0B97AC", desc.MSI.UpgradeCode)
}

func TestLoader_Load_MinimalDescriptor(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "name: delivery-cli\n")

	desc, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "delivery-cli", desc.Name)
	assert.Empty(t, desc.Identity.Email)
	assert.Empty(t, desc.MSI.UpgradeCode)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "name: delivery-cli\n")

	nested := filepath.Join(tmpDir, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	desc, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "delivery-cli", desc.Name)
}

func TestLoader_Load_WarnsWhenConfigInParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).MinTimes(1)

	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "name: delivery-cli\n")
	nested := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, err := config.NewLoader(mockLogger).Load(nested)
	require.NoError(t, err)
}

func TestLoader_Load_NoWarnWhenConfigInRepoRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No Warn expectation: any warning here fails the test.
	mockLogger := mocks.NewMockLogger(ctrl)

	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "name: delivery-cli\n")

	_, err := config.NewLoader(mockLogger).Load(tmpDir)
	require.NoError(t, err)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_MissingName(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "dependencies: [openssl]\n")

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrMissingPackageName)
}

func TestLoader_Load_InvalidName(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "name: \"not/a/name\"\n")

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrInvalidPackageName)
}

func TestLoader_Load_InvalidEmail(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, `
name: delivery-cli
identity:
  email: not-an-email
`)

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestLoader_Load_InvalidUpgradeCode(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, `
name: delivery-cli
msi:
  upgradeCode: not-a-guid
`)

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrInvalidUpgradeCode)
}

func TestLoader_Load_BracedUpgradeCode(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, `
name: delivery-cli
msi:
  upgradeCode: "{2F64963E-6B36-4BE5-B5DF-BFB51E0B97AC}"
`)

	desc, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "{2F64963E-6B36-4BE5-B5DF-BFB51E0B97AC}", desc.MSI.UpgradeCode)
}

func TestLoader_Load_MismatchedBraceUpgradeCode(t *testing.T) {
	for _, code := range []string{
		"{2F64963E-6B36-4BE5-B5DF-BFB51E0B97AC",
		"2F64963E-6B36-4BE5-B5DF-BFB51E0B97AC}",
	} {
		tmpDir := t.TempDir()
		writeBakefile(t, tmpDir, `
name: delivery-cli
msi:
  upgradeCode: "`+code+`"
`)

		_, err := newLoader(t).Load(tmpDir)
		require.ErrorIs(t, err, domain.ErrInvalidUpgradeCode, "code %q", code)
	}
}

func TestLoader_Load_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeBakefile(t, tmpDir, "name: [unclosed\n")

	_, err := newLoader(t).Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

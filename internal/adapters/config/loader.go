// Package config provides the packaging descriptor loader for bake.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

const guidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

var (
	validPackageNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")
	// Brace-wrapped GUIDs come from installer tooling; bare ones from
	// hand-edited files. Braces must come as a pair or not at all.
	validUpgradeCodeRegex = regexp.MustCompile(`^(\{` + guidPattern + `\}|` + guidPattern + `)$`)
)

// Load finds and parses the bake.yaml descriptor, walking up from path.
func (l *Loader) Load(path string) (*domain.Descriptor, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var bakefile Bakefile
	if err := readAndUnmarshalYAML(configPath, &bakefile); err != nil {
		return nil, err
	}

	desc := &domain.Descriptor{
		Name: bakefile.Name,
		Identity: domain.Identity{
			Email: bakefile.Identity.Email,
			Name:  bakefile.Identity.Name,
		},
		ToolVersion:  bakefile.ToolVersion,
		InstallDir:   bakefile.InstallDir,
		Dependencies: bakefile.Dependencies,
		Exclusions:   bakefile.Exclusions,
		MSI:          domain.MSI{UpgradeCode: bakefile.MSI.UpgradeCode},
	}

	if err := validate(desc); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}

	return desc, nil
}

// findConfiguration walks up the directory tree looking for bake.yaml.
func (l *Loader) findConfiguration(path string) (string, error) {
	currentDir, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve repository path")
	}

	startDir := currentDir
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			if currentDir != startDir {
				l.Logger.Warn("using " + domain.ConfigFileName + " from " + currentDir)
			}
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "configuration lookup failed"), "path", path)
}

// validate keeps the sentinel as the cause of every returned error, so
// errors.Is matching survives the metadata layers added on top.
func validate(desc *domain.Descriptor) error {
	if desc.Name == "" {
		return zerr.Wrap(domain.ErrMissingPackageName, "invalid descriptor")
	}
	if !validPackageNameRegex.MatchString(desc.Name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "invalid descriptor"), "name", desc.Name)
	}
	if desc.Identity.Email != "" && !strings.Contains(desc.Identity.Email, "@") {
		return zerr.With(zerr.Wrap(domain.ErrInvalidIdentity, "invalid descriptor"), "email", desc.Identity.Email)
	}
	if code := desc.MSI.UpgradeCode; code != "" && !validUpgradeCodeRegex.MatchString(code) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidUpgradeCode, "invalid descriptor"), "upgrade_code", code)
	}
	return nil
}

func readAndUnmarshalYAML(path string, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path resolved by findConfiguration
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	return nil
}

// Package packager assembles package manifests from staged install trees.
package packager

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	ignore "github.com/sabhiram/go-gitignore"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Packager implements ports.Packager. It walks the staged install tree,
// filters it through the descriptor's exclusion globs, digests every
// surviving file and writes the manifest atomically.
type Packager struct {
	logger ports.Logger

	// now is swappable for deterministic version stamps in tests.
	now func() time.Time
}

// NewPackager creates a new Packager.
func NewPackager(logger ports.Logger) *Packager {
	return &Packager{
		logger: logger,
		now:    time.Now,
	}
}

// Assemble builds the manifest for one staged tree and writes it to outPath.
func (p *Packager) Assemble(ctx context.Context, desc *domain.Descriptor, platform domain.Platform, stagingDir, outPath string) (*domain.Manifest, error) {
	info, err := os.Stat(stagingDir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrStagingNotFound, "cannot assemble package"), "path", stagingDir)
	}

	files, err := p.collectFiles(ctx, stagingDir, desc.Exclusions)
	if err != nil {
		return nil, err
	}

	manifest := &domain.Manifest{
		Name:         desc.Name,
		Version:      domain.BuildVersion(p.now()),
		Iteration:    domain.BuildIteration,
		Platform:     platform,
		InstallDir:   desc.ResolveInstallDir(platform),
		Dependencies: desc.Dependencies,
		Files:        files,
	}
	if platform == domain.PlatformWindows {
		manifest.UpgradeCode = desc.MSI.UpgradeCode
	}

	if err := p.writeManifest(manifest, outPath); err != nil {
		return nil, err
	}

	p.logger.Info(fmt.Sprintf("assembled %s %s with %d file(s)",
		manifest.Name, manifest.Version, len(manifest.Files)))

	return manifest, nil
}

// collectFiles walks the staged tree and returns the digested entries that
// survive the exclusion globs, sorted by path.
func (p *Packager) collectFiles(ctx context.Context, stagingDir string, exclusions []string) ([]domain.ManifestFile, error) {
	matcher := ignore.CompileIgnoreLines(exclusions...)

	var files []domain.ManifestFile

	err := filepath.WalkDir(stagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(stagingDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matcher.MatchesPath(rel) {
			return nil
		}

		entry, err := digestFile(path, rel)
		if err != nil {
			return err
		}
		files = append(files, entry)

		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to walk staging directory")
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// digestFile computes the xxhash64 content digest of one staged file.
func digestFile(path, rel string) (domain.ManifestFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ManifestFile{}, zerr.Wrap(err, "failed to open staged file")
	}
	defer f.Close()

	h := xxhash.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return domain.ManifestFile{}, zerr.Wrap(err, "failed to digest staged file")
	}

	return domain.ManifestFile{
		Path:   rel,
		Size:   size,
		Digest: fmt.Sprintf("%016x", h.Sum64()),
	}, nil
}

// writeManifest writes the manifest atomically via a temp file and rename.
func (p *Packager) writeManifest(manifest *domain.Manifest, outPath string) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.yaml")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		os.Remove(tmpPath)
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	return nil
}

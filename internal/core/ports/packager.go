package ports

import (
	"context"

	"go.trai.ch/bake/internal/core/domain"
)

// Packager assembles a package manifest from a staged install tree.
//
//go:generate mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	// Assemble stamps a version, filters the staged tree through the
	// descriptor's exclusion globs, digests the surviving files and writes
	// the manifest to outPath.
	Assemble(ctx context.Context, desc *domain.Descriptor, platform domain.Platform, stagingDir, outPath string) (*domain.Manifest, error)
}

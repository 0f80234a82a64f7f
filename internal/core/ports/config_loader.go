package ports

import "go.trai.ch/bake/internal/core/domain"

// ConfigLoader loads the packaging descriptor for a repository checkout.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds and parses the bake.yaml descriptor, walking up from path.
	Load(path string) (*domain.Descriptor, error)
}

package platform

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/core/ports"
)

// NodeID is the unique identifier for the platform environment Graft node.
const NodeID graft.ID = "adapter.platform_env"

func init() {
	graft.Register(graft.Node[ports.PlatformEnv]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PlatformEnv, error) {
			return NewEnv(), nil
		},
	})
}

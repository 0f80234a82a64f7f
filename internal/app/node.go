package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bake/internal/adapters/config"
	"go.trai.ch/bake/internal/adapters/logger"
	"go.trai.ch/bake/internal/adapters/packager"
	"go.trai.ch/bake/internal/adapters/platform"
	"go.trai.ch/bake/internal/adapters/shell"
	"go.trai.ch/bake/internal/core/ports"
)

// Components bundles the fully wired application with the pieces the entry
// point needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			platform.NodeID,
			packager.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			platformEnv, err := graft.Dep[ports.PlatformEnv](ctx)
			if err != nil {
				return nil, err
			}
			pkg, err := graft.Dep[ports.Packager](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, executor, log, platformEnv, pkg),
				Logger: log,
			}, nil
		},
	})
}

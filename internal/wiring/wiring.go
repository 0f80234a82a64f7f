// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bake/internal/adapters/config"
	_ "go.trai.ch/bake/internal/adapters/logger"
	_ "go.trai.ch/bake/internal/adapters/packager"
	_ "go.trai.ch/bake/internal/adapters/platform"
	_ "go.trai.ch/bake/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/bake/internal/app"
)

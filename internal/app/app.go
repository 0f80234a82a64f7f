// Package app implements the application layer for bake.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/bake/internal/adapters/detector"
	"go.trai.ch/bake/internal/adapters/linear"
	"go.trai.ch/bake/internal/adapters/pretty"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	platformEnv  ports.PlatformEnv
	packager     ports.Packager

	// rendererOverride replaces the detected renderer. Used for testing.
	rendererOverride ports.Renderer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	platformEnv ports.PlatformEnv,
	packager ports.Packager,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		platformEnv:  platformEnv,
		packager:     packager,
	}
}

// WithRenderer forces a specific renderer instead of environment detection.
// This is primarily used for testing.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.rendererOverride = r
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	RepoPath    string
	ToolVersion string
	OutputMode  string
}

// Run executes the build pipeline for the repository checkout.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	plan, platform, err := a.buildPlan(opts.RepoPath, "", opts.ToolVersion)
	if err != nil {
		return err
	}

	renderer := a.resolveRenderer(opts.OutputMode)
	runner := pipeline.NewRunner(a.executor, renderer, a.platformEnv)

	g, ctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Pipeline Routine
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Pipeline panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		if err := runner.Run(ctx, plan, platform); err != nil {
			return errors.Join(domain.ErrPipelineFailed, err)
		}
		return nil
	})

	return g.Wait()
}

// PlanOptions configuration for the Plan method.
type PlanOptions struct {
	RepoPath    string
	Platform    string
	ToolVersion string
}

// Plan derives the ordered task sequence without executing it.
func (a *App) Plan(_ context.Context, opts PlanOptions) ([]domain.Task, error) {
	plan, _, err := a.buildPlan(opts.RepoPath, opts.Platform, opts.ToolVersion)
	return plan, err
}

// PackageOptions configuration for the Package method.
type PackageOptions struct {
	RepoPath   string
	StagingDir string
	OutPath    string
}

// Package assembles the package manifest from a staged install tree.
func (a *App) Package(ctx context.Context, opts PackageOptions) (*domain.Manifest, error) {
	desc, err := a.configLoader.Load(repoPathOrCwd(opts.RepoPath))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	outPath := opts.OutPath
	if outPath == "" {
		outPath = domain.ManifestFileName
	}

	return a.packager.Assemble(ctx, desc, domain.DetectPlatform(), opts.StagingDir, outPath)
}

// buildPlan loads the descriptor and derives the platform-filtered plan.
// An explicit tool version takes precedence over the descriptor's.
func (a *App) buildPlan(repoPath, platformName, toolVersion string) ([]domain.Task, domain.Platform, error) {
	repoPath = repoPathOrCwd(repoPath)

	desc, err := a.configLoader.Load(repoPath)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	}

	platform, err := domain.ParsePlatform(platformName)
	if err != nil {
		return nil, "", err
	}

	if toolVersion == "" {
		toolVersion = desc.ToolVersion
	}

	plan := domain.NewPlan(domain.PlanSpec{
		RepoPath:    repoPath,
		Platform:    platform,
		ToolVersion: toolVersion,
		Identity:    desc.Identity,
	})

	return plan, platform, nil
}

func (a *App) resolveRenderer(outputMode string) ports.Renderer {
	if a.rendererOverride != nil {
		return a.rendererOverride
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)
	if mode == detector.ModePretty {
		return pretty.NewRenderer(os.Stdout, os.Stderr)
	}
	return linear.NewRenderer(os.Stdout, os.Stderr)
}

func repoPathOrCwd(repoPath string) string {
	if repoPath == "" {
		return "."
	}
	return repoPath
}

// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/bake/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task and waits for it to complete.
	//
	// The env parameter contains the platform environment table in
	// "KEY=VALUE" format; task-level overrides are applied on top of it.
	// Output is streamed to stdout/stderr as it is produced.
	//
	// It returns an error if the task exits non-zero, carrying the exit code.
	Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error
}

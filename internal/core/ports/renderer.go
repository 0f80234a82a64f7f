package ports

import (
	"context"
	"time"
)

// Renderer receives pipeline progress events and presents them to the user.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start prepares the renderer. It must be called before any event.
	Start(ctx context.Context) error
	// Stop terminates the renderer and flushes pending output.
	Stop() error
	// Wait blocks until the renderer has terminated.
	Wait() error

	// OnPlanEmit reports the ordered task names about to run.
	OnPlanEmit(tasks []string)
	// OnTaskStart reports that a task began executing.
	OnTaskStart(name string, startTime time.Time)
	// OnTaskLog streams a chunk of task output.
	OnTaskLog(name string, data []byte)
	// OnTaskComplete reports that a task finished, with its error if any.
	OnTaskComplete(name string, endTime time.Time, err error)
}

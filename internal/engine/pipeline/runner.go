// Package pipeline executes a build plan sequentially, stopping on the
// first failing task.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped indicates the task was never reached because an
	// earlier task failed.
	StatusSkipped TaskStatus = "Skipped"
)

// tailLimit bounds how much task output is attached to a failure.
const tailLimit = 4096

// Runner executes the tasks of a plan in order. Each task inherits the
// platform environment table and streams its output to the renderer.
type Runner struct {
	executor    ports.Executor
	renderer    ports.Renderer
	platformEnv ports.PlatformEnv

	mu         sync.RWMutex
	taskStatus map[string]TaskStatus
}

// NewRunner creates a new Runner with the given dependencies.
func NewRunner(executor ports.Executor, renderer ports.Renderer, platformEnv ports.PlatformEnv) *Runner {
	return &Runner{
		executor:    executor,
		renderer:    renderer,
		platformEnv: platformEnv,
		taskStatus:  make(map[string]TaskStatus),
	}
}

// Status returns the last observed status of a task.
func (r *Runner) Status(name string) TaskStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.taskStatus[name]
}

func (r *Runner) initTaskStatuses(tasks []domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range tasks {
		r.taskStatus[task.Name] = StatusPending
	}
}

func (r *Runner) updateStatus(name string, status TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskStatus[name] = status
}

// Run executes the plan in order on the given platform. It stops at the
// first failing task, marks the remainder skipped and returns an error
// naming the failed task.
func (r *Runner) Run(ctx context.Context, plan []domain.Task, platform domain.Platform) error {
	r.initTaskStatuses(plan)

	names := make([]string, len(plan))
	for i, task := range plan {
		names[i] = task.Name
	}
	r.renderer.OnPlanEmit(names)

	env := r.platformEnv.Environment(platform)

	for i := range plan {
		if err := ctx.Err(); err != nil {
			r.markRemainingSkipped(plan[i:])
			return err
		}

		task := &plan[i]
		if err := r.runTask(ctx, task, env); err != nil {
			r.markRemainingSkipped(plan[i+1:])
			return err
		}
	}

	return nil
}

func (r *Runner) runTask(ctx context.Context, task *domain.Task, env []string) error {
	r.updateStatus(task.Name, StatusRunning)
	r.renderer.OnTaskStart(task.Name, time.Now())

	tail := newTailBuffer(tailLimit)
	sink := &logWriter{renderer: r.renderer, name: task.Name, tail: tail}

	err := r.executor.Execute(ctx, task, env, sink, sink)
	r.renderer.OnTaskComplete(task.Name, time.Now(), err)

	if err != nil {
		r.updateStatus(task.Name, StatusFailed)
		// Join keeps the sentinel in the chain for errors.Is matching.
		failure := zerr.With(
			zerr.Wrap(errors.Join(domain.ErrTaskFailed, err), "task failed"),
			"task", task.Name,
		)
		if output := tail.String(); output != "" {
			failure = zerr.With(failure, "output", output)
		}
		return failure
	}

	r.updateStatus(task.Name, StatusCompleted)
	return nil
}

func (r *Runner) markRemainingSkipped(tasks []domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range tasks {
		r.taskStatus[task.Name] = StatusSkipped
	}
}

// logWriter forwards task output chunks to the renderer while keeping a
// bounded tail for failure diagnostics.
type logWriter struct {
	renderer ports.Renderer
	name     string
	tail     *tailBuffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.renderer.OnTaskLog(w.name, p)
	w.tail.Write(p)
	return len(p), nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   bytes.Buffer
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) Write(p []byte) {
	t.buf.Write(p)
	if t.buf.Len() > t.limit {
		data := t.buf.Bytes()
		trimmed := make([]byte, t.limit)
		copy(trimmed, data[len(data)-t.limit:])
		t.buf.Reset()
		t.buf.Write(trimmed)
	}
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}

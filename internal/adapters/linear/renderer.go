// Package linear provides a synchronous, line-buffered renderer for CI environments.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/bake/internal/ui/output"
)

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It outputs linear, chronological logs with task name prefixes.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	tasks   map[string]*taskState
	buffers map[string]*bytes.Buffer
}

type taskState struct {
	startTime time.Time
}

// NewRenderer creates a new linear Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	out := termenv.NewOutput(stderr, termenv.WithProfile(output.ColorProfileANSI()))

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  out,
		tasks:   make(map[string]*taskState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op for the linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.buffers {
		r.flushBufferLocked(name)
	}

	return nil
}

// Wait is a no-op for the linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned task sequence.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning to run %d task(s)\n", len(tasks))
	for i, name := range tasks {
		_, _ = fmt.Fprintf(r.stderr, "  %d. %s\n", i+1, name)
	}
}

// OnTaskStart prints a task start message.
func (r *Renderer) OnTaskStart(name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[name] = &taskState{startTime: startTime}
	r.buffers[name] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnTaskLog buffers log data and prints complete lines with task prefix.
func (r *Renderer) OnTaskLog(name string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[name]; !ok {
		return
	}

	buf := r.buffers[name]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[name] = newBuf
			}
			break
		}

		r.printLineLocked(name, line)
	}
}

// OnTaskComplete flushes remaining buffer and prints completion status.
func (r *Renderer) OnTaskComplete(name string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[name]
	if !ok {
		return
	}

	r.flushBufferLocked(name)

	duration := endTime.Sub(task.startTime)
	prefix := fmt.Sprintf("[%s]", name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, symbol, duration)
	}

	delete(r.tasks, name)
	delete(r.buffers, name)
}

// flushBufferLocked flushes any remaining data in the buffer for a task.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(name string) {
	if _, ok := r.tasks[name]; !ok {
		return
	}

	buf := r.buffers[name]
	if buf.Len() > 0 {
		r.printLineLocked(name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints a line with the task name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	prefix := fmt.Sprintf("[%s]", name)
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix, string(line))
}

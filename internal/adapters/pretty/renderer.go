// Package pretty provides a styled renderer for interactive terminals.
package pretty

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/bake/internal/ui/style"
)

// Renderer implements ports.Renderer for interactive use. Output stays
// chronological (the pipeline is sequential), but task headers and results
// are styled and task output is indented under its header.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer

	mu      sync.Mutex
	started map[string]time.Time
	buffers map[string]*bytes.Buffer
}

var (
	headerStyle = style.Header
	detailStyle = style.Faint
	okStyle     = lipgloss.NewStyle().Foreground(style.Green)
	failStyle   = lipgloss.NewStyle().Foreground(style.Red)
)

// NewRenderer creates a new pretty Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		started: make(map[string]time.Time),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes any buffered partial lines.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.buffers {
		r.flushLocked(name)
	}
	return nil
}

// Wait is a no-op; the renderer writes synchronously.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the styled plan summary.
func (r *Renderer) OnPlanEmit(tasks []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.stderr, headerStyle.Render(fmt.Sprintf("Running %d task(s)", len(tasks))))
	for _, name := range tasks {
		_, _ = fmt.Fprintln(r.stderr, detailStyle.Render("  "+style.Dot+" "+name))
	}
}

// OnTaskStart prints the task header.
func (r *Renderer) OnTaskStart(name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started[name] = startTime
	r.buffers[name] = new(bytes.Buffer)

	_, _ = fmt.Fprintln(r.stderr, headerStyle.Render(style.Arrow+" "+name))
}

// OnTaskLog prints complete output lines indented under the task header.
func (r *Renderer) OnTaskLog(name string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.buffers[name]
	if !ok {
		return
	}
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				r.buffers[name] = rest
			}
			break
		}
		r.printLocked(line)
	}
}

// OnTaskComplete prints the styled result line.
func (r *Renderer) OnTaskComplete(name string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startTime, ok := r.started[name]
	if !ok {
		return
	}
	r.flushLocked(name)

	duration := endTime.Sub(startTime).Round(time.Millisecond)
	if err != nil {
		_, _ = fmt.Fprintln(r.stderr,
			failStyle.Render(fmt.Sprintf("%s %s failed after %v: %v", style.Cross, name, duration, err)))
	} else {
		_, _ = fmt.Fprintln(r.stderr,
			okStyle.Render(fmt.Sprintf("%s %s (%v)", style.Check, name, duration)))
	}

	delete(r.started, name)
	delete(r.buffers, name)
}

// flushLocked prints any buffered partial line. Must hold r.mu.
func (r *Renderer) flushLocked(name string) {
	if buf, ok := r.buffers[name]; ok && buf.Len() > 0 {
		r.printLocked(buf.Bytes())
		buf.Reset()
	}
}

// printLocked prints one output line, indented. Must hold r.mu.
func (r *Renderer) printLocked(line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintln(r.stdout, "  "+string(line))
}

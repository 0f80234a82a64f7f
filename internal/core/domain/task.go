// Package domain holds the core types of the bake orchestrator: tasks,
// platforms, the build plan and the packaging descriptor.
package domain

// Task represents one externally-invoked step of the build pipeline.
type Task struct {
	Name        string
	Command     []string
	WorkingDir  string
	Environment map[string]string
	Only        Platform
}

// AppliesTo reports whether the task should run on the given platform.
func (t Task) AppliesTo(p Platform) bool {
	return t.Only == PlatformAny || t.Only == p
}

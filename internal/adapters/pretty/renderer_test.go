package pretty_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bake/internal/adapters/pretty"
	"go.trai.ch/zerr"
)

func TestRenderer_Lifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := pretty.NewRenderer(&stdout, &stderr)

	r.OnPlanEmit([]string{"clean", "build"})
	assert.Contains(t, stderr.String(), "Running 2 task(s)")

	start := time.Now()
	r.OnTaskStart("build", start)
	r.OnTaskLog("build", []byte("Compiling delivery v0.1.0\n"))
	r.OnTaskComplete("build", start.Add(time.Second), nil)

	assert.Contains(t, stderr.String(), "build")
	assert.Contains(t, stdout.String(), "  Compiling delivery v0.1.0")
}

func TestRenderer_Failure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := pretty.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnTaskStart("test", start)
	r.OnTaskComplete("test", start.Add(time.Second), zerr.New("exit status 101"))

	assert.Contains(t, stderr.String(), "failed after")
	assert.Contains(t, stderr.String(), "exit status 101")
}

func TestRenderer_PartialLineFlushedOnStop(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := pretty.NewRenderer(&stdout, &stderr)

	r.OnTaskStart("build", time.Now())
	r.OnTaskLog("build", []byte("no newline"))
	assert.NotContains(t, stdout.String(), "no newline")

	assert.NoError(t, r.Stop())
	assert.Contains(t, stdout.String(), "no newline")
}

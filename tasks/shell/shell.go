// Package shell provides a task body that runs a command through the system
// shell and captures its output.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/taskpipe/taskpipe/internal/ctxlog"
	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the shell body.
type Input struct {
	Command string `pipe:"command"`
	Dir     string `pipe:"dir,optional"`
}

// Output defines the data produced by the body.
type Output struct {
	Stdout   string `pipe:"stdout"`
	ExitCode int    `pipe:"exit_code"`
}

func run(ctx context.Context, in *Input) (any, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running shell command.", "command", in.Command, "dir", in.Dir)

	cmd := exec.CommandContext(ctx, "sh", "-c", in.Command)
	cmd.Dir = in.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("command failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	return &Output{Stdout: stdout.String(), ExitCode: cmd.ProcessState.ExitCode()}, nil
}

// Register registers the body with the engine under the name "shell".
func (m *Module) Register(r *registry.Registry) {
	r.Register("shell", pipeline.Typed(func() any { return new(Input) }, run))
}

// Package envvars provides a task body that reads the process environment.
package envvars

import (
	"context"
	"os"
	"strings"

	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Output defines the data produced by the body.
type Output struct {
	Env map[string]string `pipe:"env"`
}

func run(ctx context.Context, args map[string]any) (any, error) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return &Output{Env: envMap}, nil
}

// Register registers the body with the engine under the name "envvars".
func (m *Module) Register(r *registry.Registry) {
	r.Register("envvars", pipeline.Func(run))
}

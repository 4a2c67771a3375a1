// Package printer provides a task body that prints a named value, useful as
// a terminal step in example pipelines.
package printer

import (
	"context"
	"fmt"
	"sort"

	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the printer body.
type Input struct {
	Value map[string]any `pipe:"input"`
}

func run(ctx context.Context, in *Input) (any, error) {
	if in.Value == nil {
		fmt.Println("      (null)")
		return nil, nil
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(in.Value))
	for k := range in.Value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("      %s = %v\n", k, in.Value[k])
	}
	return nil, nil
}

// Register registers the body with the engine under the name "print".
func (m *Module) Register(r *registry.Registry) {
	r.Register("print", pipeline.Typed(func() any { return new(Input) }, run))
}

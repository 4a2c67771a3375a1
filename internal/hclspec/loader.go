package hclspec

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/taskpipe/taskpipe/internal/ctxlog"
	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
)

// LoadFile reads a pipeline definition from disk and resolves it into an
// executable graph using the bodies registered in reg.
func LoadFile(ctx context.Context, path string, reg *registry.Registry) (*pipeline.Graph, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hclspec: read %s: %w", path, err)
	}
	return Parse(ctx, path, src, reg)
}

// ParseDefinition decodes HCL source into a structural definition without
// touching any registry: steps become node defs in declaration order with
// their body references, `start = true` marks entry points in declaration
// order, and every name in a step's `next` list becomes an edge.
func ParseDefinition(ctx context.Context, filename string, src []byte) (*pipeline.Definition, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclspec: parse %s: %w", filename, diags)
	}

	var root File
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("hclspec: decode %s: %w", filename, diags)
	}
	if root.Pipeline == nil {
		return nil, fmt.Errorf("hclspec: %s contains no pipeline block", filename)
	}
	block := root.Pipeline
	logger.Debug("Pipeline definition decoded.", "pipeline", block.Name, "steps", len(block.Steps))

	def := &pipeline.Definition{
		PipelineName: block.Name,
		Description:  block.Description,
		Nodes:        make([]pipeline.NodeDef, 0, len(block.Steps)),
		Edges:        []pipeline.EdgeDef{},
		StartNodes:   []string{},
	}

	for _, step := range block.Steps {
		inputs, err := decodeInputs(step.Inputs)
		if err != nil {
			return nil, fmt.Errorf("hclspec: step %q inputs: %w", step.Name, err)
		}
		def.Nodes = append(def.Nodes, pipeline.NodeDef{
			Name:        step.Name,
			Description: step.Description,
			FixedInputs: inputs,
			Body:        step.Body,
		})
		if step.Start {
			def.StartNodes = append(def.StartNodes, step.Name)
		}
		for _, succ := range step.Next {
			def.Edges = append(def.Edges, pipeline.EdgeDef{From: step.Name, To: succ})
		}
	}

	return def, nil
}

// Parse decodes HCL source and resolves every step's body reference against
// the registry, producing an executable graph.
func Parse(ctx context.Context, filename string, src []byte, reg *registry.Registry) (*pipeline.Graph, error) {
	def, err := ParseDefinition(ctx, filename, src)
	if err != nil {
		return nil, err
	}
	return Resolve(def, reg)
}

// Resolve turns a structural definition into an executable graph by looking
// up each node's body reference in the registry.
func Resolve(def *pipeline.Definition, reg *registry.Registry) (*pipeline.Graph, error) {
	bodies := make(map[string]pipeline.Body, len(def.Nodes))
	for _, nd := range def.Nodes {
		if nd.Body == "" {
			return nil, fmt.Errorf("hclspec: step %q names no body", nd.Name)
		}
		body, ok := reg.Lookup(nd.Body)
		if !ok {
			return nil, fmt.Errorf("hclspec: step %q uses unknown body %q (registered: %s)",
				nd.Name, nd.Body, strings.Join(reg.Names(), ", "))
		}
		bodies[nd.Name] = body
	}

	g, err := def.Build(bodies)
	if err != nil {
		return nil, fmt.Errorf("hclspec: %w", err)
	}
	return g, nil
}

// decodeInputs evaluates a step's `inputs` object into plain Go values.
func decodeInputs(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	native, err := ctyToNative(val)
	if err != nil {
		return nil, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("inputs must be an object, got %T", native)
	}
	return m, nil
}

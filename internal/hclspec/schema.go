// Package hclspec loads pipeline structure from HCL files. A definition file
// declares graph shape only — step names, body names, fixed inputs, edges,
// start markers; the executable bodies are resolved against the registry at
// load time.
package hclspec

import "github.com/hashicorp/hcl/v2"

// StepBlock is one `step "name" { ... }` block inside a pipeline.
type StepBlock struct {
	Name        string         `hcl:"name,label"`
	Body        string         `hcl:"body"`
	Description string         `hcl:"description,optional"`
	Start       bool           `hcl:"start,optional"`
	Inputs      hcl.Expression `hcl:"inputs,optional"`
	Next        []string       `hcl:"next,optional"`
}

// PipelineBlock is the `pipeline "name" { ... }` block.
type PipelineBlock struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Steps       []*StepBlock `hcl:"step,block"`
}

// File is the top-level structure of a pipeline definition file.
type File struct {
	Pipeline *PipelineBlock `hcl:"pipeline,block"`
}

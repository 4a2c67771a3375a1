package pipeline

import "fmt"

// DuplicateNodeError is returned by AddNode when a node with the same name is
// already registered in the graph.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("pipeline: node %q already exists", e.Name)
}

// UnknownNodeError is returned by Connect when either endpoint names a node
// that has not been added to the graph.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("pipeline: node %q not found", e.Name)
}

// MissingInputError is recorded on a node when a required parameter of its
// body cannot be resolved from fixed inputs, the execution context, or a
// declared default. The body is never invoked in that case.
type MissingInputError struct {
	Node  string
	Param string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("pipeline: node %q: required input %q is unresolved", e.Node, e.Param)
}

// InvalidOutputError is recorded on a node whose body returned something that
// is not a mapping of named outputs.
type InvalidOutputError struct {
	Node string
	Got  any
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("pipeline: node %q: body returned %T, want a map of named outputs", e.Node, e.Got)
}

// BodyError wraps a failure signaled by the task body itself.
type BodyError struct {
	Node string
	Err  error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("pipeline: node %q failed: %v", e.Node, e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }

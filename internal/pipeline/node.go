package pipeline

import "time"

// Status is the run state of a single node. A node starts each run as
// StatusPending and transitions exactly once into a terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Node is a single named unit of work in a graph: a callable body plus fixed
// input overrides, a description, and the mutable state of the most recent
// run. Nodes are built once and reused across runs; the runner resets the run
// state before every traversal.
type Node struct {
	name        string
	description string
	body        Body
	fixed       map[string]any

	status    Status
	output    map[string]any
	err       error
	execTime  time.Duration
	startedAt time.Time
	endedAt   time.Time
}

// NewNode creates a node with the given unique name and body.
func NewNode(name string, body Body) *Node {
	if name == "" {
		panic("pipeline: node name must not be empty")
	}
	if body == nil {
		panic("pipeline: node body must not be nil")
	}
	return &Node{
		name:   name,
		body:   body,
		status: StatusPending,
	}
}

// WithInputs sets fixed input overrides. Fixed inputs take precedence over
// the execution context at bind time and are never produced by other nodes.
func (n *Node) WithInputs(inputs map[string]any) *Node {
	n.fixed = inputs
	return n
}

// WithDescription sets the free-text description. Documentation only.
func (n *Node) WithDescription(desc string) *Node {
	n.description = desc
	return n
}

// Name returns the node's unique name, the only handle used for lookups and edges.
func (n *Node) Name() string { return n.name }

// Description returns the node's free-text description.
func (n *Node) Description() string { return n.description }

// FixedInputs returns the node's fixed input overrides. May be nil.
func (n *Node) FixedInputs() map[string]any { return n.fixed }

// Status returns the node's state from the most recent run.
func (n *Node) Status() Status { return n.status }

// Output returns the mapping produced by the last successful invocation.
// It is empty until the node has succeeded.
func (n *Node) Output() map[string]any { return n.output }

// Err returns the failure recorded by the most recent run, if any.
func (n *Node) Err() error { return n.err }

// ExecutionTime returns how long the body ran during the most recent run.
func (n *Node) ExecutionTime() time.Duration { return n.execTime }

// reset returns the node to its pre-run state so no status or output leaks
// from a previous run into the next one.
func (n *Node) reset() {
	n.status = StatusPending
	n.output = nil
	n.err = nil
	n.execTime = 0
	n.startedAt = time.Time{}
	n.endedAt = time.Time{}
}

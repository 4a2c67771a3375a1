package pipeline

import (
	"context"
	"time"

	"github.com/taskpipe/taskpipe/internal/ctxlog"
)

// Runner drives one graph through single-threaded, dedup-on-first-visit
// traversal. A Runner is reusable across runs but must not be shared between
// concurrent Run calls: each run resets node state in place, so overlapping
// runs on the same graph race on that reset and must be serialized by the
// caller.
type Runner struct {
	graph       *Graph
	stopOnError bool
}

// Option configures a Runner.
type Option func(*Runner)

// ContinueOnError keeps draining the work queue after a node fails, letting
// unrelated branches finish independently. The default is to halt on the
// first failure and mark everything still pending as skipped.
func ContinueOnError() Option {
	return func(r *Runner) { r.stopOnError = false }
}

// NewRunner creates a Runner over the given graph.
func NewRunner(g *Graph, opts ...Option) *Runner {
	r := &Runner{graph: g, stopOnError: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the graph from its start nodes, threading every node's output
// through the shared execution context into downstream parameter binding.
//
// Node-scoped failures (missing inputs, invalid outputs, body errors) never
// escape Run; they are recorded on the node and in the report. The overall
// status is failed exactly when at least one node failed.
func (r *Runner) Run(ctx context.Context, initial map[string]any) *Report {
	logger := ctxlog.FromContext(ctx).With("pipeline", r.graph.name)
	logger.Debug("Run started.", "startNodes", r.graph.starts, "stopOnError", r.stopOnError)

	r.graph.resetRuntimeState()
	ectx := newContext(initial)
	report := &Report{
		Pipeline: r.graph.name,
		Status:   StatusSucceeded,
		Nodes:    make(map[string]NodeReport, len(r.graph.nodes)),
	}
	runStart := time.Now()

	visited := make(map[string]bool, len(r.graph.nodes))
	queue := append([]string(nil), r.graph.starts...)

	halted := false
	for len(queue) > 0 && !halted {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			// Fan-in re-arrival: the node already ran on the first
			// predecessor's completion and never re-runs.
			continue
		}
		visited[name] = true

		node := r.graph.nodes[name]
		r.runNode(ctx, node, ectx)
		report.Log = append(report.Log, LogEntry{
			Node:      name,
			StartedAt: node.startedAt,
			EndedAt:   node.endedAt,
			Status:    node.status,
		})

		// Successors are enqueued regardless of outcome; under
		// stop-on-error the halt below drops the whole queue anyway.
		for _, succ := range r.graph.Successors(name) {
			if !visited[succ] {
				queue = append(queue, succ)
			}
		}

		if node.status == StatusFailed {
			logger.Warn("Node failed.", "node", name, "error", node.err)
			if r.stopOnError {
				halted = true
			}
		}
	}

	// Anything still pending was either cut off by the halt or is simply
	// unreachable from the start nodes.
	for _, node := range r.graph.nodes {
		if node.status == StatusPending {
			node.status = StatusSkipped
		}
		if node.status == StatusFailed {
			report.Status = StatusFailed
		}
	}

	report.TotalTime = time.Since(runStart)
	report.FinalContext = ectx.Snapshot()
	for name, node := range r.graph.nodes {
		report.Nodes[name] = newNodeReport(node)
	}

	logger.Debug("Run finished.", "status", report.Status, "totalTime", report.TotalTime)
	return report
}

// runNode binds parameters, invokes the body, and moves the node into a
// terminal state, merging output into the execution context on success.
func (r *Runner) runNode(ctx context.Context, node *Node, ectx *Context) {
	logger := ctxlog.FromContext(ctx).With("node", node.name)
	logger.Debug("Node starting.")

	node.status = StatusRunning
	node.startedAt = time.Now()

	args, err := bindParams(node, ectx)
	if err != nil {
		// A required parameter is unresolved; the body is never invoked.
		node.fail(err)
		return
	}

	out, err := node.body.Call(ctx, args)
	node.execTime = time.Since(node.startedAt)
	if err != nil {
		node.fail(&BodyError{Node: node.name, Err: err})
		return
	}

	output, ok := normalizeOutput(out)
	if !ok {
		node.fail(&InvalidOutputError{Node: node.name, Got: out})
		return
	}

	node.output = output
	ectx.Merge(output)
	node.status = StatusSucceeded
	node.endedAt = time.Now()
	logger.Debug("Node succeeded.", "executionTime", node.execTime)
}

// fail records a terminal failure. No output is merged into the context.
func (n *Node) fail(err error) {
	n.status = StatusFailed
	n.err = err
	n.endedAt = time.Now()
}

// bindParams resolves a value for each of the body's declared parameters.
// Precedence per parameter: the node's fixed inputs, then the execution
// context, then the parameter's own default. Context keys the body does not
// declare are never passed, so accumulated context cannot cause unexpected
// arguments.
func bindParams(node *Node, ectx *Context) (map[string]any, error) {
	params := node.body.Params()
	args := make(map[string]any, len(params))
	for _, p := range params {
		if v, ok := node.fixed[p.Name]; ok {
			args[p.Name] = v
			continue
		}
		if v, ok := ectx.Value(p.Name); ok {
			args[p.Name] = v
			continue
		}
		if p.HasDefault {
			args[p.Name] = p.Default
			continue
		}
		return nil, &MissingInputError{Node: node.name, Param: p.Name}
	}
	return args, nil
}

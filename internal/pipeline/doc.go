/*
Package pipeline is the graph-execution engine: named task nodes wired into a
directed graph, executed single-threaded from the start nodes with each node's
output merged into a shared execution context that feeds downstream parameter
binding.

Basic usage:

	g := pipeline.New("analysis", "")
	g.AddStartNode(pipeline.NewNode("load", loadBody).WithInputs(map[string]any{"filepath": path}))
	g.AddNode(pipeline.NewNode("process", processBody))
	g.Connect("load", "process")

	report := pipeline.NewRunner(g).Run(ctx, nil)

A node with several predecessors runs on whichever predecessor's completion
enqueues it first; it never waits for the others. Callers that need a real
join must merge inside one body.
*/
package pipeline

package pipeline

// Graph is the static shape of a pipeline: named nodes, directed edges, and
// the designated start nodes. Graphs are built once and can be executed any
// number of times; only the nodes' run state mutates between runs.
//
// The graph performs no cycle detection. The runner visits every node at most
// once per run, so a cycle degenerates to a no-op on second arrival rather
// than an infinite loop.
type Graph struct {
	name        string
	description string

	nodes  map[string]*Node
	order  []string            // node names in insertion order
	edges  map[string][]string // successor names in connect order
	starts []string            // entry-point names in the order marked
}

// New creates an empty graph.
func New(name, description string) *Graph {
	return &Graph{
		name:        name,
		description: description,
		nodes:       make(map[string]*Node),
		edges:       make(map[string][]string),
	}
}

// Name returns the pipeline name.
func (g *Graph) Name() string { return g.name }

// Description returns the pipeline description.
func (g *Graph) Description() string { return g.description }

// AddNode registers a node. It returns a DuplicateNodeError if a node with
// the same name is already present.
func (g *Graph) AddNode(n *Node) error {
	if _, ok := g.nodes[n.name]; ok {
		return &DuplicateNodeError{Name: n.name}
	}
	g.nodes[n.name] = n
	g.order = append(g.order, n.name)
	return nil
}

// AddStartNode registers a node and marks it as an entry point. Start nodes
// are executed in the order they were marked.
func (g *Graph) AddStartNode(n *Node) error {
	if err := g.AddNode(n); err != nil {
		return err
	}
	g.starts = append(g.starts, n.name)
	return nil
}

// Connect appends a directed edge from one node to another. Both names must
// already be registered; otherwise Connect returns an UnknownNodeError and
// mutates nothing. Connecting the same pair twice simply re-links the same
// successor.
func (g *Graph) Connect(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return &UnknownNodeError{Name: from}
	}
	if _, ok := g.nodes[to]; !ok {
		return &UnknownNodeError{Name: to}
	}
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// Node returns the node registered under name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// StartNodes returns the entry-point names in the order they were marked.
func (g *Graph) StartNodes() []string {
	out := make([]string, len(g.starts))
	copy(out, g.starts)
	return out
}

// Successors returns the names a node connects to, in edge-insertion order.
func (g *Graph) Successors(name string) []string {
	succ := g.edges[name]
	out := make([]string, len(succ))
	copy(out, succ)
	return out
}

// resetRuntimeState returns every node to pending before a new traversal.
func (g *Graph) resetRuntimeState() {
	for _, n := range g.nodes {
		n.reset()
	}
}

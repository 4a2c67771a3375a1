package pipeline

import (
	"encoding/json"
	"fmt"
)

// Definition is the structural export of a graph: names, descriptions, fixed
// inputs, edges, and start nodes. Task bodies are not data and are never
// serialized; rebuilding an executable graph from a Definition requires the
// caller to re-supply a body for every node.
type Definition struct {
	PipelineName string    `json:"pipelineName"`
	Description  string    `json:"description,omitempty"`
	Nodes        []NodeDef `json:"nodes"`
	Edges        []EdgeDef `json:"edges"`
	StartNodes   []string  `json:"startNodes"`
}

// NodeDef is the structural slice of one node. Body optionally names a
// registered body implementation; it is a reference, not behavior, and
// Export leaves it empty because a live node's callable has no name.
type NodeDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	FixedInputs map[string]any `json:"fixedInputs,omitempty"`
	Body        string         `json:"body,omitempty"`
}

// EdgeDef is one directed connection.
type EdgeDef struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Export captures the graph's structure. Nodes appear in insertion order and
// edges in connect order, so exporting is deterministic for a given build
// sequence.
func (g *Graph) Export() *Definition {
	def := &Definition{
		PipelineName: g.name,
		Description:  g.description,
		Nodes:        make([]NodeDef, 0, len(g.order)),
		Edges:        []EdgeDef{},
		StartNodes:   g.StartNodes(),
	}
	for _, name := range g.order {
		node := g.nodes[name]
		def.Nodes = append(def.Nodes, NodeDef{
			Name:        node.name,
			Description: node.description,
			FixedInputs: node.fixed,
		})
	}
	for _, from := range g.order {
		for _, to := range g.edges[from] {
			def.Edges = append(def.Edges, EdgeDef{From: from, To: to})
		}
	}
	return def
}

// ExportJSON serializes the structural export as indented JSON.
func (g *Graph) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(g.Export(), "", "  ")
}

// ParseDefinition reads a structural export back in. The result describes
// graph shape only; see Definition.Build.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("pipeline: parse definition: %w", err)
	}
	return &def, nil
}

// Build reconstructs an executable graph from the definition. The bodies map
// supplies the callable for each node by name; a node without a body fails
// the build, since a definition alone carries no executable behavior.
func (d *Definition) Build(bodies map[string]Body) (*Graph, error) {
	g := New(d.PipelineName, d.Description)

	for _, nd := range d.Nodes {
		body, ok := bodies[nd.Name]
		if !ok {
			return nil, fmt.Errorf("pipeline: definition node %q has no body supplied", nd.Name)
		}
		node := NewNode(nd.Name, body).WithDescription(nd.Description).WithInputs(nd.FixedInputs)
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
	}

	// Start order is part of the structure: entry points run in the order
	// they are listed, not in node declaration order.
	for _, name := range d.StartNodes {
		if _, ok := g.nodes[name]; !ok {
			return nil, &UnknownNodeError{Name: name}
		}
		g.starts = append(g.starts, name)
	}

	for _, e := range d.Edges {
		if err := g.Connect(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

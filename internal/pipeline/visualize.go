package pipeline

import (
	"fmt"
	"strings"
)

// Visualize renders the graph as a text tree, one start node after another in
// the order they were marked. Each line is one node, indented by its distance
// from the start node along the printed path, with a `└─ ` connector below
// depth zero. The tree mirrors the edge structure, not execution order: a
// node reachable along several paths is printed once per incoming path, so a
// diamond visibly duplicates its sub-tree. Nodes carrying run state show it
// in brackets after the name.
func (g *Graph) Visualize() string {
	if len(g.nodes) == 0 {
		return "Empty pipeline"
	}

	lines := []string{fmt.Sprintf("Pipeline: %s", g.name)}
	if g.description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", g.description))
	}
	lines = append(lines, "", "Flow:")

	for _, start := range g.starts {
		lines = g.visualizeNode(start, 0, map[string]bool{}, lines)
	}
	return strings.Join(lines, "\n")
}

// visualizeNode prints one node and recurses into its successors. The
// ancestors set tracks the current printed path only, so cycles terminate
// while diamonds still repeat.
func (g *Graph) visualizeNode(name string, depth int, ancestors map[string]bool, lines []string) []string {
	if ancestors[name] {
		return lines
	}

	prefix := ""
	if depth > 0 {
		prefix = strings.Repeat("  ", depth) + "└─ "
	}
	label := name
	if node := g.nodes[name]; node.status != StatusPending {
		label = fmt.Sprintf("%s [%s]", name, node.status)
	}
	lines = append(lines, prefix+label)

	ancestors[name] = true
	for _, succ := range g.edges[name] {
		lines = g.visualizeNode(succ, depth+1, ancestors, lines)
	}
	delete(ancestors, name)
	return lines
}

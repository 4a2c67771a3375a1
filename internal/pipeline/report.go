package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Report is the structured outcome of one Run call. The engine keeps no run
// history of its own; callers retain reports as long as they need them.
type Report struct {
	Pipeline     string                `json:"pipeline"`
	Status       Status                `json:"status"`
	TotalTime    time.Duration         `json:"totalTime"`
	Nodes        map[string]NodeReport `json:"nodes"`
	FinalContext map[string]any        `json:"finalContext"`
	Log          []LogEntry            `json:"executionLog"`
}

// NodeReport is the per-node slice of a run report.
type NodeReport struct {
	Status        Status         `json:"status"`
	ExecutionTime time.Duration  `json:"executionTime"`
	Error         string         `json:"error,omitempty"`
	Output        map[string]any `json:"output,omitempty"`
}

// LogEntry records one node invocation in the literal order it happened.
type LogEntry struct {
	Node      string    `json:"node"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	Status    Status    `json:"status"`
}

func newNodeReport(n *Node) NodeReport {
	nr := NodeReport{
		Status:        n.status,
		ExecutionTime: n.execTime,
		Output:        n.output,
	}
	if n.err != nil {
		nr.Error = n.err.Error()
	}
	return nr
}

// statusGlyph maps a terminal status to its summary marker.
func statusGlyph(s Status) string {
	switch s {
	case StatusSucceeded:
		return "✓"
	case StatusFailed:
		return "✗"
	default:
		return "○"
	}
}

// Summary renders a human-readable execution summary, one line per node with
// its terminal status and timing, followed by error detail where present.
func (r *Report) Summary() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Pipeline Execution Summary\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Pipeline: %s\n", r.Pipeline)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Total Time: %.2fs\n", r.TotalTime.Seconds())
	fmt.Fprintf(&b, "\nNode Results:\n")

	names := make([]string, 0, len(r.Nodes))
	for name := range r.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		nr := r.Nodes[name]
		timeStr := "N/A"
		if nr.ExecutionTime > 0 {
			timeStr = fmt.Sprintf("%.2fs", nr.ExecutionTime.Seconds())
		}
		fmt.Fprintf(&b, "  %s %s: %s (%s)\n", statusGlyph(nr.Status), name, nr.Status, timeStr)
		if nr.Error != "" {
			fmt.Fprintf(&b, "    Error: %s\n", nr.Error)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

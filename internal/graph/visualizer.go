package graph

import (
	"fmt"
	"io"
	"strings"
)

// dotEscaper escapes text for a quoted DOT string.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Visualizer provides methods to visualize the dependency graph
type Visualizer struct {
	graph *DependencyGraph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *DependencyGraph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format. Edges point from a bean
// to the beans it references; referenced ids without a node are drawn
// dashed.
func (v *Visualizer) WriteDOT(w io.Writer) error {
	var b strings.Builder

	b.WriteString("digraph beans {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	for _, id := range v.graph.order {
		node := v.graph.nodes[id]
		label := dotEscaper.Replace(node.ID)
		if node.Label != "" {
			label += `\n` + dotEscaper.Replace(node.Label)
		}
		fmt.Fprintf(&b, "  %q [label=\"%s\"];\n", node.ID, label)
	}

	for _, id := range v.graph.Missing() {
		fmt.Fprintf(&b, "  %q [style=dashed];\n", id)
	}

	for _, id := range v.graph.order {
		for _, dep := range v.graph.nodes[id].Dependencies {
			fmt.Fprintf(&b, "  %q -> %q;\n", id, dep)
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

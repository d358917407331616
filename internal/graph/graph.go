// Package graph analyses the dependency relationships between bean
// declarations. The container builds beans without it; the graph only
// explains why a build could not finish and renders dependencies for
// inspection.
package graph

import "slices"

// DependencyGraph holds beans and the ids they reference.
// It is not safe for concurrent use.
type DependencyGraph struct {
	nodes map[string]*Node
	order []string // insertion order, keeps traversals deterministic
}

// Node is one declared bean.
type Node struct {
	ID           string
	Label        string   // free-form, e.g. the bean's type name
	Dependencies []string // referenced ids, in reference order
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*Node),
	}
}

// AddNode adds a bean with its references. Adding an id twice replaces the
// earlier node.
func (g *DependencyGraph) AddNode(id, label string, deps []string) {
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = &Node{
		ID:           id,
		Label:        label,
		Dependencies: slices.Clone(deps),
	}
}

// HasNode checks if a bean was added.
func (g *DependencyGraph) HasNode(id string) bool {
	_, exists := g.nodes[id]
	return exists
}

// Size returns the number of nodes in the graph.
func (g *DependencyGraph) Size() int {
	return len(g.nodes)
}

// Missing returns the referenced ids that have no node, sorted.
func (g *DependencyGraph) Missing() []string {
	seen := make(map[string]bool)
	var missing []string
	for _, id := range g.order {
		for _, dep := range g.nodes[id].Dependencies {
			if g.HasNode(dep) || seen[dep] {
				continue
			}
			seen[dep] = true
			missing = append(missing, dep)
		}
	}
	slices.Sort(missing)
	return missing
}

// DetectCycles returns a *CircularDependencyError for the first cycle found,
// walking nodes in insertion order, or nil if the graph is acyclic.
func (g *DependencyGraph) DetectCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(g.nodes))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = visiting
		path = append(path, id)

		for _, dep := range g.nodes[id].Dependencies {
			if !g.HasNode(dep) {
				continue
			}
			switch state[dep] {
			case visiting:
				start := slices.Index(path, dep)
				return slices.Clone(path[start:])
			case unvisited:
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	for _, id := range g.order {
		if state[id] != unvisited {
			continue
		}
		if cycle := visit(id); cycle != nil {
			return &CircularDependencyError{Path: cycle}
		}
	}

	return nil
}

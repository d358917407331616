package graph

import (
	"fmt"
	"strings"
)

// CircularDependencyError represents a dependency cycle between beans.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	for i, id := range e.Path {
		b.WriteString(fmt.Sprintf("    %s\n", id))
		if i < len(e.Path)-1 {
			b.WriteString("      ↓\n")
		}
	}
	if len(e.Path) > 0 {
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %s (cycle)\n", e.Path[0]))
	}

	return b.String()
}

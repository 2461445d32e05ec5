package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/bst"
	"github.com/aretw0/arbor/pkg/domain"
)

// GraphOverlay contains traversal state to paint on the tree.
type GraphOverlay struct {
	Visited []int
	Current *int
}

// GenerateMermaid produces a Mermaid flowchart of the tree, top-down.
// Shapes follow the node's role:
// - Root: ((Circle))
// - Inner node: (Rounded)
// - Leaf: [Rectangle]
// Edges are labelled L or R. Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	if root == nil {
		sb.WriteString("    empty[\"(empty tree)\"]\n")
		return sb.String()
	}

	bst.Walk(root, domain.PreOrder, func(n *domain.Node) {
		opener, closer := "(", ")"
		switch {
		case n == root:
			opener, closer = "((", "))"
		case n.IsLeaf():
			opener, closer = "[", "]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%d\"%s\n", NodeID(n.Value), opener, n.Value, closer)

		if n.Left != nil {
			fmt.Fprintf(&sb, "    %s -- L --> %s\n", NodeID(n.Value), NodeID(n.Left.Value))
		}
		if n.Right != nil {
			fmt.Fprintf(&sb, "    %s -- R --> %s\n", NodeID(n.Value), NodeID(n.Right.Value))
		}
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, v := range overlay.Visited {
			if seen[v] || !bst.Contains(root, v) {
				continue
			}
			seen[v] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", NodeID(v))
		}

		if overlay.Current != nil && bst.Contains(root, *overlay.Current) {
			fmt.Fprintf(&sb, "    class %s current;\n", NodeID(*overlay.Current))
		}
	}

	return sb.String()
}

// NodeID is the Mermaid identifier of a value; negative values get an "m" prefix.
func NodeID(value int) string {
	if value < 0 {
		return fmt.Sprintf("nm%d", -value)
	}
	return fmt.Sprintf("n%d", value)
}

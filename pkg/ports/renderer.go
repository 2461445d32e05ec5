package ports

import "github.com/aretw0/arbor/pkg/domain"

// Renderer draws the tree. The scheduler calls it in this order for a redraw:
// BeginRedraw, DrawEdge for every edge, DrawNode for every node (pre-order),
// EndRedraw. Styling calls arrive only while a traversal runs.
type Renderer interface {
	// BeginRedraw starts a full frame sized for the given canvas.
	BeginRedraw(canvas domain.Canvas)

	// DrawEdge draws a parent to child segment.
	DrawEdge(from, to domain.Point)

	// DrawNode draws a node and returns the handle used by later styling calls.
	DrawNode(at domain.Point, value int) domain.Handle

	// EndRedraw marks the frame as complete.
	EndRedraw()

	// SetHighlight toggles the pulsing highlight on a node.
	SetHighlight(h domain.Handle, on bool)

	// SetVisited marks a node as visited.
	SetVisited(h domain.Handle)

	// ResetAllStyles removes highlight and visited marks from every node.
	ResetAllStyles()

	// Clear removes everything from the surface.
	Clear()
}

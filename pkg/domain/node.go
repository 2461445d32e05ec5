package domain

// Handle is the opaque visual association a Renderer returns for a drawn node.
// The core stores it on the node and hands it back on highlight/visited calls.
type Handle any

// Node is a binary search tree node.
// Value is fixed at creation; only the child links, the layout coordinates
// and the visual handle change afterwards.
type Node struct {
	Value int   `json:"value"`
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`

	// X and Y are assigned by the layout pass.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Handle is owned by the Renderer.
	Handle Handle `json:"-"`
}

// NewNode creates a detached leaf.
func NewNode(value int) *Node {
	return &Node{Value: value}
}

// IsLeaf reports whether both children are empty.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Left == nil && n.Right == nil
}

// Point returns the node's layout coordinate.
func (n *Node) Point() Point {
	return Point{X: n.X, Y: n.Y}
}

// Point is a 2D coordinate on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Canvas is the extent of the drawing surface for a given tree.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

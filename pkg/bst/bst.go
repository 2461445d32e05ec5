package bst

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Insert adds value below root and returns the (possibly new) root.
// A value equal to an existing node leaves the tree unchanged.
func Insert(root *domain.Node, value int) *domain.Node {
	if root == nil {
		return domain.NewNode(value)
	}

	if value < root.Value {
		root.Left = Insert(root.Left, value)
	} else if value > root.Value {
		root.Right = Insert(root.Right, value)
	}

	return root
}

// Build inserts values in order into an empty tree.
func Build(values []int) *domain.Node {
	var root *domain.Node
	for _, v := range values {
		root = Insert(root, v)
	}
	return root
}

// Contains reports whether value is present.
func Contains(root *domain.Node, value int) bool {
	for n := root; n != nil; {
		switch {
		case value < n.Value:
			n = n.Left
		case value > n.Value:
			n = n.Right
		default:
			return true
		}
	}
	return false
}

// Height is 0 for an empty tree and 1 + the taller subtree otherwise.
func Height(n *domain.Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(Height(n.Left), Height(n.Right))
}

// Count returns the number of nodes.
func Count(n *domain.Node) int {
	if n == nil {
		return 0
	}
	return 1 + Count(n.Left) + Count(n.Right)
}

// LeafCount returns the number of nodes without children.
func LeafCount(n *domain.Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return LeafCount(n.Left) + LeafCount(n.Right)
}

// BalanceFactor is height(left) - height(right) at n, 0 for an empty tree.
func BalanceFactor(n *domain.Node) int {
	if n == nil {
		return 0
	}
	return Height(n.Left) - Height(n.Right)
}

// Values flattens the tree in-order, which is ascending by the BST invariant.
func Values(n *domain.Node) []int {
	return Order(n, domain.InOrder)
}

// Valid checks the ordering invariant on every node.
func Valid(n *domain.Node) bool {
	return validWithin(n, nil, nil)
}

func validWithin(n *domain.Node, lo, hi *int) bool {
	if n == nil {
		return true
	}
	if lo != nil && n.Value <= *lo {
		return false
	}
	if hi != nil && n.Value >= *hi {
		return false
	}
	return validWithin(n.Left, lo, &n.Value) && validWithin(n.Right, &n.Value, hi)
}

// Clone deep-copies the structure, coordinates included. Visual handles are not copied.
func Clone(n *domain.Node) *domain.Node {
	if n == nil {
		return nil
	}
	return &domain.Node{
		Value: n.Value,
		Left:  Clone(n.Left),
		Right: Clone(n.Right),
		X:     n.X,
		Y:     n.Y,
	}
}

// ComputeStats summarizes root. last is the most recently inserted value, if any.
func ComputeStats(root *domain.Node, last *int) domain.Stats {
	stats := domain.Stats{
		Count:         Count(root),
		Height:        Height(root),
		LeafCount:     LeafCount(root),
		BalanceFactor: BalanceFactor(root),
	}
	if root != nil && last != nil {
		v := *last
		stats.LastValue = &v
	}
	return stats
}

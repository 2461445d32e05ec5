package bst

import "github.com/aretw0/arbor/pkg/domain"

// Walk calls visit on every node in the order named by kind.
func Walk(n *domain.Node, kind domain.TraversalKind, visit func(*domain.Node)) {
	if n == nil {
		return
	}

	switch kind {
	case domain.PreOrder:
		visit(n)
		Walk(n.Left, kind, visit)
		Walk(n.Right, kind, visit)
	case domain.PostOrder:
		Walk(n.Left, kind, visit)
		Walk(n.Right, kind, visit)
		visit(n)
	default:
		Walk(n.Left, kind, visit)
		visit(n)
		Walk(n.Right, kind, visit)
	}
}

// Collect returns the nodes in visit order.
func Collect(n *domain.Node, kind domain.TraversalKind) []*domain.Node {
	var nodes []*domain.Node
	Walk(n, kind, func(node *domain.Node) {
		nodes = append(nodes, node)
	})
	return nodes
}

// Order returns the values in visit order.
func Order(n *domain.Node, kind domain.TraversalKind) []int {
	var values []int
	Walk(n, kind, func(node *domain.Node) {
		values = append(values, node.Value)
	})
	return values
}

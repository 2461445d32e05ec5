package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TraversalKind names one of the depth-first visit orders.
type TraversalKind string

const (
	InOrder   TraversalKind = "inorder"   // left, visit, right
	PreOrder  TraversalKind = "preorder"  // visit, left, right
	PostOrder TraversalKind = "postorder" // left, right, visit
)

// TraversalKinds lists every supported order.
func TraversalKinds() []TraversalKind {
	return []TraversalKind{InOrder, PreOrder, PostOrder}
}

// ParseTraversal accepts "inorder", "in-order", "in_order" or "in" (and the pre/post variants).
func ParseTraversal(s string) (TraversalKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	norm = strings.TrimSuffix(norm, "order")
	switch norm {
	case "in":
		return InOrder, nil
	case "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTraversal, s)
}

// Title is the human label used by presenters.
func (k TraversalKind) Title() string {
	switch k {
	case InOrder:
		return "In-Order"
	case PreOrder:
		return "Pre-Order"
	case PostOrder:
		return "Post-Order"
	}
	return string(k)
}

// ResultSeparator joins traversal results for display.
const ResultSeparator = " → "

// FormatResult renders visited values joined by ResultSeparator.
func FormatResult(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ResultSeparator)
}

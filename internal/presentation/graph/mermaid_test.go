package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/bst"
)

func TestGenerateMermaid(t *testing.T) {
	root := bst.Build([]int{50, 30, 70, 20, -5})

	got := graph.GenerateMermaid(root, nil)
	want := `graph TD
    n50(("50"))
    n50 -- L --> n30
    n50 -- R --> n70
    n30("30")
    n30 -- L --> n20
    n20("20")
    n20 -- L --> nm5
    nm5["-5"]
    n70["70"]
`
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "classDef")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	got := graph.GenerateMermaid(nil, &graph.GraphOverlay{Visited: []int{1}})
	assert.Equal(t, "graph TD\n    empty[\"(empty tree)\"]\n", got)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	root := bst.Build([]int{2, 1, 3})
	current := 3

	got := graph.GenerateMermaid(root, &graph.GraphOverlay{
		Visited: []int{1, 2, 2, 99},
		Current: &current,
	})

	assert.Contains(t, got, "classDef visited")
	assert.Contains(t, got, "class n1 visited;")
	assert.Equal(t, 1, strings.Count(got, "class n2 visited;"))
	assert.NotContains(t, got, "n99")
	assert.Contains(t, got, "class n3 current;")
}

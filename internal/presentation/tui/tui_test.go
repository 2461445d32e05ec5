package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Frame(t *testing.T) {
	var buf bytes.Buffer
	tree := tui.NewTree(&buf, tui.WithProfile(termenv.Ascii))
	v := testutils.StartVisualizer(t, arbor.WithRenderer(tree))
	ctx := context.Background()

	testutils.Wait(t)(v.Build(ctx, []int{50, 30, 70}))

	lines := strings.Split(tree.Frame(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "50", strings.TrimSpace(lines[0]))
	assert.Equal(t, []string{"/", "\\"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"30", "70"}, strings.Fields(lines[2]))
	assert.Less(t, strings.Index(lines[2], "30"), strings.Index(lines[0], "50"))
	assert.Greater(t, strings.Index(lines[2], "70"), strings.Index(lines[0], "50"))

	assert.Contains(t, buf.String(), "50")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTree_TraversalStyles(t *testing.T) {
	var buf bytes.Buffer
	tree := tui.NewTree(&buf, tui.WithProfile(termenv.Ascii))
	v := testutils.StartVisualizer(t, arbor.WithRenderer(tree))
	ctx := context.Background()

	testutils.Wait(t)(v.Build(ctx, []int{2, 1, 3}))

	tree.SetHighlight(1, true)
	assert.Contains(t, tree.Frame(), "[1]")

	testutils.Wait(t)(v.Traverse(ctx, domain.InOrder))

	assert.Eventually(t, func() bool {
		return strings.Join(strings.Fields(tree.Frame()), " ") == "(2) / \\ (1) (3)"
	}, time.Second, 10*time.Millisecond)

	tree.ResetAllStyles()
	assert.Equal(t, "2 / \\ 1 3", strings.Join(strings.Fields(tree.Frame()), " "))

	tree.SetVisited("unknown")
	tree.Clear()
	assert.Empty(t, tree.Frame())
}

func TestTree_Repaint(t *testing.T) {
	var buf bytes.Buffer
	tree := tui.NewTree(&buf, tui.WithProfile(termenv.Ascii), tui.WithRepaint(true), tui.WithColumns(20))
	tree.BeginRedraw(domain.Canvas{Width: 800, Height: 600})
	tree.DrawNode(domain.Point{X: 400, Y: 50}, 7)
	assert.Empty(t, buf.String())

	tree.EndRedraw()
	assert.Contains(t, buf.String(), "\x1b[2J")
	assert.Contains(t, buf.String(), "7")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := tui.NewProgress(&buf, "building", nil)
	for i := 1; i <= 3; i++ {
		p.PublishProgress(i, 3)
	}
	assert.Contains(t, buf.String(), "building")
	assert.Contains(t, buf.String(), "3/3")

	buf.Reset()
	p.PublishProgress(1, 2)
	assert.Contains(t, buf.String(), "1/2")

	buf.Reset()
	p.PublishProgress(0, 0)
	assert.Empty(t, buf.String())
}

func TestStatsTable(t *testing.T) {
	var buf bytes.Buffer
	s := tui.NewStatsTable(&buf)

	s.PublishStats(domain.Stats{})
	assert.Empty(t, buf.String())

	last := 70
	s.PublishStats(domain.Stats{Count: 3, Height: 2, LeafCount: 2, LastValue: &last})
	out := buf.String()
	assert.Contains(t, out, "NODES")
	assert.Contains(t, out, "LAST INSERTED")
	assert.Contains(t, out, "70")
}

func TestReport(t *testing.T) {
	md := tui.ResultMarkdown(domain.PreOrder, []int{2, 1, 3})
	assert.Contains(t, md, "## Pre-Order traversal")
	assert.Contains(t, md, "2 → 1 → 3")
	assert.Contains(t, md, "3 nodes visited.")

	var raw bytes.Buffer
	tui.NewReport(&raw, nil).PublishResult(domain.InOrder, []int{1})
	assert.Equal(t, tui.ResultMarkdown(domain.InOrder, []int{1}), raw.String())

	render, err := tui.NewMarkdownRenderer("notty", 80)
	require.NoError(t, err)

	var rendered bytes.Buffer
	tui.NewReport(&rendered, render).PublishResult(domain.PostOrder, []int{1, 3, 2})
	assert.Contains(t, rendered.String(), "Post-Order traversal")
	assert.Contains(t, rendered.String(), "1 → 3 → 2")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), "/_/")
}

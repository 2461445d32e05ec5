package tui

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/layout"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/muesli/termenv"
)

var _ ports.Renderer = (*Tree)(nil)

// DefaultColumns is the frame width used when the terminal size is unknown.
const DefaultColumns = 80

// Tree renders the animation as a text frame, repainting after every
// completed redraw and every styling change.
type Tree struct {
	mu      sync.Mutex
	out     *termenv.Output
	cols    int
	layout  layout.Config
	repaint bool

	canvas  domain.Canvas
	cells   []*cell
	byValue map[int]*cell
	edges   []layout.Edge
	drawing bool
}

type cell struct {
	value     int
	at        domain.Point
	highlight bool
	visited   bool
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithColumns sets the frame width.
func WithColumns(cols int) TreeOption {
	return func(t *Tree) {
		if cols > 0 {
			t.cols = cols
		}
	}
}

// WithLayout must match the layout used by the visualizer so depths line up.
func WithLayout(cfg layout.Config) TreeOption {
	return func(t *Tree) {
		t.layout = cfg
	}
}

// WithRepaint clears the screen before every frame.
func WithRepaint(enabled bool) TreeOption {
	return func(t *Tree) {
		t.repaint = enabled
	}
}

// WithProfile forces a colour profile; termenv.Ascii strips all styling.
func WithProfile(p termenv.Profile) TreeOption {
	return func(t *Tree) {
		t.out.Profile = p
	}
}

// NewTree creates a terminal renderer writing to w.
func NewTree(w io.Writer, opts ...TreeOption) *Tree {
	t := &Tree{
		out:     termenv.NewOutput(w),
		cols:    DefaultColumns,
		layout:  layout.DefaultConfig(),
		byValue: make(map[int]*cell),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) BeginRedraw(canvas domain.Canvas) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
	t.canvas = canvas
	t.drawing = true
}

func (t *Tree) DrawEdge(from, to domain.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.edges = append(t.edges, layout.Edge{From: from, To: to})
}

func (t *Tree) DrawNode(at domain.Point, value int) domain.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := &cell{value: value, at: at}
	t.cells = append(t.cells, c)
	t.byValue[value] = c
	return value
}

func (t *Tree) EndRedraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drawing = false
	t.paint()
}

func (t *Tree) SetHighlight(h domain.Handle, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c := t.lookup(h); c != nil {
		c.highlight = on
		t.paint()
	}
}

func (t *Tree) SetVisited(h domain.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c := t.lookup(h); c != nil {
		c.visited = true
		t.paint()
	}
}

func (t *Tree) ResetAllStyles() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range t.cells {
		c.highlight = false
		c.visited = false
	}
	t.paint()
}

func (t *Tree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
	t.canvas = domain.Canvas{}
	if t.repaint {
		t.out.ClearScreen()
	}
}

// Frame returns the current picture without writing it.
func (t *Tree) Frame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame()
}

func (t *Tree) reset() {
	t.cells = nil
	t.edges = nil
	clear(t.byValue)
}

func (t *Tree) lookup(h domain.Handle) *cell {
	v, ok := h.(int)
	if !ok {
		return nil
	}
	return t.byValue[v]
}

func (t *Tree) paint() {
	if t.drawing {
		return
	}
	if t.repaint {
		t.out.ClearScreen()
	}
	frame := t.frame()
	if frame == "" {
		return
	}
	_, _ = t.out.WriteString(frame + "\n")
}

// frame lays out one text row per tree level with a connector row between levels.
func (t *Tree) frame() string {
	if len(t.cells) == 0 || t.canvas.Width <= 0 {
		return ""
	}

	levels := 0
	for _, c := range t.cells {
		levels = max(levels, t.layout.Depth(c.at.Y)+1)
	}

	rows := make([][]*cell, levels)
	for _, c := range t.cells {
		d := t.layout.Depth(c.at.Y)
		rows[d] = append(rows[d], c)
	}

	connectors := make([][]rune, max(levels-1, 0))
	for i := range connectors {
		connectors[i] = []rune(strings.Repeat(" ", t.cols))
	}
	for _, e := range t.edges {
		d := t.layout.Depth(e.From.Y)
		if d < 0 || d >= len(connectors) {
			continue
		}
		from, to := t.column(e.From.X), t.column(e.To.X)
		mark := '\\'
		if to < from {
			mark = '/'
		}
		connectors[d][(from+to)/2] = mark
	}

	var b strings.Builder
	for d, row := range rows {
		t.writeRow(&b, row)
		if d < len(connectors) {
			b.WriteByte('\n')
			b.WriteString(strings.TrimRight(string(connectors[d]), " "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (t *Tree) writeRow(b *strings.Builder, row []*cell) {
	slices.SortFunc(row, func(a, c *cell) int { return a.value - c.value })
	pos := 0
	for _, c := range row {
		text := label(c)
		start := t.column(c.at.X) - len(text)/2
		if pos > 0 && start <= pos {
			start = pos + 1
		}
		start = max(start, 0)
		b.WriteString(strings.Repeat(" ", start-pos))
		b.WriteString(t.style(c, text))
		pos = start + len(text)
	}
}

func (t *Tree) column(x float64) int {
	col := int(math.Round(x / t.canvas.Width * float64(t.cols-1)))
	return min(max(col, 0), t.cols-1)
}

// label keeps states distinguishable without colour.
func label(c *cell) string {
	v := strconv.Itoa(c.value)
	switch {
	case c.highlight:
		return "[" + v + "]"
	case c.visited:
		return "(" + v + ")"
	}
	return v
}

func (t *Tree) style(c *cell, text string) string {
	s := t.out.String(text)
	switch {
	case c.highlight:
		return s.Foreground(t.out.Color("#fbbf24")).Bold().Reverse().String()
	case c.visited:
		return s.Foreground(t.out.Color("#34d399")).String()
	}
	return s.Foreground(t.out.Color("#818cf8")).String()
}

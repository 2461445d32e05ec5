// Package layout assigns drawing coordinates to every node of a tree.
package layout

import (
	"math"

	"github.com/aretw0/arbor/pkg/bst"
	"github.com/aretw0/arbor/pkg/domain"
)

// Config holds the geometry constants of the layout pass.
type Config struct {
	MinWidth        float64 `mapstructure:"min_width" yaml:"min_width"`
	MinHeight       float64 `mapstructure:"min_height" yaml:"min_height"`
	LevelWidth      float64 `mapstructure:"level_width" yaml:"level_width"`   // canvas width per leaf slot on the widest level
	LevelHeight     float64 `mapstructure:"level_height" yaml:"level_height"` // canvas height per level
	BottomPadding   float64 `mapstructure:"bottom_padding" yaml:"bottom_padding"`
	TopMargin       float64 `mapstructure:"top_margin" yaml:"top_margin"`
	MaxSpacing      float64 `mapstructure:"max_spacing" yaml:"max_spacing"`
	SpacingDecay    float64 `mapstructure:"spacing_decay" yaml:"spacing_decay"`
	VerticalSpacing float64 `mapstructure:"vertical_spacing" yaml:"vertical_spacing"`
}

// DefaultConfig returns the stock geometry.
func DefaultConfig() Config {
	return Config{
		MinWidth:        800,
		MinHeight:       600,
		LevelWidth:      100,
		LevelHeight:     80,
		BottomPadding:   100,
		TopMargin:       50,
		MaxSpacing:      200,
		SpacingDecay:    0.6,
		VerticalSpacing: 70,
	}
}

// CanvasFor returns the drawing extent for a tree of the given height.
func (c Config) CanvasFor(height int) domain.Canvas {
	treeWidth := math.Pow(2, float64(height-1))
	return domain.Canvas{
		Width:  math.Max(c.MinWidth, treeWidth*c.LevelWidth),
		Height: math.Max(c.MinHeight, float64(height)*c.LevelHeight+c.BottomPadding),
	}
}

// Compute positions the whole tree from scratch and returns its canvas.
// The root sits centred at the top margin and each level shrinks the
// horizontal child offset by SpacingDecay.
func Compute(root *domain.Node, cfg Config) domain.Canvas {
	canvas := cfg.CanvasFor(bst.Height(root))
	spacing := math.Min(canvas.Width/4, cfg.MaxSpacing)
	place(root, canvas.Width/2, cfg.TopMargin, spacing, cfg)
	return canvas
}

func place(n *domain.Node, x, y, spacing float64, cfg Config) {
	if n == nil {
		return
	}

	n.X = x
	n.Y = y

	next := spacing * cfg.SpacingDecay
	place(n.Left, x-spacing, y+cfg.VerticalSpacing, next, cfg)
	place(n.Right, x+spacing, y+cfg.VerticalSpacing, next, cfg)
}

// Edge is a parent to child segment.
type Edge struct {
	From domain.Point `json:"from"`
	To   domain.Point `json:"to"`
}

// Edges lists every parent-child segment in pre-order (left before right).
func Edges(root *domain.Node) []Edge {
	var edges []Edge
	bst.Walk(root, domain.PreOrder, func(n *domain.Node) {
		if n.Left != nil {
			edges = append(edges, Edge{From: n.Point(), To: n.Left.Point()})
		}
		if n.Right != nil {
			edges = append(edges, Edge{From: n.Point(), To: n.Right.Point()})
		}
	})
	return edges
}

// Depth converts a laid-out Y coordinate back to a level index.
func (c Config) Depth(y float64) int {
	if c.VerticalSpacing <= 0 {
		return 0
	}
	return int(math.Round((y - c.TopMargin) / c.VerticalSpacing))
}

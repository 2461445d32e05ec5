package runtime

import "time"

// Timings holds the pauses between animation steps.
type Timings struct {
	Build     time.Duration `mapstructure:"build" yaml:"build"`         // after each insertion
	Traversal time.Duration `mapstructure:"traversal" yaml:"traversal"` // after each visit
	Highlight time.Duration `mapstructure:"highlight" yaml:"highlight"` // until a highlight turns into visited
	Reveal    time.Duration `mapstructure:"reveal" yaml:"reveal"`       // between nodes of a redraw
}

// DefaultTimings returns the stock animation pacing.
func DefaultTimings() Timings {
	return Timings{
		Build:     500 * time.Millisecond,
		Traversal: 800 * time.Millisecond,
		Highlight: 600 * time.Millisecond,
		Reveal:    100 * time.Millisecond,
	}
}

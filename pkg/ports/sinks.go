package ports

import "github.com/aretw0/arbor/pkg/domain"

// InputSource yields the raw integers for a build.
type InputSource interface {
	// ReadIntegers returns domain.ErrEmptyInput when no valid integer was supplied.
	ReadIntegers() ([]int, error)
}

// StatsSink receives the tree statistics after a build or clear.
type StatsSink interface {
	PublishStats(stats domain.Stats)
}

// ProgressSink receives build progress after every insertion.
type ProgressSink interface {
	PublishProgress(current, total int)
}

// ResultSink receives the visited values once a traversal completes.
type ResultSink interface {
	PublishResult(kind domain.TraversalKind, values []int)
}

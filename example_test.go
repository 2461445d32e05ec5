package arbor_test

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// ExampleVisualizer shows a headless build followed by a traversal.
func ExampleVisualizer() {
	v := arbor.New(arbor.WithInstant())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go v.Run(ctx)

	run, err := v.Build(ctx, []int{8, 3, 10, 1, 6})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = run.Wait(ctx)

	run, _ = v.Traverse(ctx, domain.PreOrder)
	_ = run.Wait(ctx)

	stats := v.Snapshot().Stats
	fmt.Println(domain.FormatResult(run.Result()))
	fmt.Printf("count=%d height=%d leaves=%d\n", stats.Count, stats.Height, stats.LeafCount)
	// Output:
	// 8 → 3 → 1 → 6 → 10
	// count=5 height=3 leaves=3
}

/*
Package arbor animates the construction and traversal of binary search trees.

Integers are inserted one at a time into a BST, the tree is laid out on a 2D canvas,
and every step is replayed on a Renderer with a pause in between, so a viewer can
follow how the tree grows. Once built, the tree can be walked in-order, pre-order or
post-order; each visited node is highlighted and then marked as visited.

# Architecture

The core is independent from any drawing surface. A Visualizer owns the tree session
and a single-flight scheduler; collaborators are plugged through the interfaces in
pkg/ports:

  - Renderer: draws edges and nodes and applies highlight and visited styles.
  - StatsSink, ProgressSink, ResultSink: receive statistics, build progress and traversal results.
  - Clock: real time, or a virtual clock that plays animations instantly.

Only one animation runs at a time. A request made while another is in progress is
rejected with domain.ErrBusy and changes nothing.

# Usage

	v := arbor.New(arbor.WithRenderer(myRenderer), arbor.WithInstant())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go v.Run(ctx)

	run, err := v.Build(ctx, []int{50, 30, 70, 20, 40})
	if err != nil {
		log.Fatal(err)
	}
	_ = run.Wait(ctx)

	run, _ = v.Traverse(ctx, domain.InOrder)
	_ = run.Wait(ctx)
	fmt.Println(domain.FormatResult(run.Result())) // 20 → 30 → 40 → 50 → 70

Shape strategies (pkg/shape) reorder the input before building, for example to get a
minimum-height tree:

	run, err := v.BuildShaped(ctx, shape.Balanced, values)
*/
package arbor

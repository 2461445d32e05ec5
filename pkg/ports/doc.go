/*
Package ports defines the collaborator contracts of the Arbor core.

These interfaces decouple the scheduler from everything it drives or reports to,
allowing the same animation to reach a terminal, an SSE stream, a Redis channel
or a test recorder.

# Key Interfaces

  - Renderer: draws nodes and edges and applies highlight/visited styling.
  - InputSource: parses raw user text into integers.
  - StatsSink, ProgressSink, ResultSink: receive computed statistics, build progress and traversal results.
  - Clock: suspension and fire-and-forget timers, real or virtual.
*/
package ports

/*
Package domain contains the core data model shared by every Arbor package.

It defines the tree node, the layout primitives, the scheduler state, the
statistics and event payloads, and the sentinel errors surfaced to users. The
package is kept pure and free of I/O, timing or rendering concerns.

# Key Entities

  - Node: a binary search tree node with layout coordinates and an opaque visual handle.
  - State: the single-flight admission state (idle, building, traversing).
  - Stats / Progress: what the scheduler publishes to its sinks.
  - Event: the serializable form of a collaborator call, used for streaming.
  - TraversalKind: in-order, pre-order and post-order.
*/
package domain

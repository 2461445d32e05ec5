/*
Package session holds the state of one visualization session.

A Session owns the tree root, the single-flight busy guard and the latest
published progress, statistics and traversal results. It is created empty with
New and reset on every rebuild or clear. Snapshots give HTTP and MCP adapters a
detached copy without racing the scheduler.
*/
package session

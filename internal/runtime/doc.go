/*
Package runtime drives the BST animation.

A Scheduler owns a single driver goroutine (Loop) that executes admitted sequences of
Steps one at a time, pausing on a ports.Clock after each step. Requests are admitted
synchronously: while a build or traversal is in flight every further request fails
with domain.ErrBusy and nothing is mutated.

Highlight clears are fire-and-forget: the clock's AfterFunc posts them back to the
driver goroutine, so renderer calls never overlap. VirtualClock makes the whole
animation run instantly and deterministically, which is what the tests and the
CLI --instant flag use.
*/
package runtime

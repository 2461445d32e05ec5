/*
Package event serializes the animation.

Adapter implements ports.Renderer and every ports sink by emitting one domain.Event
per call. It is the common base of the transports that ship the animation
elsewhere: the SSE stream, the Redis publisher and the in-memory recorder.
*/
package event

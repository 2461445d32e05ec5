// Package fanout sends one animation to several renderers and sinks at once,
// such as a terminal and an event stream.
package fanout

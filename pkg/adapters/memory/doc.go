// Package memory provides an in-memory Recorder of the animation, for tests and embedding.
package memory

// Package testutils provides helpers shared by tests that drive a full visualizer.
package testutils

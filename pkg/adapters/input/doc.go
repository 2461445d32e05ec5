// Package input turns user text into the integers of a build.
package input

// Package redis publishes animation events on a Redis pub/sub channel so that
// out-of-process viewers can follow a build or traversal.
package redis

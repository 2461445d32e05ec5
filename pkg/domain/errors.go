package domain

import "errors"

// ErrEmptyInput is returned when a build or shape request has no valid integers.
var ErrEmptyInput = errors.New("no valid values supplied")

// ErrBusy is returned when a build, traversal or clear is requested while an animation is running.
var ErrBusy = errors.New("an animation is already in progress")

// ErrEmptyTree is returned when a traversal is requested before any tree was built.
var ErrEmptyTree = errors.New("tree is empty")

// ErrUnknownTraversal is returned when a traversal kind cannot be parsed.
var ErrUnknownTraversal = errors.New("unknown traversal kind")

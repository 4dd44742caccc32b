package services

import "errors"

var (
	// ErrStepNotFound: completion referenced a step id that is not in the
	// user's active path. Client and server state have diverged; the
	// request is rejected, never silently ignored.
	ErrStepNotFound = errors.New("step not found in active path")

	// ErrPathConflict: a concurrent completion advanced the path between
	// our read and write.
	ErrPathConflict = errors.New("learning path was modified concurrently")

	// ErrNoActivePath: a read that requires an existing path found none.
	ErrNoActivePath = errors.New("no active learning path")
)

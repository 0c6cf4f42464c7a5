package app

import "errors"

// Domain errors surfaced by planner operations. Validation happens at
// the mutating operation itself; the task list is never left partially
// updated.
var (
	ErrEmptyDescription = errors.New("task description is required")
	ErrTaskNotFound     = errors.New("task not found")
	ErrRegionFull       = errors.New("region is at capacity")
	ErrInvalidCapacity  = errors.New("capacity must be a positive integer")
)

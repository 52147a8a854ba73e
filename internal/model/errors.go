package model

import "errors"

var (
	// ErrUsage is returned for a wrong argument count or a recognized help flag.
	ErrUsage = errors.New("usage")
	// ErrNotFound is returned when a path or program cannot be resolved anywhere.
	ErrNotFound = errors.New("not found")
)

package main

import "errors"

var (
	// ErrInvalidPoint is returned when a submitted start or goal lies inside an obstacle.
	ErrInvalidPoint = errors.New("point collides with an obstacle")

	// ErrExhausted is returned when the node budget runs out before the goal is reached.
	ErrExhausted = errors.New("node budget exhausted before reaching goal")

	// ErrUnknownLayout is returned for obstacle layout ids with no definition.
	ErrUnknownLayout = errors.New("unknown obstacle layout")

	// ErrWrongPhase is returned when an operation is not valid in the current phase.
	ErrWrongPhase = errors.New("operation not valid in current phase")

	// ErrSamplingExhausted is returned when a bounded sampler could not find a free point.
	ErrSamplingExhausted = errors.New("no obstacle-free sample found")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

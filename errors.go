package shaderprog

import "errors"

// Package errors for descriptor assembly.
var (
	// ErrInvalidBinding is recorded when a block is added at a binding-point
	// index outside [0, BindingPointCount).
	ErrInvalidBinding = errors.New("shaderprog: invalid binding point")

	// ErrInvalidStage is recorded when a shader buffer is set for a stage
	// outside [0, StageCount).
	ErrInvalidStage = errors.New("shaderprog: invalid shader stage")

	// ErrTooManySamplers is returned when a sampler binding map runs out of
	// global sampler slots.
	ErrTooManySamplers = errors.New("shaderprog: too many samplers")
)

package building

import (
	"elevsim/arrivals"
	"elevsim/assigner"
	"elevsim/types"
)

const defaultCapacity = 10

type options struct {
	capacity   int
	startFloor types.FloorID
	generator  arrivals.Generator
	policy     assigner.Policy
}

type Option func(*options)

// WithCapacity sets the capacity of every elevator.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithStartFloor places every elevator on the given floor at construction.
func WithStartFloor(floor types.FloorID) Option {
	return func(o *options) {
		o.startFloor = floor
	}
}

func WithGenerator(g arrivals.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

func WithPolicy(p assigner.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

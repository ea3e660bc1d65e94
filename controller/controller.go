package controller

import (
	"errors"
	"slices"

	"elevsim/types"
)

var (
	ErrNotStill   = errors.New("elevator is not still")
	ErrNotEnRoute = errors.New("destination does not extend the current trip")
)

// SetDestination gives a still elevator a new destination. Moving elevators
// never retarget mid-trip.
func (e *Elevator) SetDestination(floor types.FloorID) error {
	if !e.IsStill() {
		return ErrNotStill
	}
	e.destination = floor
	return nil
}

// ExtendDestination pushes the destination farther along the current
// direction of travel so a call can be served en route.
func (e *Elevator) ExtendDestination(floor types.FloorID) error {
	dir := e.GetDirection()
	if dir == types.Still {
		return ErrNotStill
	}
	if types.DirectionBetween(e.destination, floor) != dir {
		return ErrNotEnRoute
	}
	e.destination = floor
	return nil
}

// Move advances the elevator one floor toward its destination. On arrival
// the next pending destination is committed in the same tick.
func (e *Elevator) Move() {
	if !e.IsStill() {
		e.floor += types.FloorID(e.GetDirection())
	}
	e.CommitNext()
}

// CommitNext pops the next useful pending destination if the elevator is still.
func (e *Elevator) CommitNext() {
	if !e.IsStill() {
		return
	}
	e.pruneTargets()
	if len(e.pending) == 0 {
		return
	}
	e.destination = e.pending[0]
	e.pending = e.pending[1:]
}

// Passes reports whether the elevator will reach `floor` on its way to the
// current destination, travelling in `dir`. The current floor is behind it.
func (e *Elevator) Passes(floor types.FloorID, dir types.Direction) bool {
	if dir == types.Still || e.GetDirection() != dir {
		return false
	}
	if dir == types.Up {
		return e.floor < floor && floor <= e.destination
	}
	return e.destination <= floor && floor < e.floor
}

func (e *Elevator) enqueue(floor types.FloorID) {
	if floor == e.destination || slices.Contains(e.pending, floor) {
		return
	}
	if e.Passes(floor, e.GetDirection()) {
		return
	}
	e.pending = append(e.pending, floor)
}

// drops pending floors nobody on board is headed to. Occupants bound for
// the current floor alight this tick.
func (e *Elevator) pruneTargets() {
	e.pending = slices.DeleteFunc(e.pending, func(f types.FloorID) bool {
		return f == e.floor || !e.hasOccupantFor(f)
	})
}

func (e *Elevator) hasOccupantFor(floor types.FloorID) bool {
	for _, p := range e.occupants {
		if p.Destination == floor {
			return true
		}
	}
	return false
}

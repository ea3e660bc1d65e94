package controller

import "elevsim/types"

// TransferError is the reason a person could not board. It never leaves the
// transfer loop.
type TransferError int

const (
	CapacityExceeded TransferError = iota + 1
	DirectionMismatch
)

func (err TransferError) Error() string {
	switch err {
	case CapacityExceeded:
		return "capacity exceeded"
	case DirectionMismatch:
		return "direction mismatch"
	}
	return "unknown transfer error"
}

// Board takes p on board. A full elevator rejects with CapacityExceeded, a
// person travelling the other way with DirectionMismatch.
func (e *Elevator) Board(p types.Person) error {
	if !e.HasCapacity() {
		return CapacityExceeded
	}
	dir := e.boardingDirection()
	if dir != types.Still && dir != p.Direction() {
		return DirectionMismatch
	}

	e.occupants = append(e.occupants, p)
	e.enqueue(p.Destination)
	return nil
}

// Alight removes and returns everyone whose destination is the current floor.
func (e *Elevator) Alight() []types.Person {
	var delivered []types.Person
	remaining := e.occupants[:0]
	for _, p := range e.occupants {
		if p.Destination == e.floor {
			delivered = append(delivered, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	e.occupants = remaining
	return delivered
}

// AgeOccupants increments the wait time of everyone on board.
func (e *Elevator) AgeOccupants() {
	for i := range e.occupants {
		e.occupants[i].WaitTime++
	}
}

// direction the elevator is committed to, or Still if it may still go either way.
func (e *Elevator) boardingDirection() types.Direction {
	if !e.IsStill() {
		return e.GetDirection()
	}
	if len(e.pending) > 0 {
		return types.DirectionBetween(e.floor, e.pending[0])
	}
	return types.Still
}

package controller

import "elevsim/types"

type Elevator struct {
	id          types.ElevatorID
	floor       types.FloorID
	destination types.FloorID
	pending     []types.FloorID
	capacity    int
	occupants   []types.Person
}

func NewElevator(id types.ElevatorID, startFloor types.FloorID, capacity int) *Elevator {
	return &Elevator{
		id:          id,
		floor:       startFloor,
		destination: startFloor,
		pending:     make([]types.FloorID, 0, capacity),
		capacity:    capacity,
		occupants:   make([]types.Person, 0, capacity),
	}
}

func (e *Elevator) GetID() types.ElevatorID {
	return e.id
}

func (e *Elevator) GetFloor() types.FloorID {
	return e.floor
}

func (e *Elevator) GetDestination() types.FloorID {
	return e.destination
}

// GetDirection derives the direction from the current and destination floor.
func (e *Elevator) GetDirection() types.Direction {
	return types.DirectionBetween(e.floor, e.destination)
}

func (e *Elevator) GetLoad() int {
	return len(e.occupants)
}

func (e *Elevator) GetCapacity() int {
	return e.capacity
}

func (e *Elevator) IsStill() bool {
	return e.floor == e.destination
}

func (e *Elevator) HasCapacity() bool {
	return len(e.occupants) < e.capacity
}

// GetPending returns a copy of the pending destination queue.
func (e *Elevator) GetPending() []types.FloorID {
	pendingCopy := make([]types.FloorID, len(e.pending))
	copy(pendingCopy, e.pending)
	return pendingCopy
}

// GetOccupants returns a copy of the people riding the elevator.
func (e *Elevator) GetOccupants() []types.Person {
	occupantsCopy := make([]types.Person, len(e.occupants))
	copy(occupantsCopy, e.occupants)
	return occupantsCopy
}

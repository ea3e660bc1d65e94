package types

import "github.com/google/uuid"

type FloorID int
type ElevatorID int

type Direction int

const (
	Down  Direction = -1
	Still Direction = 0
	Up    Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "still"
	}
}

// DirectionBetween returns the direction of travel from `from` to `to`.
func DirectionBetween(from, to FloorID) Direction {
	if from < to {
		return Up
	} else if from > to {
		return Down
	}
	return Still
}

// Person is a passenger. It is owned by exactly one floor queue or elevator
// at a time and is moved by value between them.
type Person struct {
	ID          uuid.UUID
	Origin      FloorID
	Destination FloorID
	WaitTime    int
}

func NewPerson(origin, destination FloorID) Person {
	return Person{
		ID:          uuid.New(),
		Origin:      origin,
		Destination: destination,
	}
}

func (p Person) Direction() Direction {
	return DirectionBetween(p.Origin, p.Destination)
}

// Arrived reports whether the person needs no transport at all.
func (p Person) Arrived() bool {
	return p.Origin == p.Destination
}

// ElevatorState is the read-only view of an elevator shared between the
// dispatcher and snapshot consumers.
type ElevatorState interface {
	GetID() ElevatorID
	GetFloor() FloorID
	GetDestination() FloorID
	GetDirection() Direction
	GetLoad() int
}

// Package snapshot holds read-only copies of building state for renderers
// and tests. Nothing in here aliases the live simulation.
package snapshot

import "elevsim/types"

type Floor struct {
	Number  types.FloorID
	Waiting []types.Person
}

type Elevator struct {
	ID          types.ElevatorID
	Floor       types.FloorID
	Destination types.FloorID
	Direction   types.Direction
	Pending     []types.FloorID
	Capacity    int
	Occupants   []types.Person
}

type Stats struct {
	Ticks     int
	Arrived   int
	Delivered int
	TotalWait int
	MaxWait   int
}

// MeanWait is the average wait time of delivered people.
func (s Stats) MeanWait() float64 {
	if s.Delivered == 0 {
		return 0
	}
	return float64(s.TotalWait) / float64(s.Delivered)
}

type Building struct {
	Floors    []Floor
	Elevators []Elevator
	Stats     Stats
}

func (e Elevator) GetID() types.ElevatorID {
	return e.ID
}

func (e Elevator) GetFloor() types.FloorID {
	return e.Floor
}

func (e Elevator) GetDestination() types.FloorID {
	return e.Destination
}

func (e Elevator) GetDirection() types.Direction {
	return e.Direction
}

func (e Elevator) GetLoad() int {
	return len(e.Occupants)
}

// Waiting counts people standing on floors.
func (b Building) Waiting() int {
	n := 0
	for _, f := range b.Floors {
		n += len(f.Waiting)
	}
	return n
}

// Riding counts people inside elevators.
func (b Building) Riding() int {
	n := 0
	for _, e := range b.Elevators {
		n += len(e.Occupants)
	}
	return n
}

// HallCalls aggregates, per floor, whether someone is waiting to go up
// (index 0) or down (index 1).
func (b Building) HallCalls() [][2]bool {
	aggMatrix := make([][2]bool, len(b.Floors))

	for floor_i, f := range b.Floors {
		for _, p := range f.Waiting {
			switch p.Direction() {
			case types.Up:
				aggMatrix[floor_i][0] = true
			case types.Down:
				aggMatrix[floor_i][1] = true
			}
		}
	}

	return aggMatrix
}

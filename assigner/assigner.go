package assigner

import (
	"fmt"

	"elevsim/types"

	"github.com/golang/glog"
)

// Call is a pending transportation request, derived from a person waiting on
// a floor. Calls are recomputed every tick and never stored.
type Call struct {
	Origin      types.FloorID
	Destination types.FloorID
}

func (c Call) Direction() types.Direction {
	return types.DirectionBetween(c.Origin, c.Destination)
}

// Car is an elevator as seen by the dispatcher.
type Car interface {
	types.ElevatorState
	GetPending() []types.FloorID
	SetDestination(floor types.FloorID) error
	ExtendDestination(floor types.FloorID) error
	Passes(floor types.FloorID, dir types.Direction) bool
}

// Policy assigns or extends elevator destinations for this tick's calls.
type Policy interface {
	Assign(calls []Call, cars []Car)
}

const (
	FirstFitName   = "first-fit"
	LowestCostName = "lowest-cost"
)

func ByName(name string) (Policy, error) {
	switch name {
	case "", FirstFitName:
		return FirstFit{}, nil
	case LowestCostName:
		return LowestCost{}, nil
	}
	return nil, fmt.Errorf("unknown dispatch policy %q", name)
}

// FirstFit scans calls in floor order and elevators in index order; the first
// elevator that can take a call gets it. Moving elevators may extend their trip
// for any call; still elevators are only sent to calls nobody covers yet.
// There is no load balancing and no starvation guarantee.
type FirstFit struct{}

func (FirstFit) Assign(calls []Call, cars []Car) {
	claimed := claimIdleAtOrigin(calls, cars)

	for _, call := range calls {
		isCovered := covered(call, cars)
		for i, car := range cars {
			if !eligible(car, call, claimed[i] || isCovered) {
				continue
			}
			if take(car, call) {
				claimed[i] = true
				break
			}
		}
	}
}

// LowestCost uses the same eligibility rules as FirstFit but hands each call
// to the eligible elevator with the lowest cost.
type LowestCost struct{}

func (LowestCost) Assign(calls []Call, cars []Car) {
	claimed := claimIdleAtOrigin(calls, cars)

	for _, call := range calls {
		isCovered := covered(call, cars)

		best := -1
		lowestCost := 0
		for i, car := range cars {
			if !eligible(car, call, claimed[i] || isCovered) {
				continue
			}
			if c := cost(car, call); best == -1 || c < lowestCost {
				best = i
				lowestCost = c
			}
		}
		if best != -1 && take(cars[best], call) {
			claimed[best] = true
		}
	}
}

// eligible reports whether car may take call under the still/en-route rules.
// A still elevator that is claimed, or whose help is not needed, is skipped.
func eligible(car Car, call Call, skipStill bool) bool {
	floor := car.GetFloor()
	dest := car.GetDestination()

	switch car.GetDirection() {
	case types.Still:
		return !skipStill
	case types.Up:
		return call.Direction() == types.Up && call.Origin >= floor && call.Destination > dest
	case types.Down:
		return call.Direction() == types.Down && call.Origin <= floor && call.Destination < dest
	}
	return false
}

func take(car Car, call Call) bool {
	var err error
	if car.GetDirection() == types.Still {
		err = car.SetDestination(call.Origin)
	} else {
		err = car.ExtendDestination(call.Destination)
	}
	if err != nil {
		glog.V(2).Infof("Elevator %d refused call %+v: %v", car.GetID(), call, err)
		return false
	}
	glog.V(2).Infof("Assigning call %+v to elevator %d, destination now %d", call, car.GetID(), car.GetDestination())
	return true
}

// covered reports whether some elevator is already on its way to the call's
// origin, or will pass it travelling the way the call wants to go.
func covered(call Call, cars []Car) bool {
	for _, car := range cars {
		if car.GetDestination() == call.Origin {
			return true
		}
		if car.Passes(call.Origin, call.Direction()) {
			return true
		}
	}
	return false
}

// still elevators already standing at a call's origin stay there to board.
func claimIdleAtOrigin(calls []Call, cars []Car) []bool {
	claimed := make([]bool, len(cars))
	for _, call := range calls {
		for i, car := range cars {
			if car.GetDirection() == types.Still && car.GetFloor() == call.Origin {
				claimed[i] = true
			}
		}
	}
	return claimed
}

// cost of sending car to call: distance, a penalty for heading away and one
// per pending stop.
func cost(car Car, call Call) int {
	floor := car.GetFloor()
	cost := 0

	if floor < call.Origin {
		cost += int(call.Origin - floor) // Add floor difference
		if car.GetDirection() == types.Down {
			cost += 10 // Penalty for opposite direction
		}
	} else if floor > call.Origin {
		cost += int(floor - call.Origin)
		if car.GetDirection() == types.Up {
			cost += 10 // Penalty for opposite direction
		}
	}

	cost += 5 * len(car.GetPending()) // Add cost for each pending stop
	cost += car.GetLoad()

	return cost
}

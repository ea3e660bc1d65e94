// Package building owns the floors and elevators of one simulation and
// advances them one tick at a time.
package building

import (
	"errors"
	"fmt"

	"elevsim/arrivals"
	"elevsim/assigner"
	"elevsim/config"
	"elevsim/controller"
	"elevsim/snapshot"
	"elevsim/types"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

var (
	ErrUnknownFloor    = errors.New("floor outside building")
	ErrDuplicatePerson = errors.New("person already in building")
)

// Building exclusively owns its floors and elevators. Both collections are
// fixed at construction. A Building is not safe for concurrent use.
type Building struct {
	floors    []Floor
	elevators []*controller.Elevator
	generator arrivals.Generator
	policy    assigner.Policy
	stats     snapshot.Stats
}

// New builds a building with floors numbered 0..floorCount-1 and
// elevatorCount still elevators.
func New(floorCount, elevatorCount int, opts ...Option) *Building {
	if floorCount < 1 || elevatorCount < 1 {
		panic(fmt.Sprintf("building needs at least one floor and one elevator, got %d and %d", floorCount, elevatorCount))
	}

	o := options{
		capacity:  defaultCapacity,
		generator: arrivals.None{},
		policy:    assigner.FirstFit{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.startFloor < 0 || int(o.startFloor) >= floorCount {
		panic(fmt.Sprintf("start floor %d outside building", o.startFloor))
	}
	if o.capacity < 1 {
		panic(fmt.Sprintf("elevator capacity must be positive, got %d", o.capacity))
	}

	b := &Building{
		floors:    make([]Floor, floorCount),
		elevators: make([]*controller.Elevator, elevatorCount),
		generator: o.generator,
		policy:    o.policy,
	}
	for i := range b.floors {
		b.floors[i].number = types.FloorID(i)
	}
	for i := range b.elevators {
		b.elevators[i] = controller.NewElevator(types.ElevatorID(i), o.startFloor, o.capacity)
	}
	return b
}

// FromConfig builds a building with a random arrival generator.
func FromConfig(c config.Config) (*Building, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, err := assigner.ByName(c.Policy)
	if err != nil {
		return nil, err
	}

	glog.Infof("Building with %d floors, %d elevators of capacity %d, policy %s",
		c.Floors, c.Elevators, c.Capacity, c.Policy)

	return New(c.Floors, c.Elevators,
		WithCapacity(c.Capacity),
		WithStartFloor(types.FloorID(c.StartFloor)),
		WithGenerator(arrivals.FromConfig(c.Arrivals)),
		WithPolicy(policy),
	), nil
}

// Tick advances the simulation by one step:
// arrivals, dispatch, movement, alighting, boarding.
func (b *Building) Tick() {
	b.arrive()
	b.dispatch()
	b.move()
	b.alight()
	b.board()
	b.age()

	b.stats.Ticks++
	b.checkInvariants()
}

// Enqueue places a person on their origin floor outside the generator.
func (b *Building) Enqueue(p types.Person) error {
	if !b.validFloor(p.Origin) || !b.validFloor(p.Destination) {
		return fmt.Errorf("person %s from %d to %d: %w", p.ID, p.Origin, p.Destination, ErrUnknownFloor)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	} else if b.holds(p.ID) {
		return fmt.Errorf("person %s: %w", p.ID, ErrDuplicatePerson)
	}
	b.admit(p)
	return nil
}

// holds reports whether a floor or elevator already has the person.
func (b *Building) holds(id uuid.UUID) bool {
	for i := range b.floors {
		for _, p := range b.floors[i].waiting {
			if p.ID == id {
				return true
			}
		}
	}
	for _, e := range b.elevators {
		for _, p := range e.GetOccupants() {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

func (b *Building) arrive() {
	for _, p := range b.generator.Generate(b.stats.Ticks, len(b.floors)) {
		if err := b.Enqueue(p); err != nil {
			glog.Warningf("Dropping arrival: %v", err)
		}
	}
}

// admit counts the arrival. A person already at their destination is
// delivered on the spot and never becomes a call.
func (b *Building) admit(p types.Person) {
	b.stats.Arrived++
	if p.Arrived() {
		b.deliver(p)
		return
	}
	b.floors[p.Origin].add(p)
}

func (b *Building) dispatch() {
	calls := make([]assigner.Call, 0)
	for i := range b.floors {
		for _, p := range b.floors[i].waiting {
			calls = append(calls, assigner.Call{Origin: p.Origin, Destination: p.Destination})
		}
	}
	if len(calls) == 0 {
		return
	}

	cars := make([]assigner.Car, len(b.elevators))
	for i, e := range b.elevators {
		cars[i] = e
	}
	b.policy.Assign(calls, cars)
}

func (b *Building) move() {
	for _, e := range b.elevators {
		e.Move()
	}
}

func (b *Building) alight() {
	for _, e := range b.elevators {
		for _, p := range e.Alight() {
			b.deliver(p)
		}
	}
}

func (b *Building) board() {
	for i := range b.floors {
		for _, e := range b.elevators {
			if e.GetFloor() == b.floors[i].number {
				b.boardFrom(&b.floors[i], e)
			}
		}
	}
	for _, e := range b.elevators {
		e.CommitNext()
	}
}

// boardFrom scans the floor's queue in order. A direction mismatch skips the
// person, a full elevator ends the scan.
func (b *Building) boardFrom(f *Floor, e *controller.Elevator) {
	remaining := f.waiting[:0]
	full := false

	for _, p := range f.waiting {
		if full {
			remaining = append(remaining, p)
			continue
		}

		err := e.Board(p)
		switch {
		case err == nil:
			glog.V(1).Infof("Person %s boarded elevator %d on floor %d", p.ID, e.GetID(), f.number)
		case errors.Is(err, controller.CapacityExceeded):
			glog.V(1).Infof("Elevator %d full on floor %d, person %s keeps waiting", e.GetID(), f.number, p.ID)
			full = true
			remaining = append(remaining, p)
		default:
			remaining = append(remaining, p)
		}
	}

	f.waiting = remaining
}

func (b *Building) age() {
	for i := range b.floors {
		b.floors[i].age()
	}
	for _, e := range b.elevators {
		e.AgeOccupants()
	}
}

func (b *Building) deliver(p types.Person) {
	glog.V(1).Infof("Delivered person %s to floor %d after %d ticks", p.ID, p.Destination, p.WaitTime)

	b.stats.Delivered++
	b.stats.TotalWait += p.WaitTime
	if p.WaitTime > b.stats.MaxWait {
		b.stats.MaxWait = p.WaitTime
	}
}

func (b *Building) validFloor(f types.FloorID) bool {
	return f >= 0 && int(f) < len(b.floors)
}

// checkInvariants panics if a person is held twice, an elevator is over
// capacity or off the building, or someone waits on the wrong floor.
func (b *Building) checkInvariants() {
	seen := make(map[uuid.UUID]struct{})
	hold := func(p types.Person, where string) {
		if _, dup := seen[p.ID]; dup {
			panic(fmt.Sprintf("person %s held twice (again in %s)", p.ID, where))
		}
		seen[p.ID] = struct{}{}
	}

	for i := range b.floors {
		f := &b.floors[i]
		for _, p := range f.waiting {
			if p.Origin != f.number {
				panic(fmt.Sprintf("person %s with origin %d waiting on floor %d", p.ID, p.Origin, f.number))
			}
			hold(p, fmt.Sprintf("floor %d", f.number))
		}
	}

	for _, e := range b.elevators {
		if e.GetLoad() > e.GetCapacity() {
			panic(fmt.Sprintf("elevator %d carries %d people, capacity %d", e.GetID(), e.GetLoad(), e.GetCapacity()))
		}
		if !b.validFloor(e.GetFloor()) || !b.validFloor(e.GetDestination()) {
			panic(fmt.Sprintf("elevator %d at floor %d heading to %d, outside building", e.GetID(), e.GetFloor(), e.GetDestination()))
		}
		for _, p := range e.GetOccupants() {
			hold(p, fmt.Sprintf("elevator %d", e.GetID()))
		}
	}
}

// Floors returns a deep copy of every floor's waiting list.
func (b *Building) Floors() []snapshot.Floor {
	out := make([]snapshot.Floor, len(b.floors))
	for i := range b.floors {
		out[i].Number = b.floors[i].number
		mustCopy(&out[i].Waiting, b.floors[i].waiting)
	}
	return out
}

// Elevators returns a deep copy of every elevator's position, queue and
// occupants.
func (b *Building) Elevators() []snapshot.Elevator {
	out := make([]snapshot.Elevator, len(b.elevators))
	for i, e := range b.elevators {
		mustCopy(&out[i], snapshot.Elevator{
			ID:          e.GetID(),
			Floor:       e.GetFloor(),
			Destination: e.GetDestination(),
			Direction:   e.GetDirection(),
			Pending:     e.GetPending(),
			Capacity:    e.GetCapacity(),
			Occupants:   e.GetOccupants(),
		})
	}
	return out
}

func (b *Building) Stats() snapshot.Stats {
	return b.stats
}

func (b *Building) Snapshot() snapshot.Building {
	return snapshot.Building{
		Floors:    b.Floors(),
		Elevators: b.Elevators(),
		Stats:     b.stats,
	}
}

func mustCopy(dst, src any) {
	if err := deepcopy.Copy(dst, src); err != nil {
		panic(fmt.Sprintf("failed to deepcopy building state: %v", err))
	}
}

package building

import (
	"errors"
	"testing"

	"elevsim/arrivals"
	"elevsim/assigner"
	"elevsim/config"
	"elevsim/types"

	"github.com/google/uuid"
)

func mustEnqueue(t *testing.T, b *Building, p types.Person) {
	t.Helper()
	if err := b.Enqueue(p); err != nil {
		t.Fatalf("enqueue %+v: %v", p, err)
	}
}

func TestNewFixedSize(t *testing.T) {
	b := New(10, 3)

	if len(b.Floors()) != 10 || len(b.Elevators()) != 3 {
		t.Fatalf("expected 10 floors and 3 elevators, got %d and %d", len(b.Floors()), len(b.Elevators()))
	}
	for i, f := range b.Floors() {
		if f.Number != types.FloorID(i) {
			t.Errorf("floor %d numbered %d", i, f.Number)
		}
	}
	for _, e := range b.Elevators() {
		if e.Floor != 0 || e.Direction != types.Still || e.Capacity != defaultCapacity {
			t.Errorf("unexpected initial elevator %+v", e)
		}
	}
}

// Scenario A: a still elevator fetches a person two floors up.
func TestScenarioPickup(t *testing.T) {
	b := New(5, 1, WithStartFloor(1), WithCapacity(4))
	p := types.NewPerson(3, 1)
	mustEnqueue(t, b, p)

	b.Tick()
	if d := b.Elevators()[0].Destination; d != 3 {
		t.Fatalf("expected destination 3 after one tick, was %d", d)
	}

	// dispatch and move share a tick, so boarding happens on tick 2, within the bound
	boarded := false
	for range 3 {
		b.Tick()
		e := b.Elevators()[0]
		if len(e.Occupants) == 1 && e.Occupants[0].ID == p.ID {
			if e.Floor != 3 {
				t.Errorf("person boarded on floor %d", e.Floor)
			}
			boarded = true
			break
		}
	}
	if !boarded {
		t.Fatalf("person never boarded")
	}
	if n := len(b.Floors()[3].Waiting); n != 0 {
		t.Errorf("floor 3 still has %d waiting", n)
	}
}

// Scenario B: a full elevator leaves a same-direction person on the floor.
func TestScenarioFullElevator(t *testing.T) {
	b := New(6, 1, WithCapacity(1))
	mustEnqueue(t, b, types.NewPerson(0, 5))
	b.Tick()

	e := b.Elevators()[0]
	if len(e.Occupants) != 1 || e.Destination != 5 {
		t.Fatalf("expected one rider heading to 5, got %+v", e)
	}

	waiting := types.NewPerson(1, 4)
	mustEnqueue(t, b, waiting)
	b.Tick()

	e = b.Elevators()[0]
	if e.Floor != 1 {
		t.Fatalf("expected elevator at floor 1, was %d", e.Floor)
	}
	floor := b.Floors()[1]
	if len(floor.Waiting) != 1 || floor.Waiting[0].ID != waiting.ID {
		t.Fatalf("person should be left on floor 1, floor has %+v", floor.Waiting)
	}
	before := floor.Waiting[0].WaitTime

	b.Tick()
	after := b.Floors()[1].Waiting[0].WaitTime
	if after != before+1 {
		t.Errorf("wait time should go from %d to %d, was %d", before, before+1, after)
	}
}

// Scenario C: origin == destination is delivered without transport.
func TestScenarioAlreadyThere(t *testing.T) {
	b := New(4, 2)
	mustEnqueue(t, b, types.NewPerson(2, 2))

	for range 10 {
		b.Tick()
	}

	s := b.Snapshot()
	if s.Stats.Delivered != 1 || s.Waiting() != 0 || s.Riding() != 0 {
		t.Errorf("expected one immediate delivery, got %+v", s.Stats)
	}
	for _, e := range s.Elevators {
		if e.Floor != 0 || e.Destination != 0 {
			t.Errorf("elevator %d moved for a person already there: %+v", e.ID, e)
		}
	}
}

func TestFullTripDelivers(t *testing.T) {
	b := New(8, 1)
	mustEnqueue(t, b, types.NewPerson(5, 2))

	for range 20 {
		b.Tick()
	}

	s := b.Stats()
	if s.Delivered != 1 {
		t.Fatalf("expected delivery, stats %+v", s)
	}
	// five ticks to reach floor 5, three to reach floor 2; the delivery tick is not counted
	if s.MaxWait != 7 {
		t.Errorf("expected wait time 7, was %d", s.MaxWait)
	}
}

func TestBoardingSkipsOppositeDirection(t *testing.T) {
	b := New(5, 1, WithStartFloor(2))
	up := types.NewPerson(2, 4)
	down := types.NewPerson(2, 0)
	upShort := types.NewPerson(2, 3)
	for _, p := range []types.Person{up, down, upShort} {
		mustEnqueue(t, b, p)
	}

	b.Tick()

	e := b.Elevators()[0]
	if len(e.Occupants) != 2 || e.Occupants[0].ID != up.ID || e.Occupants[1].ID != upShort.ID {
		t.Errorf("expected both upward riders on board, got %+v", e.Occupants)
	}
	if e.Destination != 4 {
		t.Errorf("expected destination 4, was %d", e.Destination)
	}
	waiting := b.Floors()[2].Waiting
	if len(waiting) != 1 || waiting[0].ID != down.ID {
		t.Errorf("expected downward person left waiting, got %+v", waiting)
	}
}

func TestEnqueueRejectsDuplicate(t *testing.T) {
	b := New(5, 1)
	p := types.NewPerson(3, 1)
	mustEnqueue(t, b, p)

	if err := b.Enqueue(p); !errors.Is(err, ErrDuplicatePerson) {
		t.Fatalf("expected ErrDuplicatePerson, was %v", err)
	}
	if b.Stats().Arrived != 1 {
		t.Errorf("duplicate counted as arrival, arrived %d", b.Stats().Arrived)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("tick panicked after rejected duplicate: %v", r)
		}
	}()
	b.Tick()
}

func TestScriptedDuplicateIsDropped(t *testing.T) {
	p := types.NewPerson(1, 2)
	b := New(3, 1, WithGenerator(arrivals.Script{0: {p, p}}))

	b.Tick()

	if b.Stats().Arrived != 1 {
		t.Errorf("expected one accepted arrival, was %d", b.Stats().Arrived)
	}
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("capacity %d accepted", capacity)
				}
			}()
			New(3, 1, WithCapacity(capacity))
		}()
	}
}

func TestEnqueueRejectsUnknownFloor(t *testing.T) {
	b := New(3, 1)
	err := b.Enqueue(types.NewPerson(1, 7))
	if !errors.Is(err, ErrUnknownFloor) {
		t.Errorf("expected ErrUnknownFloor, was %v", err)
	}
	if b.Stats().Arrived != 0 {
		t.Errorf("rejected person counted as arrival")
	}
}

func TestGeneratorDropsOutOfRangeArrivals(t *testing.T) {
	script := arrivals.Script{
		0: {{Origin: 0, Destination: 9}, {Origin: 1, Destination: 2}},
	}
	b := New(3, 1, WithGenerator(script))
	b.Tick()

	if b.Stats().Arrived != 1 {
		t.Errorf("expected one accepted arrival, was %d", b.Stats().Arrived)
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	b := New(3, 1)
	mustEnqueue(t, b, types.NewPerson(2, 0))

	floors := b.Floors()
	floors[2].Waiting[0].Destination = 1

	if b.Floors()[2].Waiting[0].Destination != 0 {
		t.Errorf("snapshot mutation leaked into building")
	}
}

func TestElevatorSnapshotDoesNotAlias(t *testing.T) {
	b := New(4, 1)
	mustEnqueue(t, b, types.NewPerson(0, 3))
	b.Tick()

	elevators := b.Elevators()
	if len(elevators[0].Occupants) != 1 {
		t.Fatalf("expected one rider, got %+v", elevators[0])
	}
	elevators[0].Occupants[0].Destination = 1

	if b.Elevators()[0].Occupants[0].Destination != 3 {
		t.Errorf("snapshot mutation leaked into elevator")
	}
}

func TestInvariantViolationPanics(t *testing.T) {
	b := New(3, 1)
	p := types.NewPerson(1, 2)
	b.floors[1].add(p)
	b.floors[1].add(p)

	defer func() {
		if recover() == nil {
			t.Errorf("duplicate person did not panic")
		}
	}()
	b.checkInvariants()
}

type tickCounts struct {
	present   int
	arrived   int
	delivered int
}

func counts(b *Building) tickCounts {
	s := b.Snapshot()
	return tickCounts{
		present:   s.Waiting() + s.Riding(),
		arrived:   s.Stats.Arrived,
		delivered: s.Stats.Delivered,
	}
}

func waitTimes(b *Building) map[uuid.UUID]int {
	waits := make(map[uuid.UUID]int)
	for _, f := range b.Floors() {
		for _, p := range f.Waiting {
			waits[p.ID] = p.WaitTime
		}
	}
	for _, e := range b.Elevators() {
		for _, p := range e.Occupants {
			waits[p.ID] = p.WaitTime
		}
	}
	return waits
}

func TestRandomRunProperties(t *testing.T) {
	policies := []assigner.Policy{assigner.FirstFit{}, assigner.LowestCost{}}

	for _, policy := range policies {
		a := config.Arrivals{Every: 1, MaxPerTick: 4, LobbyFloor: 0, LobbyBias: 0.4, Seed: 42}
		b := New(10, 3, WithCapacity(3), WithGenerator(arrivals.FromConfig(a)), WithPolicy(policy))

		for range 300 {
			before := counts(b)
			prevWaits := waitTimes(b)
			prevElevators := b.Elevators()

			b.Tick()

			after := counts(b)
			arrived := after.arrived - before.arrived
			delivered := after.delivered - before.delivered
			if after.present+delivered != before.present+arrived {
				t.Fatalf("%T: conservation broken: before %+v after %+v", policy, before, after)
			}

			for id, w := range waitTimes(b) {
				if prev, ok := prevWaits[id]; ok && w != prev+1 {
					t.Fatalf("%T: wait time of %s went from %d to %d", policy, id, prev, w)
				}
			}

			for i, e := range b.Elevators() {
				prev := prevElevators[i]
				if len(e.Occupants) > e.Capacity {
					t.Fatalf("%T: elevator %d over capacity", policy, e.ID)
				}
				if d := e.Floor - prev.Floor; d > 1 || d < -1 {
					t.Fatalf("%T: elevator %d jumped from %d to %d", policy, e.ID, prev.Floor, e.Floor)
				}
				if prev.Direction == types.Still || e.Destination == prev.Destination {
					continue
				}
				extended := types.DirectionBetween(prev.Destination, e.Destination) == prev.Direction
				reached := e.Floor == prev.Destination
				if !extended && !reached {
					t.Fatalf("%T: elevator %d retargeted mid-trip from %d to %d", policy, e.ID, prev.Destination, e.Destination)
				}
			}
		}

		if b.Stats().Delivered == 0 {
			t.Errorf("%T: nobody delivered in 300 ticks", policy)
		}
	}
}

func TestFromConfig(t *testing.T) {
	c := config.Default()
	c.Policy = "lowest-cost"
	c.Arrivals.Seed = 7

	b, err := FromConfig(c)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if len(b.Floors()) != c.Floors || len(b.Elevators()) != c.Elevators {
		t.Errorf("building does not match config")
	}

	c.Floors = 0
	if _, err := FromConfig(c); err == nil {
		t.Errorf("invalid config accepted")
	}
}

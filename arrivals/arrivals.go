// Package arrivals produces the people who enter the building each tick.
package arrivals

import (
	"math/rand/v2"
	"time"

	"elevsim/config"
	"elevsim/types"

	"github.com/google/uuid"
)

// Generator produces zero or more people for the given tick. Origins and
// destinations must lie in 0..floorCount-1.
type Generator interface {
	Generate(tick int, floorCount int) []types.Person
}

// Func adapts a plain function to a Generator.
type Func func(tick int, floorCount int) []types.Person

func (f Func) Generate(tick int, floorCount int) []types.Person {
	return f(tick, floorCount)
}

// None never produces anyone.
type None struct{}

func (None) Generate(int, int) []types.Person {
	return nil
}

// Script replays a fixed list of people per tick. People without an ID get a
// fresh one.
type Script map[int][]types.Person

func (s Script) Generate(tick int, _ int) []types.Person {
	people := make([]types.Person, 0, len(s[tick]))
	for _, p := range s[tick] {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		people = append(people, p)
	}
	return people
}

// Random creates up to maxPerTick people every `every` ticks on uniformly
// chosen floors. With probability lobbyBias the destination is the lobby.
type Random struct {
	rng        *rand.Rand
	every      int
	maxPerTick int
	lobby      types.FloorID
	lobbyBias  float64
}

func NewRandom(seed uint64, every, maxPerTick int, lobby types.FloorID, lobbyBias float64) *Random {
	if every < 1 {
		every = 1
	}
	return &Random{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		every:      every,
		maxPerTick: maxPerTick,
		lobby:      lobby,
		lobbyBias:  lobbyBias,
	}
}

// FromConfig builds a Random generator. A zero seed is replaced by the clock.
func FromConfig(c config.Arrivals) *Random {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewRandom(seed, c.Every, c.MaxPerTick, types.FloorID(c.LobbyFloor), c.LobbyBias)
}

func (r *Random) Generate(tick int, floorCount int) []types.Person {
	if floorCount < 1 || r.maxPerTick < 1 || tick%r.every != 0 {
		return nil
	}

	n := r.rng.IntN(r.maxPerTick + 1)
	people := make([]types.Person, 0, n)
	for range n {
		origin := types.FloorID(r.rng.IntN(floorCount))
		destination := types.FloorID(r.rng.IntN(floorCount))
		if r.rng.Float64() < r.lobbyBias && int(r.lobby) < floorCount {
			destination = r.lobby
		}
		people = append(people, types.NewPerson(origin, destination))
	}
	return people
}

package building

import "elevsim/types"

// Floor holds the people waiting to board, in arrival order.
type Floor struct {
	number  types.FloorID
	waiting []types.Person
}

func (f *Floor) Number() types.FloorID {
	return f.number
}

func (f *Floor) add(p types.Person) {
	f.waiting = append(f.waiting, p)
}

func (f *Floor) age() {
	for i := range f.waiting {
		f.waiting[i].WaitTime++
	}
}

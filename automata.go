package automaton

import (
	"strconv"
)

// MakeEmpty
// Returns a new automaton with the empty language.
func MakeEmpty() *Automaton {
	s := NewState("0")
	a, _ := NewAutomaton([]State{s}, nil, nil, s, nil)
	return a
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func MakeEmptyString() *Automaton {
	s := NewState("0")
	a, _ := NewAutomaton([]State{s}, nil, nil, s, []State{s})
	return a
}

// MakeString
// Returns a new automaton that accepts exactly s. States are named after the number of runes
// read so far.
func MakeString(s string) *Automaton {
	b := NewBuilder()
	state := b.AddState("0")
	b.SetInitial(state)

	i := 0
	for _, c := range s {
		i++
		next := b.AddState(strconv.Itoa(i))
		b.AddSymbols(c)
		b.AddTransition(state, c, next)
		state = next
	}
	b.SetAccept(state)

	a, err := b.Build()
	if err != nil {
		// States are fresh and each has a single outgoing transition.
		panic(err)
	}
	return a
}

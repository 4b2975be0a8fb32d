package automaton

import "unicode/utf8"

// Run Returns true if the given string is accepted by the automaton. Each rune of s is one input
// symbol.
func Run(a *Automaton, s string) bool {
	state := a.initial
	for _, c := range s {
		if state == -1 {
			// dead state is absorbing
			return false
		}
		state = a.step(state, c)
	}
	return a.isAcceptIndex(state)
}

// Accepts Returns true if input belongs to the language of the automaton. Symbols outside the
// alphabet are not an error, they lead to the dead state.
func (a *Automaton) Accepts(input string) bool {
	return Run(a, input)
}

// AcceptsSymbols Like Accepts for input that is already split into symbols.
func (a *Automaton) AcceptsSymbols(input []rune) bool {
	state := a.initial
	for _, c := range input {
		if state == -1 {
			return false
		}
		state = a.step(state, c)
	}
	return a.isAcceptIndex(state)
}

// RunBytes Returns true if the given UTF-8 byte array is accepted by this automaton. Invalid
// encodings decode to utf8.RuneError, which has no transition unless one is declared for it.
func (a *Automaton) RunBytes(b []byte) bool {
	state := a.initial
	for len(b) > 0 {
		if state == -1 {
			return false
		}
		c, size := utf8.DecodeRune(b)
		b = b[size:]
		state = a.step(state, c)
	}
	return a.isAcceptIndex(state)
}

// Step Performs lookup in transitions. Returns DeadState if s is the dead state, is not declared,
// or has no transition on symbol.
func (a *Automaton) Step(s State, symbol rune) State {
	i, ok := a.index[s]
	if !ok {
		return DeadState
	}
	return a.stateAt(a.step(i, symbol))
}

// Trace Returns the states visited while reading input, starting with the initial state. The
// trace stops at the first entry into the dead state.
func (a *Automaton) Trace(input string) []State {
	path := make([]State, 0, utf8.RuneCountInString(input)+1)
	state := a.initial
	path = append(path, a.states[state])
	for _, c := range input {
		state = a.step(state, c)
		path = append(path, a.stateAt(state))
		if state == -1 {
			break
		}
	}
	return path
}

// Returns the destination index, -1 if no matching outgoing transition.
func (a *Automaton) step(state int, symbol rune) int {
	dest, ok := a.delta[transitionKey{from: state, symbol: symbol}]
	if !ok {
		return -1
	}
	return dest
}

func (a *Automaton) stateAt(i int) State {
	if i == -1 {
		return DeadState
	}
	return a.states[i]
}

func (a *Automaton) isAcceptIndex(i int) bool {
	return i != -1 && a.isAccept.Test(uint(i))
}

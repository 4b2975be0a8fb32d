package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// ReachableStates Returns the set of state indexes (definition order) reachable from the initial
// state through the transition relation. The dead state is not part of the set.
func ReachableStates(a *Automaton) *bitset.BitSet {
	live := bitset.New(uint(a.GetNumStates()))
	live.Set(uint(a.initial))

	outgoing := a.outgoing()
	workList := []int{a.initial}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, dest := range outgoing[s] {
			if !live.Test(uint(dest)) {
				live.Set(uint(dest))
				workList = append(workList, dest)
			}
		}
	}
	return live
}

// UnreachableStates Returns the declared states that no input can lead to, in definition order.
func UnreachableStates(a *Automaton) []State {
	live := ReachableStates(a)
	res := make([]State, 0)
	for i, s := range a.states {
		if !live.Test(uint(i)) {
			res = append(res, s)
		}
	}
	return res
}

// IsEmptyLanguage
// Returns true if the given automaton accepts no strings.
func IsEmptyLanguage(a *Automaton) bool {
	if a.isAccept.Test(uint(a.initial)) {
		// Common case: it accepts the empty string
		return false
	}
	if a.isAccept.None() {
		return true
	}
	live := ReachableStates(a)
	return live.IntersectionCardinality(a.isAccept) == 0
}

// Only transitions actually taken by the engine count; ambiguous extras are skipped.
func (a *Automaton) outgoing() [][]int {
	res := make([][]int, len(a.states))
	for key, dest := range a.delta {
		res[key.from] = append(res[key.from], dest)
	}
	return res
}

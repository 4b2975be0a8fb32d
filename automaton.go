package automaton

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrMalformedAutomaton is returned when the definition violates the automaton invariants: an
	// initial or accepting state that is not declared, a transition between undeclared states, or
	// two transitions leaving the same state on the same symbol.
	ErrMalformedAutomaton = errors.New("malformed automaton")

	errNoInitialState = fmt.Errorf("%w: no initial state", ErrMalformedAutomaton)
)

// DeadStateName is the name carried by the synthetic sink state.
const DeadStateName = "Dead State"

// State A named automaton state. States are values: two states are equal iff their names are
// equal, with the exception of the dead state which never equals a declared state.
type State struct {
	name string
	dead bool
}

// DeadState is the absorbing sink entered on any undefined transition. It is never accepting.
var DeadState = State{name: DeadStateName, dead: true}

func NewState(name string) State {
	return State{name: name}
}

func (s State) Name() string {
	return s.name
}

// IsDead Returns true if this is the synthetic dead state.
func (s State) IsDead() bool {
	return s.dead
}

func (s State) String() string {
	return s.name
}

// Transition Moving from From to To when reading Symbol.
type Transition struct {
	From   State
	Symbol rune
	To     State
}

func (t Transition) String() string {
	return t.From.name + Separator + string(t.Symbol) + Separator + t.To.name
}

type transitionKey struct {
	from   int
	symbol rune
}

// Automaton An immutable deterministic finite automaton. States keep their definition order and
// are addressed internally by index; the dead state is index -1 and has no outgoing transitions.
// Once built, an Automaton is never mutated, so it is safe to share between goroutines.
type Automaton struct {
	states []State

	// Position of each declared state in states.
	index map[State]int

	// Informational only; symbols outside the alphabet simply have no transition.
	alphabet []rune

	// Transitions in definition order, exact duplicates removed.
	transitions []Transition

	// Destination index keyed by source index and symbol.
	delta map[transitionKey]int

	initial int

	accepting []State

	isAccept *bitset.BitSet

	// True if ambiguous transitions were allowed and resolved by definition order.
	firstMatch bool
}

type options struct {
	firstMatch bool
}

// Option configures NewAutomaton.
type Option func(*options)

// WithFirstMatch Accept several transitions leaving the same state on the same symbol. The first one
// in definition order wins, the others are kept for serialization but never taken.
func WithFirstMatch() Option {
	return func(o *options) {
		o.firstMatch = true
	}
}

// NewAutomaton Creates an automaton from its five defining collections. States, alphabet symbols,
// accepting states and identical transitions are deduplicated, keeping the first occurrence.
// Returns ErrMalformedAutomaton if a referenced state is not declared, if a state name is empty,
// or, unless WithFirstMatch is given, if the transition relation is not a partial function.
func NewAutomaton(states []State, alphabet []rune, transitions []Transition, initial State,
	accepting []State, opts ...Option) (*Automaton, error) {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}

	a := &Automaton{
		states:      make([]State, 0, len(states)),
		index:       make(map[State]int, len(states)),
		alphabet:    make([]rune, 0, len(alphabet)),
		transitions: make([]Transition, 0, len(transitions)),
		delta:       make(map[transitionKey]int, len(transitions)),
		isAccept:    bitset.New(uint(len(states))),
		firstMatch:  o.firstMatch,
	}

	for _, s := range states {
		if s.dead {
			return nil, fmt.Errorf("%w: the dead state cannot be declared", ErrMalformedAutomaton)
		}
		if s.name == "" {
			return nil, fmt.Errorf("%w: empty state name", ErrMalformedAutomaton)
		}
		if _, ok := a.index[s]; ok {
			continue
		}
		a.index[s] = len(a.states)
		a.states = append(a.states, s)
	}

	for _, c := range alphabet {
		if !slices.Contains(a.alphabet, c) {
			a.alphabet = append(a.alphabet, c)
		}
	}

	start, ok := a.index[initial]
	if !ok {
		return nil, fmt.Errorf("%w: initial state %q is not declared", ErrMalformedAutomaton, initial.name)
	}
	a.initial = start

	for _, s := range accepting {
		i, ok := a.index[s]
		if !ok {
			return nil, fmt.Errorf("%w: accepting state %q is not declared", ErrMalformedAutomaton, s.name)
		}
		if a.isAccept.Test(uint(i)) {
			continue
		}
		a.isAccept.Set(uint(i))
		a.accepting = append(a.accepting, s)
	}

	for _, t := range transitions {
		if err := a.addTransition(t); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Automaton) addTransition(t Transition) error {
	from, ok := a.index[t.From]
	if !ok {
		return fmt.Errorf("%w: transition %s leaves undeclared state %q", ErrMalformedAutomaton, t, t.From.name)
	}
	to, ok := a.index[t.To]
	if !ok {
		return fmt.Errorf("%w: transition %s enters undeclared state %q", ErrMalformedAutomaton, t, t.To.name)
	}

	key := transitionKey{from: from, symbol: t.Symbol}
	if dest, exists := a.delta[key]; exists {
		if dest == to {
			// Exact duplicate.
			return nil
		}
		if !a.firstMatch {
			return fmt.Errorf("%w: state %q has transitions to both %q and %q on %q",
				ErrMalformedAutomaton, t.From.name, a.states[dest].name, t.To.name, t.Symbol)
		}
		if slices.Contains(a.transitions, t) {
			return nil
		}
		a.transitions = append(a.transitions, t)
		return nil
	}

	a.delta[key] = to
	a.transitions = append(a.transitions, t)
	return nil
}

// States Returns the declared states in definition order.
func (a *Automaton) States() []State {
	return slices.Clone(a.states)
}

// Alphabet Returns the declared alphabet in definition order.
func (a *Automaton) Alphabet() []rune {
	return slices.Clone(a.alphabet)
}

// Transitions Returns the transitions in definition order.
func (a *Automaton) Transitions() []Transition {
	return slices.Clone(a.transitions)
}

func (a *Automaton) InitialState() State {
	return a.states[a.initial]
}

// AcceptingStates Returns the accepting states in definition order.
func (a *Automaton) AcceptingStates() []State {
	return slices.Clone(a.accepting)
}

// DeadState Returns the sink state of this automaton.
func (a *Automaton) DeadState() State {
	return DeadState
}

// IsAccept Returns true if this state is an accept state. The dead state and undeclared states
// never are.
func (a *Automaton) IsAccept(s State) bool {
	i, ok := a.index[s]
	return ok && a.isAccept.Test(uint(i))
}

// HasState Returns true if a state with this name is declared.
func (a *Automaton) HasState(name string) bool {
	_, ok := a.index[NewState(name)]
	return ok
}

// GetNumStates How many states this automaton declares, not counting the dead state.
func (a *Automaton) GetNumStates() int {
	return len(a.states)
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	return len(a.transitions)
}

// IsDeterministic Returns false if the automaton was built WithFirstMatch and holds at least two
// transitions leaving the same state on the same symbol.
func (a *Automaton) IsDeterministic() bool {
	return len(a.transitions) == len(a.delta)
}

// Equal Reports whether both automata define the same machine: same state set, alphabet set,
// transition relation, initial state and accepting set. Definition order is ignored.
func (a *Automaton) Equal(other *Automaton) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.states) != len(other.states) || len(a.alphabet) != len(other.alphabet) ||
		len(a.transitions) != len(other.transitions) || len(a.accepting) != len(other.accepting) {
		return false
	}
	if a.InitialState() != other.InitialState() {
		return false
	}
	for _, s := range a.states {
		if _, ok := other.index[s]; !ok {
			return false
		}
	}
	for _, c := range a.alphabet {
		if !slices.Contains(other.alphabet, c) {
			return false
		}
	}
	for _, s := range a.accepting {
		if !other.IsAccept(s) {
			return false
		}
	}
	for _, t := range a.transitions {
		if !slices.Contains(other.transitions, t) {
			return false
		}
	}
	return true
}

package automaton

// Builder Accumulates a definition piece by piece; Build hands everything to NewAutomaton, so the
// same invariants apply. The zero value is ready to use. A Builder is not safe for concurrent use.
type Builder struct {
	states      []State
	alphabet    []rune
	transitions []Transition
	initial     *State
	accepting   []State
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddState Declares a state and returns it.
func (b *Builder) AddState(name string) State {
	s := NewState(name)
	b.states = append(b.states, s)
	return s
}

// AddStates Declares several states at once, in order.
func (b *Builder) AddStates(names ...string) []State {
	res := make([]State, 0, len(names))
	for _, name := range names {
		res = append(res, b.AddState(name))
	}
	return res
}

func (b *Builder) AddSymbols(symbols ...rune) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

func (b *Builder) AddTransition(from State, symbol rune, to State) *Builder {
	b.transitions = append(b.transitions, Transition{From: from, Symbol: symbol, To: to})
	return b
}

// AddTransitions Add one transition from -> to per symbol.
func (b *Builder) AddTransitions(from State, symbols []rune, to State) *Builder {
	for _, c := range symbols {
		b.AddTransition(from, c, to)
	}
	return b
}

func (b *Builder) SetInitial(s State) *Builder {
	b.initial = &s
	return b
}

// SetAccept Mark states as accepting.
func (b *Builder) SetAccept(states ...State) *Builder {
	b.accepting = append(b.accepting, states...)
	return b
}

// Build Returns ErrMalformedAutomaton when no initial state was set or the definition is invalid.
func (b *Builder) Build(opts ...Option) (*Automaton, error) {
	if b.initial == nil {
		return nil, errNoInitialState
	}
	return NewAutomaton(b.states, b.alphabet, b.transitions, *b.initial, b.accepting, opts...)
}

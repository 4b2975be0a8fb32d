package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutomaton(t *testing.T) {
	a, b := NewState("A"), NewState("B")

	t.Run("accessors", func(t *testing.T) {
		m, err := NewAutomaton(
			[]State{a, b},
			[]rune{'0', '1'},
			[]Transition{{From: a, Symbol: '0', To: b}, {From: b, Symbol: '1', To: a}},
			a,
			[]State{b},
		)
		require.NoError(t, err)

		assert.Equal(t, []State{a, b}, m.States())
		assert.Equal(t, []rune{'0', '1'}, m.Alphabet())
		assert.Equal(t, 2, m.GetNumTransitions())
		assert.Equal(t, a, m.InitialState())
		assert.Equal(t, []State{b}, m.AcceptingStates())
		assert.Equal(t, DeadState, m.DeadState())
		assert.True(t, m.IsAccept(b))
		assert.False(t, m.IsAccept(a))
		assert.False(t, m.IsAccept(DeadState))
		assert.True(t, m.HasState("A"))
		assert.False(t, m.HasState(DeadStateName))
		assert.True(t, m.IsDeterministic())
	})

	t.Run("accessors return copies", func(t *testing.T) {
		m, err := NewAutomaton([]State{a, b}, []rune{'0'}, []Transition{{From: a, Symbol: '0', To: b}}, a, []State{b})
		require.NoError(t, err)

		states := m.States()
		states[0] = NewState("Z")
		transitions := m.Transitions()
		transitions[0].To = a

		assert.Equal(t, a, m.States()[0])
		assert.True(t, m.Accepts("0"))
	})

	t.Run("deduplicates", func(t *testing.T) {
		m, err := NewAutomaton(
			[]State{a, b, a},
			[]rune{'0', '0', '1'},
			[]Transition{{From: a, Symbol: '0', To: b}, {From: a, Symbol: '0', To: b}},
			a,
			[]State{b, b},
		)
		require.NoError(t, err)

		assert.Equal(t, []State{a, b}, m.States())
		assert.Equal(t, []rune{'0', '1'}, m.Alphabet())
		assert.Equal(t, 1, m.GetNumTransitions())
		assert.Equal(t, []State{b}, m.AcceptingStates())
	})

	t.Run("declared state named like the dead state", func(t *testing.T) {
		d := NewState(DeadStateName)
		m, err := NewAutomaton([]State{a, d}, nil, []Transition{{From: a, Symbol: 'x', To: d}}, a, []State{d})
		require.NoError(t, err)

		assert.NotEqual(t, DeadState, d)
		assert.False(t, d.IsDead())
		assert.True(t, m.Accepts("x"))
		assert.False(t, m.Accepts("y"))
	})
}

func TestNewAutomatonMalformed(t *testing.T) {
	a, b, z := NewState("A"), NewState("B"), NewState("Z")

	tests := []struct {
		name        string
		states      []State
		transitions []Transition
		initial     State
		accepting   []State
	}{
		{
			name:    "undeclared initial state",
			states:  []State{a, b},
			initial: z,
		},
		{
			name:      "undeclared accepting state",
			states:    []State{a, b},
			initial:   a,
			accepting: []State{b, z},
		},
		{
			name:    "empty state name",
			states:  []State{a, NewState("")},
			initial: a,
		},
		{
			name:    "declared dead state",
			states:  []State{a, DeadState},
			initial: a,
		},
		{
			name:        "transition from undeclared state",
			states:      []State{a, b},
			transitions: []Transition{{From: z, Symbol: '0', To: b}},
			initial:     a,
		},
		{
			name:        "transition to the dead state",
			states:      []State{a, b},
			transitions: []Transition{{From: a, Symbol: '0', To: DeadState}},
			initial:     a,
		},
		{
			name:   "ambiguous transitions",
			states: []State{a, b},
			transitions: []Transition{
				{From: a, Symbol: '0', To: b},
				{From: a, Symbol: '0', To: a},
			},
			initial: a,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewAutomaton(tt.states, nil, tt.transitions, tt.initial, tt.accepting)
			assert.ErrorIs(t, err, ErrMalformedAutomaton)
			assert.Nil(t, m)
		})
	}
}

func TestWithFirstMatch(t *testing.T) {
	a, b, c := NewState("A"), NewState("B"), NewState("C")
	transitions := []Transition{
		{From: a, Symbol: 'x', To: b},
		{From: a, Symbol: 'x', To: c},
		{From: a, Symbol: 'x', To: c},
	}

	m, err := NewAutomaton([]State{a, b, c}, []rune{'x'}, transitions, a, []State{b}, WithFirstMatch())
	require.NoError(t, err)

	assert.True(t, m.Accepts("x"))
	assert.Equal(t, b, m.Step(a, 'x'))
	assert.False(t, m.IsDeterministic())
	assert.Equal(t, transitions[:2], m.Transitions())

	// Definition order decides.
	m, err = NewAutomaton([]State{a, b, c}, []rune{'x'}, []Transition{transitions[1], transitions[0]}, a, []State{b}, WithFirstMatch())
	require.NoError(t, err)
	assert.False(t, m.Accepts("x"))
}

func TestEqual(t *testing.T) {
	a, b := NewState("A"), NewState("B")
	t1 := Transition{From: a, Symbol: '0', To: b}
	t2 := Transition{From: b, Symbol: '1', To: a}

	m1, err := NewAutomaton([]State{a, b}, []rune{'0', '1'}, []Transition{t1, t2}, a, []State{b})
	require.NoError(t, err)
	m2, err := NewAutomaton([]State{b, a}, []rune{'1', '0'}, []Transition{t2, t1}, a, []State{b})
	require.NoError(t, err)
	assert.True(t, m1.Equal(m2))
	assert.True(t, m2.Equal(m1))

	m3, err := NewAutomaton([]State{a, b}, []rune{'0', '1'}, []Transition{t1, t2}, b, []State{b})
	require.NoError(t, err)
	assert.False(t, m1.Equal(m3))

	m4, err := NewAutomaton([]State{a, b}, []rune{'0', '1'}, []Transition{t1}, a, []State{b})
	require.NoError(t, err)
	assert.False(t, m1.Equal(m4))

	m5, err := NewAutomaton([]State{a, b}, []rune{'0', '2'}, []Transition{t1, t2}, a, []State{b})
	require.NoError(t, err)
	assert.False(t, m1.Equal(m5))

	m6, err := NewAutomaton([]State{a, b}, []rune{'0', '1'}, []Transition{t1, t2}, a, []State{a})
	require.NoError(t, err)
	assert.False(t, m1.Equal(m6))

	assert.False(t, m1.Equal(nil))
}

func TestBuilder(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.ErrorIs(t, err, ErrMalformedAutomaton)

	b := NewBuilder()
	states := b.AddStates("even", "odd")
	b.AddSymbols('1').
		AddTransition(states[0], '1', states[1]).
		AddTransition(states[1], '1', states[0]).
		SetInitial(states[0]).
		SetAccept(states[0])
	m, err := b.Build()
	require.NoError(t, err)

	assert.True(t, m.Accepts(""))
	assert.False(t, m.Accepts("1"))
	assert.True(t, m.Accepts("11"))
	assert.False(t, m.Accepts("111"))
}

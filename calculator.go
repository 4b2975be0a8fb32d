package automaton

import (
	"strings"
	"unicode"
)

var (
	digits    = []rune("0123456789")
	operators = []rune("+-/*")
)

// NewCalculator Returns the automaton recognising calculator input: signed integers joined by
// + - * / and terminated by =. A is the initial state, B follows a digit, C an operator, D a sign
// and E the final =.
func NewCalculator() (*Automaton, error) {
	b := NewBuilder()
	states := b.AddStates("A", "B", "C", "D", "E")
	start, number, operator, sign, end := states[0], states[1], states[2], states[3], states[4]

	b.AddSymbols(digits...)
	b.AddSymbols(operators...)
	b.AddSymbols('=')

	// from A
	b.AddTransitions(start, digits, number)
	b.AddTransition(start, '-', sign)

	// from B
	b.AddTransitions(number, digits, number)
	b.AddTransitions(number, operators, operator)
	b.AddTransition(number, '=', end)

	// from C
	b.AddTransitions(operator, digits, number)
	b.AddTransition(operator, '-', sign)

	// from D
	b.AddTransitions(sign, digits, number)

	b.SetInitial(start)
	b.SetAccept(end)
	return b.Build()
}

// StripWhitespace Removes every whitespace rune from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

package automaton

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML form of an automaton.
//
//	states: [A, B]
//	alphabet: ["0", "1"]
//	transitions:
//	  - A___0___B
//	  - {from: B, symbol: "1", to: A}
//	initial: A
//	accepting: [B]
type Definition struct {
	States      []string        `yaml:"states"`
	Alphabet    []string        `yaml:"alphabet"`
	Transitions []TransitionDef `yaml:"transitions"`
	Initial     string          `yaml:"initial"`
	Accepting   []string        `yaml:"accepting"`
}

// TransitionDef accepts either a FROM___SYMBOL___TO scalar or a mapping.
type TransitionDef struct {
	From   string `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     string `yaml:"to"`
}

func (t *TransitionDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		from, rest, ok := strings.Cut(node.Value, Separator)
		i := strings.LastIndex(rest, Separator)
		if !ok || i == -1 {
			return fmt.Errorf("line %d: %w: transition %q needs two %q separators",
				node.Line, ErrMalformedText, node.Value, Separator)
		}
		t.From, t.Symbol, t.To = from, rest[:i], rest[i+len(Separator):]
		return nil
	}

	type plain TransitionDef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = TransitionDef(p)
	return nil
}

// Definition Returns the definition of a, in definition order.
func (a *Automaton) Definition() Definition {
	def := Definition{
		States:      make([]string, 0, len(a.states)),
		Alphabet:    make([]string, 0, len(a.alphabet)),
		Transitions: make([]TransitionDef, 0, len(a.transitions)),
		Initial:     a.InitialState().name,
		Accepting:   make([]string, 0, len(a.accepting)),
	}
	for _, s := range a.states {
		def.States = append(def.States, s.name)
	}
	for _, c := range a.alphabet {
		def.Alphabet = append(def.Alphabet, string(c))
	}
	for _, t := range a.transitions {
		def.Transitions = append(def.Transitions, TransitionDef{From: t.From.name, Symbol: string(t.Symbol), To: t.To.name})
	}
	for _, s := range a.accepting {
		def.Accepting = append(def.Accepting, s.name)
	}
	return def
}

func (a *Automaton) MarshalYAML() (interface{}, error) {
	return a.Definition(), nil
}

// Build Creates the automaton. Unlike the text decoder, every state reference must resolve.
func (d Definition) Build(opts ...Option) (*Automaton, error) {
	states := make([]State, 0, len(d.States))
	known := make(map[string]State, len(d.States))
	for _, name := range d.States {
		s := NewState(name)
		states = append(states, s)
		known[name] = s
	}
	resolve := func(what, name string) (State, error) {
		s, ok := known[name]
		if !ok {
			return State{}, fmt.Errorf("%s %q: %w", what, name, ErrUnknownStateReference)
		}
		return s, nil
	}

	alphabet := make([]rune, 0, len(d.Alphabet))
	for _, sym := range d.Alphabet {
		if utf8.RuneCountInString(sym) != 1 {
			return nil, fmt.Errorf("%w: alphabet symbol %q is not a single character", ErrMalformedAutomaton, sym)
		}
		c, _ := utf8.DecodeRuneInString(sym)
		alphabet = append(alphabet, c)
	}

	transitions := make([]Transition, 0, len(d.Transitions))
	for _, t := range d.Transitions {
		if utf8.RuneCountInString(t.Symbol) != 1 {
			return nil, fmt.Errorf("symbol %q: %w", t.Symbol, ErrInvalidTransitionSymbol)
		}
		from, err := resolve("transition source", t.From)
		if err != nil {
			return nil, err
		}
		to, err := resolve("transition destination", t.To)
		if err != nil {
			return nil, err
		}
		c, _ := utf8.DecodeRuneInString(t.Symbol)
		transitions = append(transitions, Transition{From: from, Symbol: c, To: to})
	}

	initial, err := resolve("initial state", d.Initial)
	if err != nil {
		return nil, err
	}

	accepting := make([]State, 0, len(d.Accepting))
	for _, name := range d.Accepting {
		s, err := resolve("accepting state", name)
		if err != nil {
			return nil, err
		}
		accepting = append(accepting, s)
	}

	return NewAutomaton(states, alphabet, transitions, initial, accepting, opts...)
}

// ParseYAML Decodes an automaton from its YAML definition.
func ParseYAML(data []byte, opts ...Option) (*Automaton, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return def.Build(opts...)
}

// LoadFile Reads a definition from disk: YAML for .yaml and .yml files, the text format otherwise.
func LoadFile(path string, opts ...DecoderOption) (*Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		o := &decoderOptions{}
		for _, fn := range opts {
			fn(o)
		}
		var def Definition
		if err := yaml.NewDecoder(f).Decode(&def); err != nil {
			return nil, fmt.Errorf("yaml decode %s: %w", path, err)
		}
		var automatonOpts []Option
		if o.firstMatch {
			automatonOpts = append(automatonOpts, WithFirstMatch())
		}
		a, err := def.Build(automatonOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return a, nil
	default:
		a, err := NewDecoder(f, opts...).Decode()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return a, nil
	}
}

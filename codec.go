package automaton

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Section headers of the text format, in file order.
const (
	HeaderStates      = "States"
	HeaderAlphabet    = "Alphabet"
	HeaderTransitions = "Transition Function"
	HeaderInitial     = "Initial State"
	HeaderAccepting   = "Accepting States"

	// Separator joins the three fields of a transition line: FROM___SYMBOL___TO.
	Separator = "___"
)

var headers = []string{HeaderStates, HeaderAlphabet, HeaderTransitions, HeaderInitial, HeaderAccepting}

var (
	// ErrInvalidTransitionSymbol is returned when the symbol field of a transition line is not
	// exactly one character.
	ErrInvalidTransitionSymbol = errors.New("transition symbol must be exactly one character")

	// ErrUnknownStateReference is returned when the initial state, or both ends of a transition,
	// name no declared state.
	ErrUnknownStateReference = errors.New("unknown state reference")

	// ErrMalformedText is returned when the text does not follow the section layout, or when an
	// automaton holds names the format cannot represent.
	ErrMalformedText = errors.New("malformed automaton text")
)

type decoderOptions struct {
	strict     bool
	firstMatch bool
	logger     *slog.Logger
}

type DecoderOption func(*decoderOptions)

// WithStrict Reject transitions with one unknown end and unknown accepting state names instead of
// dropping them.
func WithStrict() DecoderOption {
	return func(o *decoderOptions) {
		o.strict = true
	}
}

// WithFirstMatchTransitions Keep ambiguous transitions; the first one listed wins. See WithFirstMatch.
func WithFirstMatchTransitions() DecoderOption {
	return func(o *decoderOptions) {
		o.firstMatch = true
	}
}

// WithDecoderLogger Report dropped references to logger.
func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return func(o *decoderOptions) {
		o.logger = logger
	}
}

// Decoder reads an automaton definition in the sectioned text format:
//
//	States
//	A
//	Alphabet
//	0
//	Transition Function
//	A___0___A
//	Initial State
//	A
//	Accepting States
//	A
type Decoder struct {
	scanner *bufio.Scanner
	opts    *decoderOptions
	line    int
}

func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	o := &decoderOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(o)
	}
	return &Decoder{
		scanner: bufio.NewScanner(r),
		opts:    o,
	}
}

// Parse Decodes an automaton from its text form.
func Parse(s string, opts ...DecoderOption) (*Automaton, error) {
	return NewDecoder(strings.NewReader(s), opts...).Decode()
}

// Decode Reads the whole definition. Any error aborts decoding and no automaton is returned.
func (d *Decoder) Decode() (*Automaton, error) {
	if err := d.expectHeader(HeaderStates); err != nil {
		return nil, err
	}

	stateLines, err := d.section(HeaderAlphabet)
	if err != nil {
		return nil, err
	}
	states := make([]State, 0, len(stateLines))
	known := make(map[string]State, len(stateLines))
	for _, l := range stateLines {
		s := NewState(l.text)
		states = append(states, s)
		known[l.text] = s
	}

	alphabetLines, err := d.section(HeaderTransitions)
	if err != nil {
		return nil, err
	}
	alphabet := make([]rune, 0, len(alphabetLines))
	for _, l := range alphabetLines {
		// Only the first character of a line counts.
		c, _ := utf8.DecodeRuneInString(l.text)
		alphabet = append(alphabet, c)
	}

	transitionLines, err := d.section(HeaderInitial)
	if err != nil {
		return nil, err
	}
	transitions := make([]Transition, 0, len(transitionLines))
	for _, l := range transitionLines {
		t, ok, err := d.transition(l, known)
		if err != nil {
			return nil, err
		}
		if ok {
			transitions = append(transitions, t)
		}
	}

	initialLines, err := d.section(HeaderAccepting)
	if err != nil {
		return nil, err
	}
	if len(initialLines) != 1 {
		return nil, fmt.Errorf("line %d: %w: expected one initial state, found %d",
			d.line, ErrMalformedText, len(initialLines))
	}
	initial, ok := known[initialLines[0].text]
	if !ok {
		return nil, fmt.Errorf("line %d: initial state %q: %w",
			initialLines[0].number, initialLines[0].text, ErrUnknownStateReference)
	}

	acceptingLines, err := d.section("")
	if err != nil {
		return nil, err
	}
	accepting := make([]State, 0, len(acceptingLines))
	for _, l := range acceptingLines {
		s, ok := known[l.text]
		if !ok {
			if d.opts.strict {
				return nil, fmt.Errorf("line %d: accepting state %q: %w", l.number, l.text, ErrUnknownStateReference)
			}
			d.opts.logger.Warn("ignoring unknown accepting state", "line", l.number, "state", l.text)
			continue
		}
		accepting = append(accepting, s)
	}

	var opts []Option
	if d.opts.firstMatch {
		opts = append(opts, WithFirstMatch())
	}
	return NewAutomaton(states, alphabet, transitions, initial, accepting, opts...)
}

type textLine struct {
	number int
	text   string
}

func (d *Decoder) next() (string, bool, error) {
	for d.scanner.Scan() {
		d.line++
		l := strings.TrimSuffix(d.scanner.Text(), "\r")
		if l == "" {
			continue
		}
		return l, true, nil
	}
	if err := d.scanner.Err(); err != nil {
		return "", false, fmt.Errorf("read line %d: %w", d.line+1, err)
	}
	return "", false, nil
}

func (d *Decoder) expectHeader(header string) error {
	l, ok, err := d.next()
	if err != nil {
		return err
	}
	if !ok || l != header {
		return fmt.Errorf("line %d: %w: expected %q", d.line, ErrMalformedText, header)
	}
	return nil
}

// Collects the lines up to the given header, which is consumed. An empty header reads to the end.
// Headers appearing out of order are rejected.
func (d *Decoder) section(until string) ([]textLine, error) {
	res := make([]textLine, 0)
	for {
		l, ok, err := d.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			if until != "" {
				return nil, fmt.Errorf("line %d: %w: missing %q section", d.line, ErrMalformedText, until)
			}
			return res, nil
		}
		if l == until {
			return res, nil
		}
		if isHeader(l) {
			return nil, fmt.Errorf("line %d: %w: unexpected %q section", d.line, ErrMalformedText, l)
		}
		res = append(res, textLine{number: d.line, text: l})
	}
}

// Returns false when the transition is dropped because exactly one end is unknown.
func (d *Decoder) transition(l textLine, known map[string]State) (Transition, bool, error) {
	fromName, rest, found := strings.Cut(l.text, Separator)
	if !found {
		return Transition{}, false, fmt.Errorf("line %d: %w: transition %q has no %q separator",
			l.number, ErrMalformedText, l.text, Separator)
	}
	i := strings.LastIndex(rest, Separator)
	if i == -1 {
		return Transition{}, false, fmt.Errorf("line %d: %w: transition %q needs two %q separators",
			l.number, ErrMalformedText, l.text, Separator)
	}
	symbol, toName := rest[:i], rest[i+len(Separator):]

	if utf8.RuneCountInString(symbol) != 1 {
		return Transition{}, false, fmt.Errorf("line %d: symbol %q: %w", l.number, symbol, ErrInvalidTransitionSymbol)
	}
	c, _ := utf8.DecodeRuneInString(symbol)

	from, fromOK := known[fromName]
	to, toOK := known[toName]
	switch {
	case !fromOK && !toOK:
		return Transition{}, false, fmt.Errorf("line %d: states %q and %q: %w",
			l.number, fromName, toName, ErrUnknownStateReference)
	case !fromOK || !toOK:
		missing := fromName
		if fromOK {
			missing = toName
		}
		if d.opts.strict {
			return Transition{}, false, fmt.Errorf("line %d: state %q: %w", l.number, missing, ErrUnknownStateReference)
		}
		d.opts.logger.Warn("dropping transition with unknown state",
			"line", l.number, "transition", l.text, "state", missing)
		return Transition{}, false, nil
	}
	return Transition{From: from, Symbol: c, To: to}, true, nil
}

func isHeader(l string) bool {
	for _, h := range headers {
		if l == h {
			return true
		}
	}
	return false
}

// Encoder writes automata in the text format read by Decoder.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode Writes every section in definition order, one item per line. Nothing is written if a
// state name cannot be represented.
func (e *Encoder) Encode(a *Automaton) error {
	for _, s := range a.states {
		if err := checkName(s.name); err != nil {
			return err
		}
	}
	for _, c := range a.alphabet {
		if err := checkSymbol(c); err != nil {
			return err
		}
	}
	for _, t := range a.transitions {
		if err := checkSymbol(t.Symbol); err != nil {
			return err
		}
	}

	buf := new(bytes.Buffer)
	buf.WriteString(HeaderStates + "\n")
	for _, s := range a.states {
		buf.WriteString(s.name + "\n")
	}
	buf.WriteString(HeaderAlphabet + "\n")
	for _, c := range a.alphabet {
		buf.WriteString(string(c) + "\n")
	}
	buf.WriteString(HeaderTransitions + "\n")
	for _, t := range a.transitions {
		buf.WriteString(t.String() + "\n")
	}
	buf.WriteString(HeaderInitial + "\n")
	buf.WriteString(a.InitialState().name + "\n")
	buf.WriteString(HeaderAccepting + "\n")
	for _, s := range a.accepting {
		buf.WriteString(s.name + "\n")
	}

	_, err := e.w.Write(buf.Bytes())
	return err
}

func checkName(name string) error {
	switch {
	case strings.Contains(name, Separator):
		return fmt.Errorf("%w: state name %q contains %q", ErrMalformedText, name, Separator)
	case strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_"):
		// would merge with the separator of a transition line
		return fmt.Errorf("%w: state name %q starts or ends with '_'", ErrMalformedText, name)
	case isHeader(name):
		return fmt.Errorf("%w: state name %q is a section header", ErrMalformedText, name)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("%w: state name %q spans several lines", ErrMalformedText, name)
	}
	return nil
}

func checkSymbol(c rune) error {
	if c == '\n' || c == '\r' {
		return fmt.Errorf("%w: symbol %q cannot be written on a line", ErrMalformedText, c)
	}
	return nil
}

// MarshalText Returns the text form read by Parse.
func (a *Automaton) MarshalText() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := NewEncoder(buf).Encode(a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String Returns the text form, or an empty string if the automaton cannot be encoded.
func (a *Automaton) String() string {
	text, err := a.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}
